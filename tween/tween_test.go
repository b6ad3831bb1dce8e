package tween

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/vmath"
)

const (
	opacity Target = "opacity"
	scale   Target = "scale"
)

func TestScalarReachesTargetExactly(t *testing.T) {
	s := NewScheduler()
	v := 0.3
	completed := 0
	s.Scalar(opacity, &v, 0.1, Spec{Duration: time.Second, OnComplete: func() { completed++ }})

	for i := 0; i < 59; i++ {
		s.Advance(time.Second / 60)
	}
	assert.Equal(t, 0, completed)
	assert.True(t, s.Active())

	s.Advance(time.Second)
	assert.Equal(t, 0.1, v)
	assert.Equal(t, 1, completed)
	assert.False(t, s.Active())
}

func TestEasedMidpoint(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Scalar(opacity, &v, 1, Spec{Duration: time.Second})

	s.Advance(250 * time.Millisecond)
	assert.InDelta(t, vmath.EaseInOutQuad(0.25), v, 1e-12)
	s.Advance(250 * time.Millisecond)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestVectorTween(t *testing.T) {
	s := NewScheduler()
	p := r3.Vec{X: 4, Y: 4, Z: 4}
	to := r3.Vec{X: 1, Y: -2, Z: 0.5}
	updates := 0
	s.Vector(scale, &p, to, Spec{Duration: 100 * time.Millisecond, Ease: vmath.Linear, OnUpdate: func() { updates++ }})

	s.Advance(50 * time.Millisecond)
	assert.InDelta(t, 2.5, p.X, 1e-12)
	s.Advance(50 * time.Millisecond)
	assert.Equal(t, to, p)
	assert.Equal(t, 2, updates)
}

func TestDelayCapturesFromAtStart(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Scalar(opacity, &v, 1, Spec{Delay: time.Second, Duration: time.Second, Ease: vmath.Linear})

	s.Advance(500 * time.Millisecond)
	assert.Equal(t, 0.0, v, "delayed entry must not write before its start")

	// Value changes before the entry starts; the entry must start from it
	v = 0.5
	s.Advance(500 * time.Millisecond)
	assert.Equal(t, 0.5, v)
	s.Advance(500 * time.Millisecond)
	assert.InDelta(t, 0.75, v, 1e-12)
}

func TestKillDropsFutureWrites(t *testing.T) {
	s := NewScheduler()
	v := 1.0
	completed := false
	s.Scalar(opacity, &v, 0, Spec{Duration: time.Second, OnComplete: func() { completed = true }})

	s.Advance(500 * time.Millisecond)
	mid := v
	s.Kill(opacity)
	assert.False(t, s.ActiveOn(opacity))

	s.Advance(2 * time.Second)
	assert.Equal(t, mid, v)
	assert.False(t, completed, "killed entry must not complete")
}

func TestKillIsPerTarget(t *testing.T) {
	s := NewScheduler()
	a, b := 0.0, 0.0
	s.Scalar(opacity, &a, 1, Spec{Duration: time.Second})
	s.Scalar(scale, &b, 1, Spec{Duration: time.Second})

	s.Kill(opacity)
	s.Advance(time.Second)
	assert.Equal(t, 0.0, a)
	assert.Equal(t, 1.0, b)
	assert.Equal(t, uint64(1), s.Generation(opacity))
	assert.Equal(t, uint64(0), s.Generation(scale))
}

func TestKillFromCallbackStopsSameFrameWrites(t *testing.T) {
	s := NewScheduler()
	a := 0.0
	s.Call(scale, 0, func() { s.Kill(opacity) })
	s.Scalar(opacity, &a, 1, Spec{Duration: time.Second})

	s.Advance(500 * time.Millisecond)
	assert.Equal(t, 0.0, a)
	assert.False(t, s.Active())
}

func TestCallRunsOnceAfterDelay(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.Call(opacity, time.Second, func() { calls++ })

	s.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, calls)
	s.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	s.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Scalar(opacity, &v, 1, Spec{})
	s.Advance(0)
	assert.Equal(t, 1.0, v)
}

func TestEntriesScheduledFromCallbackStartLater(t *testing.T) {
	s := NewScheduler()
	v := 0.0
	s.Call(opacity, 0, func() {
		s.Scalar(scale, &v, 1, Spec{Duration: time.Second, Ease: vmath.Linear})
	})

	s.Advance(100 * time.Millisecond)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 0.0, v)

	s.Advance(500 * time.Millisecond)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestNegativeDeltaIsIgnored(t *testing.T) {
	s := NewScheduler()
	s.Advance(time.Second)
	s.Advance(-time.Second)
	assert.Equal(t, time.Second, s.Now())
}
