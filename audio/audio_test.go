package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chromasphere/parameter"
	"github.com/lixenwraith/chromasphere/transition"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestCueLengthAndLevel(t *testing.T) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	for _, c := range []Cue{CueFocus, CueOverview} {
		total, peak := drain(CreateCue(c, rate, 1))
		assert.Equal(t, rate.N(parameter.CueDuration), total, c.String())
		assert.Greater(t, peak, 0.0)
		assert.LessOrEqual(t, peak, parameter.CueAmplitude+1e-9)
	}
	assert.Nil(t, CreateCue(CueNone, rate, 1))
}

func TestSilentAtZeroVolume(t *testing.T) {
	_, peak := drain(CreateCue(CueFocus, beep.SampleRate(parameter.AudioSampleRate), 0))
	assert.Zero(t, peak)
}

func TestEnvelopeStartsSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewEnvelope(NewSweep(100, 100, 100*time.Millisecond, rate), 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)
	buf := make([][2]float64, 1)
	n, ok := s.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 1, n)
	assert.Zero(t, buf[0][0])
}

func TestCueFor(t *testing.T) {
	assert.Equal(t, CueFocus, CueFor(transition.PhaseFocusingIn, transition.PhaseFocused))
	assert.Equal(t, CueOverview, CueFor(transition.PhaseFocusingOut, transition.PhaseIdle))
	assert.Equal(t, CueNone, CueFor(transition.PhaseIdle, transition.PhaseFocusingIn))
	assert.Equal(t, CueNone, CueFor(transition.PhaseFocusingIn, transition.PhaseFocusingOut))
}

func TestPlayerGracefulDegradation(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	assert.NotPanics(t, func() {
		p.Play(CueFocus)
		p.PhaseChanged(transition.PhaseFocusingIn, transition.PhaseFocused, 1)
		p.Cleanup()
	})
	assert.Zero(t, p.Played(CueFocus))
}

func TestPlayerRoutesPhaseChanges(t *testing.T) {
	var got []beep.Streamer
	p := NewPlayer(DefaultConfig(), WithOutput(func(s beep.Streamer) { got = append(got, s) }))
	require.NoError(t, p.Initialize())
	require.NoError(t, p.Initialize())

	p.PhaseChanged(transition.PhaseIdle, transition.PhaseFocusingIn, 1)
	p.PhaseChanged(transition.PhaseFocusingIn, transition.PhaseFocused, 1)
	p.PhaseChanged(transition.PhaseFocused, transition.PhaseFocusingOut, 2)
	p.PhaseChanged(transition.PhaseFocusingOut, transition.PhaseIdle, 2)

	assert.Len(t, got, 2)
	assert.Equal(t, 1, p.Played(CueFocus))
	assert.Equal(t, 1, p.Played(CueOverview))
}

func TestDisabledPlayerStaysSilent(t *testing.T) {
	var got int
	p := NewPlayer(Config{Enabled: false, Volume: 1}, WithOutput(func(beep.Streamer) { got++ }))
	require.NoError(t, p.Initialize())
	p.Play(CueFocus)
	assert.Zero(t, got)
}

func TestSweepEndsAtDuration(t *testing.T) {
	rate := beep.SampleRate(1000)
	total, peak := drain(NewSweep(50, 200, 250*time.Millisecond, rate))
	assert.Equal(t, 250, total)
	assert.InDelta(t, 1.0, peak, 0.05)
}

func TestEnvelopeReleasesToSilence(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewEnvelope(NewSweep(125, 125, 100*time.Millisecond, rate), 100*time.Millisecond, 0, 50*time.Millisecond, rate)
	buf := make([][2]float64, 100)
	n, _ := s.Stream(buf)
	require.Equal(t, 100, n)
	for i := 96; i < 100; i++ {
		assert.LessOrEqual(t, buf[i][0], 0.1, "sample %d", i)
		assert.GreaterOrEqual(t, buf[i][0], -0.1, "sample %d", i)
	}
}
