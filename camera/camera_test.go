package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func homeCamera() *Camera {
	return New(Pose{Position: r3.Vec{X: 4, Y: 4, Z: 4}}, 50, 0.01)
}

func TestProjectCenterAndBehind(t *testing.T) {
	c := homeCamera()

	x, y, depth, ok := c.Project(r3.Vec{})
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)
	assert.InDelta(t, r3.Norm(r3.Vec{X: 4, Y: 4, Z: 4}), depth, 1e-12)

	_, _, _, ok = c.Project(r3.Vec{X: 8, Y: 8, Z: 8})
	assert.False(t, ok, "point behind camera must not project")
}

func TestProjectUpIsPositiveY(t *testing.T) {
	c := New(Pose{Position: r3.Vec{Z: 5}}, 50, 0.01)
	_, y, _, ok := c.Project(r3.Vec{Y: 1})
	require.True(t, ok)
	assert.Greater(t, y, 0.0)

	x, _, _, ok := c.Project(r3.Vec{X: 1})
	require.True(t, ok)
	assert.Greater(t, x, 0.0)
}

func TestBasisLookingAlongUpAxis(t *testing.T) {
	c := New(Pose{Position: r3.Vec{Y: 5}}, 50, 0.01)
	right, up, forward := c.Basis()
	assert.InDelta(t, 1, r3.Norm(right), 1e-12)
	assert.InDelta(t, 1, r3.Norm(up), 1e-12)
	assert.InDelta(t, -1, forward.Y, 1e-12)
}

func TestDirectionFrom(t *testing.T) {
	c := homeCamera()
	d := c.DirectionFrom(r3.Vec{})
	assert.InDelta(t, 1, r3.Norm(d), 1e-12)
	assert.InDelta(t, d.X, d.Y, 1e-12)

	c.SetPosition(r3.Vec{X: 1})
	assert.Equal(t, r3.Vec{Z: 1}, c.DirectionFrom(r3.Vec{X: 1}))
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := homeCamera()
	ct := NewControls(r3.Vec{})
	before := r3.Norm(c.ViewVector())

	ct.Orbit(c, 0.3, -0.2)
	assert.InDelta(t, before, r3.Norm(r3.Sub(c.Position, ct.Target)), 1e-9)
	assert.Equal(t, ct.Target, c.Pose.LookAt)
}

func TestDisabledControlsIgnoreInput(t *testing.T) {
	c := homeCamera()
	ct := NewControls(r3.Vec{})
	ct.Enabled = false

	start := c.Position
	ct.Orbit(c, 1, 1)
	ct.Zoom(c, 0.5)
	assert.Equal(t, start, c.Position)
}

func TestZoom(t *testing.T) {
	c := homeCamera()
	ct := NewControls(r3.Vec{})
	ct.Zoom(c, 0.5)
	assert.Equal(t, r3.Vec{X: 2, Y: 2, Z: 2}, c.Position)
}
