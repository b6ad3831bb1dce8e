package scene

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/camera"
	"github.com/lixenwraith/chromasphere/vmath"
)

func mounted() *Handles {
	return &Handles{
		Camera:   camera.New(camera.Pose{Position: r3.Vec{X: 4, Y: 4, Z: 4}}, 50, 0.01),
		Mesh:     NewMesh(vmath.Euler{X: -0.7, Y: -2.5, Z: 2}),
		Crowd:    NewCrowdMaterial(),
		Focus:    NewFocusMaterial(),
		Controls: camera.NewControls(r3.Vec{}),
		Options:  &Panel{},
	}
}

func TestReady(t *testing.T) {
	require.NoError(t, mounted().Ready())

	var nilHandles *Handles
	assert.ErrorIs(t, nilHandles.Ready(), ErrNotReady)

	h := mounted()
	h.Mesh = nil
	h.Focus = nil
	err := h.Ready()
	require.True(t, errors.Is(err, ErrNotReady))
	assert.Contains(t, err.Error(), "mesh")
	assert.Contains(t, err.Error(), "focus")
	assert.NotContains(t, err.Error(), "crowd")
}

func TestDefaults(t *testing.T) {
	h := mounted()
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, h.Mesh.Scale)
	assert.Equal(t, 1.0, h.Crowd.Opacity)
	assert.Equal(t, int32(-1), h.Crowd.Hovered)
	assert.Equal(t, 0.0, h.Focus.Opacity)
}

func TestCapture(t *testing.T) {
	h := mounted()
	h.Crowd.Opacity = 0.25
	h.Crowd.Time = 3.5
	h.Crowd.Selected = 7
	h.Focus.Opacity = 0.75
	h.Focus.Color = colorful.Color{R: 1, G: 0.5}
	h.Controls.Target = r3.Vec{X: 1}
	h.Options.Opacity = 0.5

	var f Frame
	h.Capture(&f)
	assert.Equal(t, r3.Vec{X: 4, Y: 4, Z: 4}, f.CameraPosition)
	assert.Equal(t, r3.Vec{X: 1}, f.ControlsTarget)
	assert.Equal(t, 0.25, f.CrowdOpacity)
	assert.Equal(t, 3.5, f.Time)
	assert.Equal(t, int32(7), f.Selected)
	assert.Equal(t, 0.75, f.FocusOpacity)
	assert.Equal(t, colorful.Color{R: 1, G: 0.5}, f.FocusColor)
	assert.Equal(t, 0.5, f.Options)
}

func TestCapturePartial(t *testing.T) {
	h := &Handles{Crowd: NewCrowdMaterial()}
	var f Frame
	h.Capture(&f)
	assert.Equal(t, 1.0, f.CrowdOpacity)
	assert.Equal(t, r3.Vec{}, f.MeshScale)
}
