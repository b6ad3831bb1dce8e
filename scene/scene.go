// Package scene is the boundary between the core and whatever draws it.
//
// The core writes into the handles each frame; the presentation surface reads
// a Frame snapshot after the controller has advanced. Any handle may be unset
// until the surface has mounted it.
package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/camera"
	"github.com/lixenwraith/chromasphere/vmath"
)

// ErrNotReady is returned when a required handle has not been mounted yet
var ErrNotReady = errors.New("scene not ready")

// Mesh is the instanced pick mesh transform
type Mesh struct {
	Scale    r3.Vec
	Rotation vmath.Euler
}

// NewMesh creates a mesh at unit scale
func NewMesh(rot vmath.Euler) *Mesh {
	return &Mesh{Scale: r3.Vec{X: 1, Y: 1, Z: 1}, Rotation: rot}
}

// CrowdMaterial holds the uniforms shared by every instance
type CrowdMaterial struct {
	Opacity  float64
	Time     float64
	Hovered  int32
	Selected int32
}

// NewCrowdMaterial creates a fully opaque material with nothing highlighted
func NewCrowdMaterial() *CrowdMaterial {
	return &CrowdMaterial{Opacity: 1, Hovered: -1, Selected: -1}
}

// FocusMaterial is the material of the orb that replaces the crowd when focused
type FocusMaterial struct {
	Opacity  float64
	Color    colorful.Color
	Position r3.Vec
	Noise    float64
}

// NewFocusMaterial creates a hidden focus material
func NewFocusMaterial() *FocusMaterial {
	return &FocusMaterial{}
}

// Panel is an auxiliary overlay faded in next to the focused orb
type Panel struct {
	Opacity float64
}

// Handles are the render references the transition controller writes through
type Handles struct {
	Camera   *camera.Camera
	Mesh     *Mesh
	Crowd    *CrowdMaterial
	Focus    *FocusMaterial
	Controls *camera.Controls
	Options  *Panel
}

// Ready reports ErrNotReady naming every unset handle
func (h *Handles) Ready() error {
	if h == nil {
		return fmt.Errorf("%w: no handles", ErrNotReady)
	}
	var missing []string
	if h.Camera == nil {
		missing = append(missing, "camera")
	}
	if h.Mesh == nil {
		missing = append(missing, "mesh")
	}
	if h.Crowd == nil {
		missing = append(missing, "crowd")
	}
	if h.Focus == nil {
		missing = append(missing, "focus")
	}
	if h.Controls == nil {
		missing = append(missing, "controls")
	}
	if h.Options == nil {
		missing = append(missing, "options")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotReady, strings.Join(missing, ", "))
	}
	return nil
}

// Frame is the per-frame output consumed by a presentation surface
type Frame struct {
	Seq uint64

	CameraPosition r3.Vec
	CameraLookAt   r3.Vec
	ControlsTarget r3.Vec

	CrowdOpacity float64
	FocusOpacity float64
	FocusColor   colorful.Color
	FocusPos     r3.Vec
	Noise        float64
	MeshScale    r3.Vec
	Options      float64

	Hovered  int32
	Selected int32
	Time     float64

	Phase   string
	Focused int // snapshot index, -1 outside a focus run
}

// Capture copies the mounted handle values into a frame
// Unset handles leave their fields at zero values
func (h *Handles) Capture(f *Frame) {
	if h == nil {
		return
	}
	if h.Camera != nil {
		f.CameraPosition = h.Camera.Position
		f.CameraLookAt = h.Camera.Pose.LookAt
	}
	if h.Controls != nil {
		f.ControlsTarget = h.Controls.Target
	}
	if h.Crowd != nil {
		f.CrowdOpacity = h.Crowd.Opacity
		f.Time = h.Crowd.Time
		f.Hovered = h.Crowd.Hovered
		f.Selected = h.Crowd.Selected
	}
	if h.Focus != nil {
		f.FocusOpacity = h.Focus.Opacity
		f.FocusColor = h.Focus.Color
		f.FocusPos = h.Focus.Position
		f.Noise = h.Focus.Noise
	}
	if h.Mesh != nil {
		f.MeshScale = h.Mesh.Scale
	}
	if h.Options != nil {
		f.Options = h.Options.Opacity
	}
}

// Surface consumes frames; Upload is called once per tick after the controller advanced
type Surface interface {
	Upload(f Frame)
}

// SurfaceFunc adapts a function to Surface
type SurfaceFunc func(Frame)

// Upload calls fn(f)
func (fn SurfaceFunc) Upload(f Frame) { fn(f) }
