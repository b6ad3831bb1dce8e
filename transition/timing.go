package transition

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/camera"
	"github.com/lixenwraith/chromasphere/layout"
	"github.com/lixenwraith/chromasphere/parameter"
	"github.com/lixenwraith/chromasphere/vmath"
)

// Timing configures a focus run; changes apply to the next run
type Timing struct {
	Duration       time.Duration
	FocusDelay     time.Duration // offset of the focus and options fade-in
	CameraDistance float64       // camera distance from the target when focused
	Ease           vmath.EaseFunc
	Home           camera.Pose
}

// DefaultTiming returns one-second runs with the fade-in delayed by one run length
func DefaultTiming() Timing {
	return Timing{
		Duration:       parameter.DefaultTransitionDuration,
		FocusDelay:     parameter.DefaultFocusDelay,
		CameraDistance: parameter.DefaultCameraDistance,
		Ease:           vmath.EaseInOutQuad,
		Home: camera.Pose{
			Position: r3.Vec{X: parameter.DefaultCameraHomeX, Y: parameter.DefaultCameraHomeY, Z: parameter.DefaultCameraHomeZ},
		},
	}
}

// Validate rejects non-positive durations and distances, and a fade-in that
// would start before the camera move and crowd fade have finished
func (t Timing) Validate() error {
	if t.Duration <= 0 {
		return fmt.Errorf("%w: duration %v must be positive", layout.ErrInvalidConfiguration, t.Duration)
	}
	if t.FocusDelay < t.Duration {
		return fmt.Errorf("%w: focus delay %v must be at least the duration %v", layout.ErrInvalidConfiguration, t.FocusDelay, t.Duration)
	}
	if !vmath.IsFinite(t.CameraDistance) || t.CameraDistance <= 0 {
		return fmt.Errorf("%w: camera distance %v must be positive", layout.ErrInvalidConfiguration, t.CameraDistance)
	}
	if !vmath.Finite(t.Home.Position) || !vmath.Finite(t.Home.LookAt) {
		return fmt.Errorf("%w: camera home must be finite", layout.ErrInvalidConfiguration)
	}
	if r3.Norm(r3.Sub(t.Home.Position, t.Home.LookAt)) == 0 {
		return fmt.Errorf("%w: camera home sits on its look-at point", layout.ErrInvalidConfiguration)
	}
	return nil
}

// Total is the length of a focus-in run including the delayed fade-in
func (t Timing) Total() time.Duration {
	return t.FocusDelay + t.Duration
}
