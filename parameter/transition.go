package parameter

import "time"

// Focus Transition Timing
const (
	// DefaultTransitionDuration is the length of each eased phase
	DefaultTransitionDuration = 1 * time.Second

	// DefaultFocusDelay holds the focused object fade-in until the crowd has receded
	DefaultFocusDelay = DefaultTransitionDuration

	// DefaultCameraDistance is the camera distance from the focused instance
	DefaultCameraDistance = 0.5
)

// Camera Home Pose
// The overview camera sits on the diagonal looking at the origin
const (
	DefaultCameraHomeX = 4.0
	DefaultCameraHomeY = 4.0
	DefaultCameraHomeZ = 4.0
)

// Focus Material
const (
	// NoiseStep is the per-keypress change of the focused orb noise uniform
	NoiseStep = 0.05
)
