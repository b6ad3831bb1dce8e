package parameter

// Terminal Projection
const (
	// CameraFOV is the vertical field of view in degrees
	CameraFOV = 50.0

	// CameraNear clips instances closer than this distance
	CameraNear = 0.01

	// CellAspect compensates for terminal cells being roughly twice as tall as wide
	CellAspect = 2.0

	// PickRadiusCells is the maximum cell distance for a pointer to hit an instance
	PickRadiusCells = 1.5
)

// Outline strengths blended toward white on hovered/selected instances
const (
	HoverOutlineStrength    = 0.35
	SelectedOutlineStrength = 0.7
)

// Instance Shading
const (
	// OrbRadius is the world radius of the focused orb
	OrbRadius = InstanceRadius

	// BreathAmplitude is the world-space wobble of each instance driven by the time uniform
	BreathAmplitude = 0.01

	// BreathPhaseStep offsets the wobble phase per instance index
	BreathPhaseStep = 0.1

	// HUDRows is reserved at the bottom of the screen for status and options
	HUDRows = 2
)

// Pointer Controls
const (
	// OrbitStep is the camera yaw/pitch per arrow key or dragged cell, in radians
	OrbitStep = 0.05

	// ZoomInFactor and ZoomOutFactor scale the camera distance per wheel notch
	ZoomInFactor  = 0.9
	ZoomOutFactor = 1 / ZoomInFactor
)
