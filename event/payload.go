package event

import "time"

// PointerPayload carries the instance index resolved by the hit test
// Index is -1 when the pointer is over no instance
type PointerPayload struct {
	Index int
}

// DragPayload reports camera drag state
type DragPayload struct {
	Dragging bool
}

// NoisePayload adjusts the focused material noise by Delta
type NoisePayload struct {
	Delta float64
}

// OrbitPayload rotates the camera by Yaw/Pitch radians and scales distance by Zoom (0 = unchanged)
type OrbitPayload struct {
	Yaw, Pitch, Zoom float64
}

// CursorStyle is the pointer cursor shape
type CursorStyle int

const (
	CursorAuto CursorStyle = iota
	CursorPointer
)

// String returns the CSS-like cursor name
func (c CursorStyle) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "auto"
}

// CursorPayload carries the requested cursor style
type CursorPayload struct {
	Style CursorStyle
}

// TimingPayload carries reloaded transition timing
type TimingPayload struct {
	Duration       time.Duration
	FocusDelay     time.Duration
	CameraDistance float64
	Ease           string
}
