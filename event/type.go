package event

// EventType represents the type of scene event
type EventType int

const (
	// === Pointer Events ===

	// EventPointerEnter signals the pointer entered an instance
	// Trigger: Presentation surface hit test | Payload: *PointerPayload
	EventPointerEnter EventType = iota + 1

	// EventPointerMove signals the pointer moved over an instance (or off all of them)
	// Trigger: Presentation surface hit test | Payload: *PointerPayload
	EventPointerMove

	// EventPointerOut signals the pointer left the instanced mesh
	// Trigger: Presentation surface hit test | Payload: nil
	EventPointerOut

	// EventPointerClick selects the instance under the pointer
	// Trigger: Presentation surface click | Payload: *PointerPayload
	EventPointerClick

	// EventDrag reports whether a camera drag is in progress
	// Trigger: Presentation surface button state | Payload: *DragPayload
	EventDrag

	// === UI Actions ===

	// EventConfirm starts the focus transition on the selected instance
	// Trigger: "continue" action | Consumer: transition controller | Payload: nil
	EventConfirm

	// EventBack returns to the overview
	// Trigger: "back" action | Consumer: transition controller | Payload: nil
	EventBack

	// EventNoise adjusts the focused material noise uniform
	// Trigger: options panel | Payload: *NoisePayload
	EventNoise

	// EventOrbit rotates the camera around the controls target
	// Trigger: drag / arrow keys | Payload: *OrbitPayload
	EventOrbit

	// === Outputs ===

	// EventCursor requests a pointer cursor style change
	// Trigger: Interaction tracker | Consumer: presentation surface | Payload: *CursorPayload
	EventCursor

	// === Configuration ===

	// EventTimingReload replaces the transition timing for the next run
	// Trigger: Config watcher | Consumer: frame loop | Payload: *TimingPayload
	EventTimingReload
)

var typeNames = map[EventType]string{
	EventPointerEnter: "PointerEnter",
	EventPointerMove:  "PointerMove",
	EventPointerOut:   "PointerOut",
	EventPointerClick: "PointerClick",
	EventDrag:         "Drag",
	EventConfirm:      "Confirm",
	EventBack:         "Back",
	EventNoise:        "Noise",
	EventOrbit:        "Orbit",
	EventCursor:       "Cursor",
	EventTimingReload: "TimingReload",
}

// String returns the event name
func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event represents a single scene event with its payload
type Event struct {
	Type    EventType
	Payload any
}
