package transition

// Phase is the focus transition phase
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFocusingIn
	PhaseFocused
	PhaseFocusingOut
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFocusingIn:
		return "focusing-in"
	case PhaseFocused:
		return "focused"
	case PhaseFocusingOut:
		return "focusing-out"
	default:
		return "unknown"
	}
}

// Animating reports whether a sequence is running in this phase
func (p Phase) Animating() bool {
	return p == PhaseFocusingIn || p == PhaseFocusingOut
}

var validTransitions = map[Phase][]Phase{
	PhaseIdle:        {PhaseFocusingIn},
	PhaseFocusingIn:  {PhaseFocused, PhaseFocusingOut},
	PhaseFocused:     {PhaseFocusingOut},
	PhaseFocusingOut: {PhaseIdle},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to Phase) bool {
	for _, phase := range validTransitions[from] {
		if phase == to {
			return true
		}
	}
	return false
}
