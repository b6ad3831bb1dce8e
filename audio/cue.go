package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/chromasphere/parameter"
	"github.com/lixenwraith/chromasphere/transition"
)

// Cue is a short tone marking a settled transition
type Cue int

const (
	CueNone Cue = iota
	CueFocus
	CueOverview
)

func (c Cue) String() string {
	switch c {
	case CueFocus:
		return "focus"
	case CueOverview:
		return "overview"
	default:
		return "none"
	}
}

// CueFor maps a phase change to the cue it plays
// Only settled phases sound; cancelled runs stay silent
func CueFor(from, to transition.Phase) Cue {
	switch {
	case from == transition.PhaseFocusingIn && to == transition.PhaseFocused:
		return CueFocus
	case from == transition.PhaseFocusingOut && to == transition.PhaseIdle:
		return CueOverview
	default:
		return CueNone
	}
}

// CreateCue builds the streamer for c at the given linear volume
func CreateCue(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var from, to float64
	switch c {
	case CueFocus:
		from, to = parameter.CueFocusFrom, parameter.CueFocusTo
	case CueOverview:
		from, to = parameter.CueFocusFrom, parameter.CueOverviewTo
	default:
		return nil
	}

	tone := NewSweep(from, to, parameter.CueDuration, rate)
	shaped := NewEnvelope(tone, parameter.CueDuration, parameter.CueAttack, parameter.CueRelease, rate)
	return newVolume(shaped, parameter.CueAmplitude*volume)
}
