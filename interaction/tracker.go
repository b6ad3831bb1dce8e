// Package interaction records which instance is hovered and which is
// selected. It does not hit-test: the presentation surface resolves pointer
// positions to indices and hands them in.
package interaction

import (
	"fmt"

	"github.com/lixenwraith/chromasphere/event"
	"github.com/lixenwraith/chromasphere/store"
)

// None is the sentinel index for "no instance"
const None = -1

// State is a copy of the tracker indices
type State struct {
	Hovered  int
	Selected int
}

// Tracker is the sole writer of the hovered and selected indices
// Reads are side-effect free and cheap enough for every frame
type Tracker struct {
	count    int
	state    State
	dragging bool
	version  uint64
	sink     event.Sink
}

// NewTracker creates a tracker for count instances with nothing hovered or selected
func NewTracker(count int, sink event.Sink) *Tracker {
	if sink == nil {
		sink = event.Discard
	}
	return &Tracker{
		count: count,
		state: State{Hovered: None, Selected: None},
		sink:  sink,
	}
}

func (t *Tracker) check(i int) error {
	if i == None || (i >= 0 && i < t.count) {
		return nil
	}
	return fmt.Errorf("%w: %d not in [0,%d) and not None", store.ErrIndexOutOfRange, i, t.count)
}

// SetHovered records the hovered index; out-of-range leaves state untouched
func (t *Tracker) SetHovered(i int) error {
	if err := t.check(i); err != nil {
		return err
	}
	if t.state.Hovered != i {
		t.state.Hovered = i
		t.version++
	}
	return nil
}

// SetSelected records the selected index; out-of-range leaves state untouched
func (t *Tracker) SetSelected(i int) error {
	if err := t.check(i); err != nil {
		return err
	}
	if t.state.Selected != i {
		t.state.Selected = i
		t.version++
	}
	return nil
}

// Hovered returns the hovered index or None
func (t *Tracker) Hovered() int { return t.state.Hovered }

// Selected returns the selected index or None
func (t *Tracker) Selected() int { return t.state.Selected }

// State returns both indices
func (t *Tracker) State() State { return t.state }

// Version increments on every observable change; repeated identical writes leave it unchanged
func (t *Tracker) Version() uint64 { return t.version }

// Uniforms returns the indices in shader uniform form
func (t *Tracker) Uniforms() (hovered, selected int32) {
	return int32(t.state.Hovered), int32(t.state.Selected)
}

// Dragging reports whether a camera drag is in progress
func (t *Tracker) Dragging() bool { return t.dragging }
