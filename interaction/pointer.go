package interaction

import "github.com/lixenwraith/chromasphere/event"

// SetDragging records camera drag state reported by the surface
func (t *Tracker) SetDragging(dragging bool) {
	t.dragging = dragging
}

// PointerEnter updates hover; the cursor only changes when not dragging
func (t *Tracker) PointerEnter(i int) error {
	return t.hover(i)
}

// PointerMove updates hover; the cursor only changes when not dragging
func (t *Tracker) PointerMove(i int) error {
	return t.hover(i)
}

func (t *Tracker) hover(i int) error {
	if err := t.SetHovered(i); err != nil {
		return err
	}
	if t.dragging {
		return nil
	}
	if i == None {
		t.cursor(event.CursorAuto)
	} else {
		t.cursor(event.CursorPointer)
	}
	return nil
}

// PointerOut clears hover and restores the cursor; ignored while dragging
func (t *Tracker) PointerOut() {
	if t.dragging {
		return
	}
	t.cursor(event.CursorAuto)
	_ = t.SetHovered(None)
}

// Click selects the instance under the pointer; ignored while dragging
// The surface only clicks instances; None from other callers clears the selection
func (t *Tracker) Click(i int) error {
	if t.dragging {
		return nil
	}
	if err := t.SetSelected(i); err != nil {
		return err
	}
	t.cursor(event.CursorPointer)
	return nil
}

func (t *Tracker) cursor(style event.CursorStyle) {
	t.sink.Push(event.Event{Type: event.EventCursor, Payload: &event.CursorPayload{Style: style}})
}
