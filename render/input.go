package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chromasphere/event"
	"github.com/lixenwraith/chromasphere/interaction"
	"github.com/lixenwraith/chromasphere/parameter"
)

// Input translates tcell events into scene events
// Runs on the input goroutine; it only reads the surface through HitTest
type Input struct {
	surface *Surface
	sink    event.Sink

	hovered      int
	pressed      bool
	dragged      bool
	lastX, lastY int
}

// NewInput creates a translator pushing into sink
func NewInput(s *Surface, sink event.Sink) *Input {
	return &Input{surface: s, sink: sink, hovered: interaction.None}
}

// Run polls screen until quit is requested or the screen is finalized
func (in *Input) Run(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if !in.Handle(ev) {
			return
		}
	}
}

// Handle processes one event; returns false when the user asked to quit
func (in *Input) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.key(ev)
	case *tcell.EventMouse:
		in.mouse(ev)
	case *tcell.EventResize:
		in.surface.Resize()
	}
	return true
}

func (in *Input) push(t event.EventType, payload any) {
	in.sink.Push(event.Event{Type: t, Payload: payload})
}

func (in *Input) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		in.push(event.EventConfirm, nil)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		in.push(event.EventBack, nil)
	case tcell.KeyLeft:
		in.push(event.EventOrbit, &event.OrbitPayload{Yaw: -parameter.OrbitStep})
	case tcell.KeyRight:
		in.push(event.EventOrbit, &event.OrbitPayload{Yaw: parameter.OrbitStep})
	case tcell.KeyUp:
		in.push(event.EventOrbit, &event.OrbitPayload{Pitch: parameter.OrbitStep})
	case tcell.KeyDown:
		in.push(event.EventOrbit, &event.OrbitPayload{Pitch: -parameter.OrbitStep})
	case tcell.KeyPgUp:
		in.push(event.EventOrbit, &event.OrbitPayload{Zoom: parameter.ZoomInFactor})
	case tcell.KeyPgDn:
		in.push(event.EventOrbit, &event.OrbitPayload{Zoom: parameter.ZoomOutFactor})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'b':
			in.push(event.EventBack, nil)
		case '+', '=':
			in.push(event.EventNoise, &event.NoisePayload{Delta: parameter.NoiseStep})
		case '-', '_':
			in.push(event.EventNoise, &event.NoisePayload{Delta: -parameter.NoiseStep})
		}
	}
	return true
}

func (in *Input) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.Button1 != 0:
		if !in.pressed {
			in.pressed = true
			in.dragged = false
		} else if x != in.lastX || y != in.lastY {
			if !in.dragged {
				in.dragged = true
				in.push(event.EventDrag, &event.DragPayload{Dragging: true})
			}
			in.push(event.EventOrbit, &event.OrbitPayload{
				Yaw:   -float64(x-in.lastX) * parameter.OrbitStep,
				Pitch: float64(y-in.lastY) * parameter.OrbitStep,
			})
		}
	case in.pressed:
		// Release: a press without movement is a click
		in.pressed = false
		if in.dragged {
			in.dragged = false
			in.push(event.EventDrag, &event.DragPayload{Dragging: false})
		} else if hit := in.surface.HitTest(x, y); hit != interaction.None {
			in.push(event.EventPointerClick, &event.PointerPayload{Index: hit})
		}
	}

	if buttons&tcell.WheelUp != 0 {
		in.push(event.EventOrbit, &event.OrbitPayload{Zoom: parameter.ZoomInFactor})
	}
	if buttons&tcell.WheelDown != 0 {
		in.push(event.EventOrbit, &event.OrbitPayload{Zoom: parameter.ZoomOutFactor})
	}

	in.lastX, in.lastY = x, y
	in.hover(in.surface.HitTest(x, y))
}

func (in *Input) hover(i int) {
	if i == in.hovered {
		return
	}
	switch {
	case i == interaction.None:
		in.push(event.EventPointerOut, nil)
	case in.hovered == interaction.None:
		in.push(event.EventPointerEnter, &event.PointerPayload{Index: i})
	default:
		in.push(event.EventPointerMove, &event.PointerPayload{Index: i})
	}
	in.hovered = i
}
