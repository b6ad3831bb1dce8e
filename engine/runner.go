// Package engine drives one scene frame at a time.
//
// Within a frame, queued input reaches the interaction tracker and the
// transition controller first, then the controller advances its sequences,
// then the time uniform moves, and only then is the frame uploaded to the
// surface. Producers on other goroutines only ever touch the event queue.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lixenwraith/chromasphere/event"
	"github.com/lixenwraith/chromasphere/interaction"
	"github.com/lixenwraith/chromasphere/parameter"
	"github.com/lixenwraith/chromasphere/scene"
	"github.com/lixenwraith/chromasphere/store"
	"github.com/lixenwraith/chromasphere/transition"
	"github.com/lixenwraith/chromasphere/vmath"
)

// FrameObserver receives the simulated delta and the wall time spent in each tick
type FrameObserver func(dt, took time.Duration)

// Runner owns the frame loop
type Runner struct {
	queue   *event.Queue
	tracker *interaction.Tracker
	ctrl    *transition.Controller
	handles *scene.Handles
	surface scene.Surface

	clock    Clock
	interval time.Duration
	observe  FrameObserver
	logger   *slog.Logger

	pending []event.Event
	seq     uint64
	last    time.Time
}

// Option configures a Runner
type Option func(*Runner)

// WithClock replaces the real clock
func WithClock(c Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithInterval sets the Run tick interval; default parameter.FrameUpdateInterval
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithFrameObserver is called after every tick
func WithFrameObserver(fn FrameObserver) Option {
	return func(r *Runner) { r.observe = fn }
}

// WithLogger sets the logger; default slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner wires the frame loop and mounts handles on the controller
// A nil surface discards frames
func NewRunner(tracker *interaction.Tracker, ctrl *transition.Controller, handles *scene.Handles, surface scene.Surface, opts ...Option) *Runner {
	if surface == nil {
		surface = scene.SurfaceFunc(func(scene.Frame) {})
	}
	if handles == nil {
		handles = &scene.Handles{}
	}
	r := &Runner{
		queue:    event.NewQueue(),
		tracker:  tracker,
		ctrl:     ctrl,
		handles:  handles,
		surface:  surface,
		clock:    SystemClock{},
		interval: parameter.FrameUpdateInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	ctrl.Mount(handles)
	return r
}

// Push queues an event for the next tick; safe from any goroutine
func (r *Runner) Push(ev event.Event) {
	r.queue.Push(ev)
}

// Tick runs one frame with the given simulated delta and returns the uploaded frame
func (r *Runner) Tick(dt time.Duration) scene.Frame {
	start := time.Now()
	dt = min(max(dt, 0), parameter.MaxFrameDelta)

	r.pending = r.queue.Drain(r.pending[:0])
	for _, ev := range r.pending {
		r.dispatch(ev)
	}
	clear(r.pending)

	r.ctrl.Update(dt)

	if c := r.handles.Crowd; c != nil {
		c.Time += dt.Seconds()
		c.Hovered, c.Selected = r.tracker.Uniforms()
	}

	r.seq++
	f := scene.Frame{Seq: r.seq, Focused: interaction.None}
	r.handles.Capture(&f)
	f.Phase = r.ctrl.Phase().String()
	if r.ctrl.Phase() != transition.PhaseIdle {
		f.Focused = r.ctrl.Snapshot().Index
	}
	r.surface.Upload(f)

	if r.observe != nil {
		r.observe(dt, time.Since(start))
	}
	return f
}

// Run ticks at the configured interval until ctx is done
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.last = r.clock.Now()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			now := r.clock.Now()
			dt := now.Sub(r.last)
			r.last = now
			r.Tick(dt)
		}
	}
}

// Dropped returns how many queued events were overwritten before a tick consumed them
func (r *Runner) Dropped() uint64 { return r.queue.Dropped() }

// Frames returns the number of ticks run so far
func (r *Runner) Frames() uint64 { return r.seq }

func (r *Runner) dispatch(ev event.Event) {
	var err error
	switch ev.Type {
	case event.EventPointerEnter:
		if p, ok := ev.Payload.(*event.PointerPayload); ok {
			err = r.tracker.PointerEnter(p.Index)
		}
	case event.EventPointerMove:
		if p, ok := ev.Payload.(*event.PointerPayload); ok {
			err = r.tracker.PointerMove(p.Index)
		}
	case event.EventPointerOut:
		r.tracker.PointerOut()
	case event.EventPointerClick:
		if p, ok := ev.Payload.(*event.PointerPayload); ok {
			err = r.tracker.Click(p.Index)
		}
	case event.EventDrag:
		if p, ok := ev.Payload.(*event.DragPayload); ok {
			r.tracker.SetDragging(p.Dragging)
		}
	case event.EventConfirm:
		r.ctrl.Confirm()
	case event.EventBack:
		r.ctrl.Back()
	case event.EventNoise:
		if p, ok := ev.Payload.(*event.NoisePayload); ok {
			r.ctrl.AdjustNoise(p.Delta)
		}
	case event.EventOrbit:
		if p, ok := ev.Payload.(*event.OrbitPayload); ok {
			r.orbit(p)
		}
	case event.EventTimingReload:
		if p, ok := ev.Payload.(*event.TimingPayload); ok {
			err = r.reloadTiming(p)
		}
	default:
		r.logger.Debug("event ignored by frame loop", "type", ev.Type)
	}

	if err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			r.logger.Warn("pointer index rejected", "type", ev.Type, "error", err)
			return
		}
		r.logger.Warn("event failed", "type", ev.Type, "error", err)
	}
}

func (r *Runner) orbit(p *event.OrbitPayload) {
	h := r.handles
	if h.Controls == nil || h.Camera == nil {
		return
	}
	h.Controls.Orbit(h.Camera, p.Yaw, p.Pitch)
	if p.Zoom != 0 {
		h.Controls.Zoom(h.Camera, p.Zoom)
	}
}

func (r *Runner) reloadTiming(p *event.TimingPayload) error {
	t := r.ctrl.Timing()
	t.Duration = p.Duration
	t.FocusDelay = p.FocusDelay
	t.CameraDistance = p.CameraDistance
	if p.Ease != "" {
		t.Ease = vmath.EaseByName(p.Ease)
	}
	if err := r.ctrl.SetTiming(t); err != nil {
		return err
	}
	r.logger.Info("transition timing reloaded", "duration", t.Duration, "focus_delay", t.FocusDelay, "camera_distance", t.CameraDistance)
	return nil
}
