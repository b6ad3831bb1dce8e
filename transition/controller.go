// Package transition runs the cancellable focus and unfocus sequences.
//
// A confirm from Idle snapshots the selected instance and eases the camera
// toward it while the crowd fades and the pick mesh collapses; the focused
// orb and the options panel fade in only after FocusDelay. Back reverses it.
// Every run gets a new token and kills the previous run's entries on all
// shared targets, so a late callback from a cancelled run never writes.
package transition

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/camera"
	"github.com/lixenwraith/chromasphere/interaction"
	"github.com/lixenwraith/chromasphere/scene"
	"github.com/lixenwraith/chromasphere/store"
	"github.com/lixenwraith/chromasphere/tween"
	"github.com/lixenwraith/chromasphere/vmath"
)

// Trigger rejection reasons
var (
	ErrWrongPhase  = errors.New("trigger not valid in current phase")
	ErrNoSelection = errors.New("no valid selection")
)

// Token identifies one run; zero means no run has started
type Token uint64

// Snapshot is the focused instance captured at confirm time
type Snapshot struct {
	Index    int
	Position r3.Vec // world space, mesh rotation applied
	Color    colorful.Color
}

// Animated targets shared between focus-in and focus-out
const (
	TargetCamera   tween.Target = "camera.position"
	TargetControls tween.Target = "controls.target"
	TargetCrowd    tween.Target = "crowd.opacity"
	TargetMesh     tween.Target = "mesh.scale"
	TargetFocus    tween.Target = "focus.opacity"
	TargetOptions  tween.Target = "options.opacity"
	TargetTimeline tween.Target = "timeline"
)

var sharedTargets = []tween.Target{
	TargetCamera, TargetControls, TargetCrowd, TargetMesh, TargetFocus, TargetOptions, TargetTimeline,
}

// PhaseFunc observes phase changes
type PhaseFunc func(from, to Phase, token Token)

// RejectFunc observes ignored triggers; err wraps one of the rejection reasons or scene.ErrNotReady
type RejectFunc func(trigger string, err error)

// Controller is the sole writer of the phase, the run token and the animated handle values
// Not safe for concurrent use; the frame loop is the only caller
type Controller struct {
	store   *store.Store
	tracker *interaction.Tracker
	sched   *tween.Scheduler
	timing  Timing
	handles *scene.Handles

	phase Phase
	token Token
	snap  Snapshot

	onPhase  []PhaseFunc
	onReject []RejectFunc
	logger   *slog.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger; default slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an idle controller. A nil scheduler gets a fresh one; an
// invalid timing falls back to DefaultTiming.
func New(st *store.Store, tr *interaction.Tracker, sched *tween.Scheduler, timing Timing, opts ...Option) *Controller {
	if sched == nil {
		sched = tween.NewScheduler()
	}
	if timing.Ease == nil {
		timing.Ease = vmath.EaseInOutQuad
	}
	c := &Controller{
		store:   st,
		tracker: tr,
		sched:   sched,
		timing:  timing,
		snap:    Snapshot{Index: interaction.None},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := timing.Validate(); err != nil {
		c.logger.Warn("invalid transition timing, using defaults", "error", err)
		c.timing = DefaultTiming()
	}
	return c
}

// Mount attaches the render handles; fields may still be nil
func (c *Controller) Mount(h *scene.Handles) {
	c.handles = h
}

// Unmount detaches the handles; later triggers are no-ops until the next Mount
func (c *Controller) Unmount() {
	c.handles = nil
}

// OnPhaseChange registers fn to run after each phase change
func (c *Controller) OnPhaseChange(fn PhaseFunc) {
	c.onPhase = append(c.onPhase, fn)
}

// OnReject registers fn to run when a trigger is ignored
func (c *Controller) OnReject(fn RejectFunc) {
	c.onReject = append(c.onReject, fn)
}

// SetTiming replaces the timing used by the next run
func (c *Controller) SetTiming(t Timing) error {
	if t.Ease == nil {
		t.Ease = vmath.EaseInOutQuad
	}
	if err := t.Validate(); err != nil {
		return err
	}
	c.timing = t
	return nil
}

// Timing returns the active timing
func (c *Controller) Timing() Timing { return c.timing }

// Phase returns the current phase
func (c *Controller) Phase() Phase { return c.phase }

// Token returns the token of the latest run
func (c *Controller) Token() Token { return c.token }

// Snapshot returns the instance captured by the latest confirm
func (c *Controller) Snapshot() Snapshot { return c.snap }

// Home returns the camera resting pose
func (c *Controller) Home() camera.Pose { return c.timing.Home }

// Scheduler exposes the scheduler driving the runs
func (c *Controller) Scheduler() *tween.Scheduler { return c.sched }

// Update advances every running sequence by dt
func (c *Controller) Update(dt time.Duration) {
	c.sched.Advance(dt)
}

// Confirm focuses the tracker's selected instance
// Returns false and changes nothing when the trigger is not valid right now
func (c *Controller) Confirm() bool {
	sel := interaction.None
	if c.tracker != nil {
		sel = c.tracker.Selected()
	}
	return c.ConfirmIndex(sel)
}

// ConfirmIndex focuses instance i; see Confirm
func (c *Controller) ConfirmIndex(i int) bool {
	if err := c.confirm(i); err != nil {
		c.reject("confirm", err)
		return false
	}
	return true
}

// Back returns to the overview from Focused, or interrupts a running focus-in
func (c *Controller) Back() bool {
	if err := c.back(); err != nil {
		c.reject("back", err)
		return false
	}
	return true
}

// AdjustNoise changes the focused orb noise by delta, clamped to [0, 1]
// Only valid while Focused
func (c *Controller) AdjustNoise(delta float64) bool {
	if c.phase != PhaseFocused {
		c.reject("noise", fmt.Errorf("%w: %s", ErrWrongPhase, c.phase))
		return false
	}
	if err := c.handles.Ready(); err != nil {
		c.reject("noise", err)
		return false
	}
	c.handles.Focus.Noise = vmath.Clamp01(c.handles.Focus.Noise + delta)
	return true
}

func (c *Controller) confirm(i int) error {
	if c.phase != PhaseIdle {
		return fmt.Errorf("%w: %s", ErrWrongPhase, c.phase)
	}
	if i == interaction.None || c.store == nil || !c.store.Valid(i) {
		return fmt.Errorf("%w: index %d", ErrNoSelection, i)
	}
	if err := c.handles.Ready(); err != nil {
		return err
	}
	h := c.handles

	target, err := c.store.WorldPosition(i)
	if err != nil {
		return err
	}
	color, err := c.store.ColorAt(i)
	if err != nil {
		return err
	}

	c.sched.Kill(sharedTargets...)
	c.token++
	run := c.token
	c.snap = Snapshot{Index: i, Position: target, Color: color}
	c.setPhase(PhaseFocusingIn)

	t := c.timing
	cam := h.Camera
	h.Controls.Enabled = false
	h.Focus.Color = color
	h.Focus.Position = target

	dest := r3.Add(target, r3.Scale(t.CameraDistance, cam.DirectionFrom(target)))

	// Camera, crowd fade and mesh collapse start together
	c.sched.Vector(TargetCamera, &cam.Position, dest, tween.Spec{
		Duration: t.Duration,
		Ease:     t.Ease,
		OnUpdate: func() { cam.Aim(target) },
		OnComplete: func() {
			if c.token != run {
				return
			}
			h.Controls.Target = target
			h.Controls.Enabled = true
		},
	})
	c.sched.Vector(TargetControls, &h.Controls.Target, target, tween.Spec{Duration: t.Duration, Ease: t.Ease})
	c.sched.Scalar(TargetCrowd, &h.Crowd.Opacity, 0, tween.Spec{Duration: t.Duration, Ease: t.Ease})
	c.sched.Vector(TargetMesh, &h.Mesh.Scale, r3.Vec{}, tween.Spec{Duration: t.Duration, Ease: t.Ease})

	// The orb never shows before the crowd has receded
	c.sched.Scalar(TargetFocus, &h.Focus.Opacity, 1, tween.Spec{Delay: t.FocusDelay, Duration: t.Duration, Ease: t.Ease})
	c.sched.Scalar(TargetOptions, &h.Options.Opacity, 1, tween.Spec{Delay: t.FocusDelay, Duration: t.Duration, Ease: t.Ease})

	c.sched.Call(TargetTimeline, t.Total(), func() {
		if c.token != run {
			return
		}
		c.setPhase(PhaseFocused)
	})

	c.logger.Debug("focus started", "index", i, "token", run, "target", target)
	return nil
}

func (c *Controller) back() error {
	if c.phase != PhaseFocused && c.phase != PhaseFocusingIn {
		return fmt.Errorf("%w: %s", ErrWrongPhase, c.phase)
	}
	if err := c.handles.Ready(); err != nil {
		return err
	}
	h := c.handles

	c.sched.Kill(sharedTargets...)
	c.token++
	run := c.token
	c.setPhase(PhaseFocusingOut)

	t := c.timing
	cam := h.Camera
	home := t.Home
	h.Controls.Enabled = false
	h.Mesh.Scale = r3.Vec{X: 1, Y: 1, Z: 1}

	c.sched.Scalar(TargetCrowd, &h.Crowd.Opacity, 1, tween.Spec{Duration: t.Duration, Ease: t.Ease})
	c.sched.Vector(TargetCamera, &cam.Position, home.Position, tween.Spec{
		Duration: t.Duration,
		Ease:     t.Ease,
		OnUpdate: func() { cam.Aim(home.LookAt) },
	})
	c.sched.Vector(TargetControls, &h.Controls.Target, home.LookAt, tween.Spec{Duration: t.Duration, Ease: t.Ease})
	c.sched.Scalar(TargetFocus, &h.Focus.Opacity, 0, tween.Spec{Duration: t.Duration, Ease: t.Ease})
	c.sched.Scalar(TargetOptions, &h.Options.Opacity, 0, tween.Spec{Duration: t.Duration, Ease: t.Ease})

	c.sched.Call(TargetTimeline, t.Duration, func() {
		if c.token != run {
			return
		}
		cam.SetPose(home)
		h.Controls.Target = home.LookAt
		h.Controls.Enabled = true
		c.setPhase(PhaseIdle)
	})

	c.logger.Debug("focus reversed", "token", run, "index", c.snap.Index)
	return nil
}

func (c *Controller) setPhase(to Phase) {
	from := c.phase
	if !CanTransition(from, to) {
		// Unreachable through the public triggers
		c.logger.Error("invalid phase transition", "from", from, "to", to)
		return
	}
	c.phase = to
	for _, fn := range c.onPhase {
		fn(from, to, c.token)
	}
}

func (c *Controller) reject(trigger string, err error) {
	c.logger.Debug("trigger ignored", "trigger", trigger, "phase", c.phase, "error", err)
	for _, fn := range c.onReject {
		fn(trigger, err)
	}
}
