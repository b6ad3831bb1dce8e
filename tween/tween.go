// Package tween is a frame-driven interpolation scheduler.
//
// Entries are (target, from, to, delay, duration, ease) tuples advanced by
// elapsed time once per frame. Each target carries a generation counter:
// Kill bumps it and every entry registered under an older generation is
// dropped before it can write again. The start value of an entry is captured
// when its delay elapses, not when it is scheduled.
package tween

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/vmath"
)

// Target names a shared animated property
type Target string

// Spec describes when and how an entry runs
type Spec struct {
	Delay    time.Duration
	Duration time.Duration
	Ease     vmath.EaseFunc // nil = vmath.EaseInOutQuad

	OnStart    func()
	OnUpdate   func()
	OnComplete func()
}

type entry struct {
	target Target
	gen    uint64
	start  time.Duration
	dur    time.Duration
	ease   vmath.EaseFunc

	begin func()
	apply func(t float64, done bool)
	spec  Spec

	started bool
	dead    bool
}

// Scheduler owns all pending entries
// Not safe for concurrent use; the frame loop is the only caller
type Scheduler struct {
	now     time.Duration
	gens    map[Target]uint64
	entries []*entry
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		gens: make(map[Target]uint64),
	}
}

func (s *Scheduler) add(target Target, spec Spec, begin func(), apply func(float64, bool)) {
	ease := spec.Ease
	if ease == nil {
		ease = vmath.EaseInOutQuad
	}
	s.entries = append(s.entries, &entry{
		target: target,
		gen:    s.gens[target],
		start:  s.now + spec.Delay,
		dur:    spec.Duration,
		ease:   ease,
		begin:  begin,
		apply:  apply,
		spec:   spec,
	})
}

// Scalar animates *ptr toward to
func (s *Scheduler) Scalar(target Target, ptr *float64, to float64, spec Spec) {
	var from float64
	s.add(target, spec,
		func() { from = *ptr },
		func(t float64, done bool) {
			if done {
				*ptr = to
				return
			}
			*ptr = vmath.Lerp(from, to, t)
		},
	)
}

// Vector animates *ptr toward to
func (s *Scheduler) Vector(target Target, ptr *r3.Vec, to r3.Vec, spec Spec) {
	var from r3.Vec
	s.add(target, spec,
		func() { from = *ptr },
		func(t float64, done bool) {
			if done {
				*ptr = to
				return
			}
			*ptr = vmath.LerpVec(from, to, t)
		},
	)
}

// Call runs fn once delay has elapsed, unless target is killed first
func (s *Scheduler) Call(target Target, delay time.Duration, fn func()) {
	s.add(target, Spec{Delay: delay, Ease: vmath.Linear, OnComplete: fn}, func() {}, func(float64, bool) {})
}

// Kill discards every pending entry on the given targets
// Entries already written this frame keep their values; nothing further is written
func (s *Scheduler) Kill(targets ...Target) {
	for _, t := range targets {
		s.gens[t]++
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.gen != s.gens[e.target] {
			e.dead = true
			continue
		}
		kept = append(kept, e)
	}
	clear(s.entries[len(kept):])
	s.entries = kept
}

// Generation returns the current generation of target
func (s *Scheduler) Generation(target Target) uint64 {
	return s.gens[target]
}

// Advance moves scheduler time forward by dt and writes every running entry
// Callbacks may schedule or kill entries; new entries start on a later Advance
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	pending := make([]*entry, len(s.entries))
	copy(pending, s.entries)

	for _, e := range pending {
		if e.dead || e.gen != s.gens[e.target] {
			e.dead = true
			continue
		}
		if s.now < e.start {
			continue
		}
		if !e.started {
			e.started = true
			e.begin()
			if e.spec.OnStart != nil {
				e.spec.OnStart()
			}
			if e.dead {
				continue
			}
		}

		progress := 1.0
		if e.dur > 0 {
			progress = vmath.Clamp01(float64(s.now-e.start) / float64(e.dur))
		}
		done := progress >= 1

		e.apply(e.ease(progress), done)
		if e.spec.OnUpdate != nil {
			e.spec.OnUpdate()
		}
		if done {
			e.dead = true
			if e.spec.OnComplete != nil {
				e.spec.OnComplete()
			}
		}
	}

	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.dead {
			kept = append(kept, e)
		}
	}
	clear(s.entries[len(kept):])
	s.entries = kept
}

// Active reports whether any entry is pending or running
func (s *Scheduler) Active() bool {
	return len(s.entries) > 0
}

// ActiveOn reports whether target has a pending or running entry
func (s *Scheduler) ActiveOn(target Target) bool {
	for _, e := range s.entries {
		if e.target == target && !e.dead {
			return true
		}
	}
	return false
}

// Len returns the number of pending or running entries
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// Now returns total advanced time
func (s *Scheduler) Now() time.Duration {
	return s.now
}
