package event

import (
	"sync/atomic"

	"github.com/lixenwraith/chromasphere/parameter"
)

// Queue is a lock-free MPSC ring of scene events
//
// Producers (input goroutine, config watcher) claim a slot by bumping tail
// and publish it with the slot's ready flag; the frame loop drains ready
// slots in order. A producer that laps the consumer moves head forward:
// the oldest events are lost and counted in Dropped.
type Queue struct {
	slots   [parameter.EventQueueSize]slot
	head    atomic.Uint64
	tail    atomic.Uint64
	dropped atomic.Uint64
}

type slot struct {
	ev    Event
	ready atomic.Bool // set after ev is written
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends ev; safe for concurrent producers
func (q *Queue) Push(ev Event) {
	pos := q.tail.Add(1) - 1
	s := &q.slots[pos&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	floor := pos + 1
	if floor < parameter.EventQueueSize {
		return
	}
	floor -= parameter.EventQueueSize
	for {
		head := q.head.Load()
		if head >= floor {
			return
		}
		if q.head.CompareAndSwap(head, floor) {
			q.dropped.Add(floor - head)
			return
		}
	}
}

// Drain appends every published event to dst in FIFO order and returns it
// Consecutive pointer moves collapse into the newest one: only the last
// hovered index matters to the tracker. Single consumer only
func (q *Queue) Drain(dst []Event) []Event {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail-head > parameter.EventQueueSize {
		head = tail - parameter.EventQueueSize
	}

	first := len(dst)
	next := head
	for ; next < tail; next++ {
		s := &q.slots[next&parameter.EventBufferMask]
		if !s.ready.Load() {
			break // producer still writing
		}
		ev := s.ev
		s.ev = Event{}
		s.ready.Store(false)

		if n := len(dst); ev.Type == EventPointerMove && n > first && dst[n-1].Type == EventPointerMove {
			dst[n-1] = ev
			continue
		}
		dst = append(dst, ev)
	}

	for {
		cur := q.head.Load()
		if cur >= next || q.head.CompareAndSwap(cur, next) {
			return dst
		}
	}
}

// Consume drains into a new slice; nil when nothing is pending
func (q *Queue) Consume() []Event {
	return q.Drain(nil)
}

// Len returns the approximate pending count
func (q *Queue) Len() int {
	head, tail := q.head.Load(), q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Dropped returns how many events were overwritten before being drained
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Sink receives events emitted by core components
type Sink interface {
	Push(Event)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Event)

// Push calls f(ev)
func (f SinkFunc) Push(ev Event) { f(ev) }

// Discard drops every event
var Discard Sink = SinkFunc(func(Event) {})
