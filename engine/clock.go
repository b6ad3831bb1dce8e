package engine

import (
	"sync"
	"time"
)

// Clock is the time source of the frame loop
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall time with its monotonic component
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to; frames driven by it advance by exactly the stepped amount
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock starts at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
