package mocks

import (
	"sync"
	"time"

	"github.com/9910597111/BlindSketch-Game/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing. Timers scheduled
// through AfterFunc fire synchronously, in deadline order, from Advance.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	timers  []*mockTimer
	nextSeq int
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers fn to fire once the clock has been advanced past d
func (c *MockClock) AfterFunc(d time.Duration, fn func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &mockTimer{
		clk:      c,
		deadline: c.current.Add(d),
		fn:       fn,
		seq:      c.nextSeq,
	}
	c.nextSeq++
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every due timer in deadline
// order. Callbacks run on the caller's goroutine with no lock held, so they
// may schedule further timers; those fire too if they fall within the window.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)

	for {
		t := c.popDue(target)
		if t == nil {
			break
		}
		if t.deadline.After(c.current) {
			c.current = t.deadline
		}
		c.mu.Unlock()
		t.fn()
		c.mu.Lock()
	}

	c.current = target
	c.mu.Unlock()
}

// Set moves the clock to the given time, firing due timers on the way
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	d := t.Sub(c.current)
	c.mu.Unlock()
	if d > 0 {
		c.Advance(d)
		return
	}
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// PendingTimers returns the number of scheduled, unfired timers
func (c *MockClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// popDue removes and returns the earliest live timer with deadline <= target,
// or nil if none. Caller must hold c.mu.
func (c *MockClock) popDue(target time.Time) *mockTimer {
	var best *mockTimer
	bestIdx := -1
	for i, t := range c.timers {
		if t.stopped || t.fired || t.deadline.After(target) {
			continue
		}
		if best == nil || t.deadline.Before(best.deadline) ||
			(t.deadline.Equal(best.deadline) && t.seq < best.seq) {
			best = t
			bestIdx = i
		}
	}
	if best == nil {
		return nil
	}
	best.fired = true
	c.timers = append(c.timers[:bestIdx], c.timers[bestIdx+1:]...)
	return best
}

type mockTimer struct {
	clk      *MockClock
	deadline time.Time
	fn       func()
	seq      int
	stopped  bool
	fired    bool
}

// Stop cancels the timer, reporting whether it was still pending
func (t *mockTimer) Stop() bool {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
