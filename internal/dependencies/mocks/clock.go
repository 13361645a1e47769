package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Scheduled calls only run when Advance or Set moves time past them, and
// they run on the caller's goroutine.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	timers      []*MockTimer
	seq         int
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// AfterFunc registers f to run once the clock reaches now+d
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &MockTimer{clock: c, at: c.CurrentTime.Add(d), fn: f, seq: c.seq}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by the given duration, firing due timers
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.CurrentTime.Add(d)
	c.mu.Unlock()
	c.Set(target)
}

// Set sets the clock to the given time, firing due timers in order
func (c *MockClock) Set(t time.Time) {
	for {
		c.mu.Lock()
		next := c.nextDueLocked(t)
		if next == nil {
			c.CurrentTime = t
			c.mu.Unlock()
			return
		}
		if next.at.After(c.CurrentTime) {
			c.CurrentTime = next.at
		}
		c.removeLocked(next)
		c.mu.Unlock()

		// Run outside the lock so f may schedule or stop timers
		next.fn()
	}
}

// Pending returns the number of scheduled calls that have not fired
func (c *MockClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *MockClock) nextDueLocked(t time.Time) *MockTimer {
	due := make([]*MockTimer, 0, len(c.timers))
	for _, tm := range c.timers {
		if !tm.at.After(t) {
			due = append(due, tm)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (c *MockClock) removeLocked(t *MockTimer) bool {
	for i, tm := range c.timers {
		if tm == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// MockTimer is a call scheduled on a MockClock
type MockTimer struct {
	clock *MockClock
	at    time.Time
	fn    func()
	seq   int
}

// Stop cancels the call if it has not fired yet
func (t *MockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	return t.clock.removeLocked(t)
}
