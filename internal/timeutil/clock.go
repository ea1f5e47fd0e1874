// Package timeutil provides a testable abstraction over the time operations
// the capture pipelines depend on: reading timestamps and pacing frames.
package timeutil

import (
	"sync"
	"time"
)

// Clock supplies the current time and frame pacing. Pipelines take a Clock
// so tests can run capture loops without real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock is the production Clock backed by the time package.
type RealClock struct{}

func (RealClock) Now() time.Time        { return time.Now() }
func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// FakeClock is a manually advanced Clock for tests. Sleep returns
// immediately and advances the clock by the slept duration, so frame
// timestamps stay monotonic without wall-time delays.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock starts a fake clock at the given instant.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Advance moves the clock forward without sleeping.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
