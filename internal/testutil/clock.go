// Package testutil provides hand-written in-memory fakes for the domain
// ports. Tests wire use cases against these instead of a real database.
package testutil

import (
	"time"
)

// StubClock is a TimeProvider pinned to a fixed instant
type StubClock struct {
	T time.Time
}

// NewStubClock returns a clock pinned to a deterministic instant
func NewStubClock() *StubClock {
	return &StubClock{T: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
}

// Now returns the pinned instant
func (c *StubClock) Now() time.Time {
	return c.T
}

// Since returns the elapsed time relative to the pinned instant
func (c *StubClock) Since(t time.Time) time.Duration {
	return c.T.Sub(t)
}

// Advance moves the pinned instant forward
func (c *StubClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}
