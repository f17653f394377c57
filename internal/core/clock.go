package core

import "time"

// Clock provides monotonic elapsed time for the simulation.
// The session consumes this narrow interface instead of reading the system
// clock directly, so tests can drive time by hand.
type Clock interface {
	// Now returns the time elapsed since the clock was created.
	Now() time.Duration
}

type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock backed by the monotonic system clock.
func NewSystemClock() Clock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) Now() time.Duration {
	return time.Since(c.start)
}
