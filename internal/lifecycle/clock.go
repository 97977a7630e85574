package lifecycle

import "time"

// Clock abstracts timer scheduling so the poll loop is testable without
// real delays.
type Clock interface {
	// After returns a channel that delivers the time after d elapses.
	After(d time.Duration) <-chan time.Time

	// Now returns the current time.
	Now() time.Time
}

// realClock implements Clock with the time package.
type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (realClock) Now() time.Time                         { return time.Now() }
