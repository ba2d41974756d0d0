package session

import "sync/atomic"

// Clock is a monotonic logical clock stamping outbound events.
//
// Every call to Next returns a strictly greater value than the previous
// one, so the seq numbers of a session's output are gap-free from 1.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
