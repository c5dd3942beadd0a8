package sched

import "time"

// Clock is a manually advanced clock. Paired with WithClock and Drive it
// replays a registry's timers without sleeping.
type Clock struct {
	t time.Time
}

// NewClock returns a clock frozen at an arbitrary fixed instant.
func NewClock() *Clock {
	return &Clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	return c.t
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// Drive fires r's timers in deadline order until the clock reaches until or
// nothing is pending. Timers scheduled by deliver are picked up in the same
// run. deliver receives the clock time at which each timer fired.
func Drive(r *Registry, c *Clock, until time.Time, deliver func(Msg, time.Time)) {
	for {
		next, ok := r.Next()
		if !ok || next.After(until) {
			break
		}
		if next.After(c.t) {
			c.t = next
		}
		for _, msg := range r.Due(c.t) {
			deliver(msg, c.t)
			// A real tick fires once whether or not its owner took it.
			r.Cancel(msg.Token)
		}
	}
	if until.After(c.t) {
		c.t = until
	}
}
