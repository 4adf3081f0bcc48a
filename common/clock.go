package common

import "time"

// MaxFrameDelta caps a single measured step so a stalled window (drag, debugger)
// doesn't tunnel the player through the floor.
const MaxFrameDelta = 0.25

// Clock measures seconds elapsed between calls to Delta.
type Clock struct {
	now  func() time.Time
	last time.Time
}

func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

func NewClockWithSource(now func() time.Time) *Clock {
	c := &Clock{now: now}
	c.Start()
	return c
}

// Start resets the reference point so the next Delta measures from now.
func (c *Clock) Start() {
	c.last = c.now()
}

// Delta returns seconds since the previous call (or Start).
func (c *Clock) Delta() float64 {
	t := c.now()
	d := t.Sub(c.last).Seconds()
	c.last = t
	return Clamp(d, 0, MaxFrameDelta)
}
