package game

import (
	"sync"
	"time"
)

// Clock reports seconds since the display started.
type Clock interface {
	Seconds() float64
}

type RealClock struct {
	start time.Time
}

func NewRealClock() RealClock { return RealClock{start: time.Now()} }

func (c RealClock) Seconds() float64 { return time.Since(c.start).Seconds() }

// FakeClock is deterministic and test-friendly.
type FakeClock struct {
	mu sync.Mutex
	t  float64
}

func NewFakeClock(start float64) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Seconds() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Set(t float64) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t += d.Seconds()
	c.mu.Unlock()
}

// PausableClock wraps a Clock and holds time still while paused. Time spent
// paused never shows up in Seconds.
type PausableClock struct {
	mu       sync.Mutex
	base     Clock
	paused   bool
	pausedAt float64
	offset   float64
}

func NewPausableClock(base Clock) *PausableClock {
	return &PausableClock{base: base}
}

func (c *PausableClock) Seconds() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return c.pausedAt - c.offset
	}
	return c.base.Seconds() - c.offset
}

func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.pausedAt = c.base.Seconds()
	c.paused = true
}

func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.offset += c.base.Seconds() - c.pausedAt
	c.paused = false
}

func (c *PausableClock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}
