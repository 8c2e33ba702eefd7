package hardware

import (
	"errors"
	"log/slog"
	"math/rand"

	"github.com/iburimskiy/spotlight/internal/config"
)

var ErrUnknownPump = errors.New("unknown pump")

// Dispenser sends a dispense command to a pump. Command encoding and the
// serial link live behind this interface.
type Dispenser interface {
	Dispense(pump string) error
}

// DoorController opens or closes the arena door.
type DoorController interface {
	SetDoor(open bool) error
}

// LogDispenser records dispense commands without talking to hardware.
type LogDispenser struct {
	Pumps map[string]bool
}

func NewLogDispenser(pumps []config.PumpConfig) *LogDispenser {
	d := &LogDispenser{Pumps: map[string]bool{}}
	for _, p := range pumps {
		d.Pumps[p.ID] = true
	}
	return d
}

func (d *LogDispenser) Dispense(pump string) error {
	if !d.Pumps[pump] {
		return ErrUnknownPump
	}
	slog.Info("dispensing", "pump", pump)
	return nil
}

type LogDoor struct{}

func (LogDoor) SetDoor(open bool) error {
	slog.Info("door command", "open", open)
	return nil
}

// DoorGate closes the door once Limit objects are in the arena and opens it
// again when fewer remain. Commands go out only when the count changes.
type DoorGate struct {
	Limit          int
	ManualOverride bool

	prev int
}

func NewDoorGate(c config.DoorConfig) *DoorGate {
	return &DoorGate{Limit: c.ObjectLimit, ManualOverride: c.ManualOverride, prev: -1}
}

// Observe returns the door command for a new object count, if any.
func (g *DoorGate) Observe(count int) (open bool, send bool) {
	if count == g.prev {
		return false, false
	}
	g.prev = count
	if g.ManualOverride {
		return false, false
	}
	return count < g.Limit, true
}

// Repeater fires a pump repeatedly with a fixed or randomized interval.
type Repeater struct {
	Pump     string
	Interval float64
	Random   bool
	MinDelay float64
	MaxDelay float64

	running  bool
	lastSent float64
	rng      *rand.Rand
}

func NewRepeater(c config.PumpConfig, rng *rand.Rand) *Repeater {
	return &Repeater{
		Pump:     c.ID,
		Interval: c.IntervalSec,
		Random:   c.Randomize,
		MinDelay: c.MinDelaySec,
		MaxDelay: c.MaxDelaySec,
		running:  c.Repeat,
		rng:      rng,
	}
}

func (r *Repeater) Running() bool { return r.running }

func (r *Repeater) Start() { r.running = true }

func (r *Repeater) Stop() {
	r.running = false
	r.lastSent = 0
}

// Due reports whether the pump should fire at now and, if so, schedules the
// next shot.
func (r *Repeater) Due(now float64) bool {
	if !r.running || now-r.lastSent < r.Interval {
		return false
	}
	r.lastSent = now
	if r.Random {
		r.Interval = r.MinDelay
		if r.MaxDelay > r.MinDelay {
			r.Interval += r.rng.Float64() * (r.MaxDelay - r.MinDelay)
		}
	}
	return true
}
