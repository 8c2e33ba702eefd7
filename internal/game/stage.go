package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/iburimskiy/spotlight/internal/config"
	"github.com/iburimskiy/spotlight/internal/hardware"
	"github.com/iburimskiy/spotlight/internal/tracking"
)

// Cues plays feedback sounds for rig events.
type Cues interface {
	Dispense()
	Complete()
}

type Source string

const (
	SourceManual   Source = "manual"
	SourceRepeat   Source = "repeat"
	SourceSalesman Source = "salesman"
)

// Stage owns every stimulus engine and runs them in a fixed order once per
// frame. It is not safe for concurrent use; only the tracking feed is shared
// with other goroutines.
type Stage struct {
	Config config.Config

	Clock     Clock
	Feed      *tracking.Feed
	Dispenser hardware.Dispenser
	Door      hardware.DoorController
	Cues      Cues

	Rings     Rings
	Spotlight *Spotlight
	Salesman  *Salesman
	Repeaters []*hardware.Repeater
	DoorGate  *hardware.DoorGate

	// LastErr is the most recent peripheral failure, shown on screen.
	LastErr error

	pause    *PausableClock
	doorOpen bool
	objects  []tracking.Object
	circles  []Circle
	lastTime float64
	started  bool
	scene    Scene
}

type StageOption func(*Stage)

func WithClock(c Clock) StageOption { return func(s *Stage) { s.Clock = c } }

func WithDispenser(d hardware.Dispenser) StageOption { return func(s *Stage) { s.Dispenser = d } }

func WithDoor(d hardware.DoorController) StageOption { return func(s *Stage) { s.Door = d } }

func WithCues(c Cues) StageOption { return func(s *Stage) { s.Cues = c } }

// WithRand seeds the rotation scheduler and pump repeaters.
func WithRand(rng *rand.Rand) StageOption {
	return func(s *Stage) {
		s.Spotlight.rng = rng
		for i, p := range s.Config.Pumps {
			s.Repeaters[i] = hardware.NewRepeater(p, rng)
		}
	}
}

func NewStage(cfg config.Config, feed *tracking.Feed, opts ...StageOption) *Stage {
	rng := rand.New(rand.NewSource(rand.Int63()))
	s := &Stage{
		Config:    cfg,
		Clock:     NewRealClock(),
		Feed:      feed,
		Dispenser: hardware.NewLogDispenser(cfg.Pumps),
		Door:      hardware.LogDoor{},
		Spotlight: NewSpotlight(rng),
		Salesman:  NewSalesman(),
		DoorGate:  hardware.NewDoorGate(cfg.Door),
		Repeaters: make([]*hardware.Repeater, len(cfg.Pumps)),
	}
	for i, p := range cfg.Pumps {
		s.Repeaters[i] = hardware.NewRepeater(p, rng)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pause = NewPausableClock(s.Clock)
	s.Clock = s.pause
	return s
}

// Step samples the clock once and advances every engine for viewport vp.
func (s *Stage) Step(vp Viewport) *Scene {
	now := s.Clock.Seconds()
	dt := 0.0
	if s.started {
		dt = now - s.lastTime
	}
	s.lastTime = now
	s.started = true

	s.readObjects(vp)
	s.gateDoor()

	var rings []Circle
	if s.Config.Rings.Enabled {
		s.Rings.Update(dt, ringGeometry(s.Config.Rings, vp))
		rings = s.Rings.Circles(s.ringCenter(vp))
	}

	s.Spotlight.Update(now, vp, spotlightParams(s.Config), s.circles)

	// rings must be updated before the intersection test
	if s.Salesman.Update(now, vp, salesmanParams(s.Config.Salesman), rings) {
		s.reward(now)
	}

	for _, r := range s.Repeaters {
		if r.Due(now) {
			s.Dispense(now, r.Pump, SourceRepeat)
		}
	}

	s.buildScene(now, vp)
	return &s.scene
}

func (s *Stage) ringCenter(vp Viewport) Vec2 {
	return vp.ToPixels(Vec2{s.Config.Rings.Center[0], s.Config.Rings.Center[1]})
}

// readObjects copies the feed and maps every object into display pixels.
func (s *Stage) readObjects(vp Viewport) {
	if s.Feed == nil {
		s.objects, s.circles = s.objects[:0], s.circles[:0]
		return
	}
	s.objects, _ = s.Feed.Snapshot(s.objects)

	tr := transform(s.Config.Tracking)
	radius := s.Config.Objects.Radius * vp.H
	s.circles = s.circles[:0]
	for _, o := range s.objects {
		x, y := tr.Center(o, vp.W, vp.H)
		s.circles = append(s.circles, Circle{Center: Vec2{x, y}, Radius: radius})
	}
}

func (s *Stage) gateDoor() {
	if !s.Config.Door.Enabled || s.Door == nil {
		return
	}
	open, send := s.DoorGate.Observe(len(s.objects))
	if !send {
		return
	}
	if err := s.Door.SetDoor(open); err != nil {
		s.fail(fmt.Errorf("door command: %w", err))
		return
	}
	s.doorOpen = open
}

// ToggleDoor opens or closes the door by hand. It only acts in manual
// override mode, where the object count no longer drives the door.
func (s *Stage) ToggleDoor() bool {
	if !s.Config.Door.Enabled || !s.DoorGate.ManualOverride || s.Door == nil {
		return false
	}
	open := !s.doorOpen
	if err := s.Door.SetDoor(open); err != nil {
		s.fail(fmt.Errorf("door command: %w", err))
		return false
	}
	s.doorOpen = open
	slog.Info("door set by hand", "open", open)
	return true
}

func (s *Stage) reward(now float64) {
	if s.Cues != nil {
		s.Cues.Complete()
	}
	if len(s.Config.Salesman.RewardPumps) == 0 {
		s.Spotlight.Dispense(now)
		return
	}
	for _, pump := range s.Config.Salesman.RewardPumps {
		s.Dispense(now, pump, SourceSalesman)
	}
}

// Dispense fires a pump and restarts the spotlight growth pulse.
func (s *Stage) Dispense(now float64, pump string, src Source) {
	slog.Info("dispense event", "pump", pump, "source", src, "t", now)
	if s.Dispenser != nil {
		if err := s.Dispenser.Dispense(pump); err != nil {
			s.fail(fmt.Errorf("dispense %s: %w", pump, err))
		}
	}
	s.Spotlight.Dispense(now)
	if s.Cues != nil {
		s.Cues.Dispense()
	}
}

// DispenseNow is Dispense at the current clock time.
func (s *Stage) DispenseNow(pump string, src Source) {
	s.Dispense(s.Clock.Seconds(), pump, src)
}

func (s *Stage) fail(err error) {
	slog.Error("peripheral failure", "err", err)
	s.LastErr = err
}

// RestartSalesman places a new batch of targets.
func (s *Stage) RestartSalesman(vp Viewport) {
	s.Salesman.Restart(s.Clock.Seconds(), vp, salesmanParams(s.Config.Salesman))
}

// ResetRings rebuilds the ring queue from the current config.
func (s *Stage) ResetRings(vp Viewport) {
	g := ringGeometry(s.Config.Rings, vp)
	s.Rings.Reset(g.Count, g.StartRadius, g.Gap, g.Thickness)
}

// SetRotation starts or stops the rotation scheduler. Stopping keeps the
// current angle.
func (s *Stage) SetRotation(on bool) {
	s.Config.Rotation.Running = on
	if !on {
		s.Spotlight.Rotation.Stop()
	}
}

// Pause freezes stage time. Nothing advances until Resume, and the paused
// interval is never seen by the engines.
func (s *Stage) Pause() { s.pause.Pause() }

func (s *Stage) Resume() { s.pause.Resume() }

func (s *Stage) Paused() bool { return s.pause.Paused() }

// SetRepeating starts or stops the repeat schedule of every pump.
func (s *Stage) SetRepeating(on bool) {
	for _, r := range s.Repeaters {
		if on {
			r.Start()
		} else {
			r.Stop()
		}
	}
	slog.Info("pump repeat", "running", on)
}

// Repeating reports whether any pump repeats.
func (s *Stage) Repeating() bool {
	for _, r := range s.Repeaters {
		if r.Running() {
			return true
		}
	}
	return false
}

// RecenterSpotlight moves the central circle back to the display centre.
func (s *Stage) RecenterSpotlight() {
	s.Spotlight.ResetPosition()
}

// SetRingCount changes the configured ring count; the next step rebuilds
// the queue.
func (s *Stage) SetRingCount(n int) {
	if n < 1 {
		n = 1
	}
	s.Config.Rings.Count = n
}

func (s *Stage) buildScene(now float64, vp Viewport) {
	cfg := s.Config
	sc := &s.scene
	*sc = Scene{
		Rings:   sc.Rings[:0],
		Objects: sc.Objects[:0],
		Targets: sc.Targets[:0],
		Markers: sc.Markers[:0],
	}

	if cfg.Grating.Enabled {
		box := gratingBox(cfg.Grating, vp)
		sc.Grating = &GratingLayer{
			Box:        box,
			Bars:       grating(cfg.Grating).Bars(box, now),
			BarColor:   cfg.Grating.BarColor.RGBA(),
			Background: cfg.Grating.Background.RGBA(),
		}
	}

	if cfg.Rings.Enabled {
		half := ringGeometry(cfg.Rings, vp).Thickness / 2
		center := s.ringCenter(vp)
		for _, r := range s.Rings.rings {
			sc.Rings = append(sc.Rings, Annulus{
				Center: center,
				Inner:  r.Radius - half,
				Outer:  r.Radius + half,
				Color:  cfg.Rings.Color.RGBA(),
			})
		}
	}

	for _, c := range s.circles {
		sc.Objects = append(sc.Objects, SegmentedRing{
			Center:    c.Center,
			Inner:     c.Radius * cfg.Objects.InnerRatio,
			Outer:     c.Radius,
			Theta:     s.Spotlight.Rotation.Theta,
			Segments:  cfg.Objects.Segments,
			Color:     cfg.Objects.Color.RGBA(),
			Alternate: cfg.Objects.AlternateColor.RGBA(),
		})
	}

	if s.Salesman.Running() {
		for _, t := range s.Salesman.Targets {
			if t.Collected {
				continue
			}
			sc.Targets = append(sc.Targets, Disc{
				Center:    vp.ToPixels(t.Center),
				Radius:    t.Radius,
				Segments:  cfg.Salesman.Segments,
				Color:     cfg.Salesman.Color.RGBA(),
				Alternate: cfg.Salesman.Color.RGBA(),
			})
		}
	}

	sc.Spotlight = s.spotlightDisc(now, vp)

	if cfg.Display.Calibrating {
		white := config.Color{1, 1, 1, 1}.RGBA()
		for _, m := range []Vec2{
			{vp.W/2 - vp.H/2, 0}, {vp.W/2 + vp.H/2, 0},
			{vp.W/2 - vp.H/2, vp.H}, {vp.W/2 + vp.H/2, vp.H},
		} {
			sc.Markers = append(sc.Markers, Disc{
				Center: m, Radius: config.CalibrationMarkerRadius, Segments: 32, Color: white, Alternate: white,
			})
		}
	}

	sc.Time = now
	sc.Remaining = s.Salesman.Remaining()
	sc.SalesmanLive = s.Salesman.Running()
	if sc.SalesmanLive {
		sc.RunElapsed = now - s.Salesman.Start
	}
	sc.Rotation = s.Spotlight.Rotation.Phase
	if s.Feed != nil {
		sc.DroppedFrames = s.Feed.Dropped()
	}
}

// spotlightDisc renders the steady two-colour circle, or in dynamic mode the
// growth pulse alone while it lasts.
func (s *Stage) spotlightDisc(now float64, vp Viewport) *Disc {
	cfg := s.Config.Spotlight
	p := spotlightParams(s.Config)
	center := vp.ToPixels(s.Spotlight.Center)
	if !cfg.Dynamic {
		return &Disc{
			Center:    center,
			Radius:    s.Spotlight.PixelRadius(p, vp),
			Segments:  cfg.Segments,
			Color:     cfg.Color.RGBA(),
			Alternate: cfg.AlternateColor.RGBA(),
		}
	}
	if !s.Spotlight.Growing(p, now) {
		return nil
	}
	return &Disc{
		Center:    center,
		Radius:    s.Spotlight.GrowthRadius * vp.Min(),
		Segments:  cfg.Segments,
		Color:     cfg.Color.RGBA(),
		Alternate: cfg.Color.RGBA(),
	}
}
