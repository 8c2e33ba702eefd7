package game

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/iburimskiy/spotlight/internal/config"
)

// Target is one circle of the collection task.
type Target struct {
	Center         Vec2    // normalized
	Radius         float64 // px
	Collected      bool
	Intersecting   bool
	IntersectStart float64
}

type SalesmanParams struct {
	Count              int
	Radius             float64 // px
	IntersectionMillis int
	Seed               *int64
	ReuseSeed          bool
}

// Salesman is the placement and collection experiment: randomly placed
// targets are collected once a ring has crossed them continuously for the
// configured time.
type Salesman struct {
	Targets []Target
	RunID   uuid.UUID
	Seed    int64
	Start   float64

	running   bool
	completed bool
	hasSeed   bool

	// seedSource supplies a seed when none is given; swapped in tests.
	seedSource func() int64
}

func NewSalesman() *Salesman {
	return &Salesman{seedSource: func() int64 { return time.Now().UnixNano() }}
}

func (s *Salesman) Running() bool { return s.running }

// Completed reports whether every target of the current run was collected.
func (s *Salesman) Completed() bool { return s.completed }

// Remaining counts uncollected targets.
func (s *Salesman) Remaining() int {
	n := 0
	for _, t := range s.Targets {
		if !t.Collected {
			n++
		}
	}
	return n
}

func (s *Salesman) pickSeed(p SalesmanParams) int64 {
	switch {
	case p.Seed != nil:
		return *p.Seed
	case p.ReuseSeed && s.hasSeed:
		return s.Seed
	case s.seedSource != nil:
		return s.seedSource()
	}
	return time.Now().UnixNano()
}

// Restart discards the current run and places a fresh batch of targets.
func (s *Salesman) Restart(now float64, vp Viewport, p SalesmanParams) {
	s.Seed = s.pickSeed(p)
	s.hasSeed = true
	rng := rand.New(rand.NewSource(s.Seed))

	s.Targets = s.Targets[:0]
	for i := 0; i < p.Count; i++ {
		s.Targets = append(s.Targets, Target{
			Center: placeTarget(rng, vp, p.Radius, s.Targets),
			Radius: p.Radius,
		})
	}

	s.RunID = uuid.New()
	s.Start = now
	s.running = true
	s.completed = false
	slog.Info("salesman run started", "run", s.RunID, "seed", s.Seed, "targets", len(s.Targets))
}

// placeTarget draws candidates until one keeps its distance from every placed
// target. After PlacementAttempts the last candidate is used regardless.
func placeTarget(rng *rand.Rand, vp Viewport, radius float64, placed []Target) Vec2 {
	lo, hi := config.PlacementMargin, 1-config.PlacementMargin
	var c Vec2
	for attempt := 0; attempt < config.PlacementAttempts; attempt++ {
		c = Vec2{lo + rng.Float64()*(hi-lo), lo + rng.Float64()*(hi-lo)}
		if separated(c, radius, placed, vp) {
			return c
		}
	}
	return c
}

func separated(c Vec2, radius float64, placed []Target, vp Viewport) bool {
	pc := vp.ToPixels(c)
	for _, t := range placed {
		minDist := config.PlacementSeparation * (radius + t.Radius)
		if pc.Sub(vp.ToPixels(t.Center)).Len() <= minDist {
			return false
		}
	}
	return true
}

// Update tests every uncollected target against the current rings. It
// returns true on the frame the last target is collected, once per run.
func (s *Salesman) Update(now float64, vp Viewport, p SalesmanParams, rings []Circle) bool {
	if !s.running {
		return false
	}
	threshold := float64(p.IntersectionMillis) / 1000

	for i := range s.Targets {
		t := &s.Targets[i]
		if t.Collected {
			continue
		}
		if !touchesAnyRing(vp.ToPixels(t.Center), t.Radius, rings) {
			t.Intersecting = false
			continue
		}
		if !t.Intersecting {
			t.Intersecting = true
			t.IntersectStart = now
		}
		if now-t.IntersectStart >= threshold {
			t.Collected = true
			t.Intersecting = false
			slog.Debug("target collected", "run", s.RunID, "index", i, "remaining", s.Remaining())
		}
	}

	if s.Remaining() > 0 {
		return false
	}
	s.running = false
	s.completed = true
	slog.Info("salesman run completed", "run", s.RunID, "elapsed", now-s.Start)
	return true
}

// touchesAnyRing reports whether a circle overlaps the outline of any ring.
func touchesAnyRing(center Vec2, radius float64, rings []Circle) bool {
	for _, r := range rings {
		dist := center.Sub(r.Center).Len()
		if math.Abs(dist-r.Radius) < radius {
			return true
		}
	}
	return false
}
