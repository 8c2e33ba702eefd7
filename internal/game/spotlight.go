package game

import (
	"math"
	"math/rand"
)

// SpotlightParams are the tunables of the central circle.
type SpotlightParams struct {
	Radius           float64 // fraction of min(W, H)
	DriftSpeed       float64 // lerp factor per frame
	DriftThreshold   float64 // px; below this push magnitude the circle drifts
	CollisionEnabled bool

	Dynamic         bool
	GrowthDuration  float64 // s to reach GrowthMaxRadius
	GrowthMaxRadius float64 // fraction of min(W, H)
	GrowthLinger    float64 // s held at full size

	RotationEnabled bool
	Rotation        RotationSchedule
}

// Spotlight is the interactive central circle. Tracked objects push it away,
// it drifts back to the centre when nothing touches it, and a dispense event
// starts a growth pulse.
type Spotlight struct {
	Center       Vec2 // normalized
	GrowthRadius float64
	GrowthStart  float64
	Rotation     Rotation

	// Push is the displacement applied in the last update, in pixels.
	Push Vec2

	rng *rand.Rand
}

func NewSpotlight(rng *rand.Rand) *Spotlight {
	return &Spotlight{
		Center:      Vec2{0.5, 0.5},
		GrowthStart: math.Inf(-1),
		rng:         rng,
	}
}

// PixelRadius returns the steady-state radius in pixels.
func (s *Spotlight) PixelRadius(p SpotlightParams, vp Viewport) float64 {
	return p.Radius * vp.Min()
}

// ResetPosition puts the circle back in the middle of the display.
func (s *Spotlight) ResetPosition() {
	s.Center = Vec2{0.5, 0.5}
}

// Dispense restarts the growth pulse.
func (s *Spotlight) Dispense(now float64) {
	s.GrowthStart = now
	s.GrowthRadius = 0
}

// Growing reports whether a growth pulse is visible.
func (s *Spotlight) Growing(p SpotlightParams, now float64) bool {
	return now-s.GrowthStart <= p.GrowthLinger+p.GrowthDuration
}

// Update runs one frame: collision push, clamp, drift-back, rotation and growth.
func (s *Spotlight) Update(now float64, vp Viewport, p SpotlightParams, objects []Circle) {
	radius := s.PixelRadius(p, vp)
	pos := vp.ToPixels(s.Center)

	var push Vec2
	if p.CollisionEnabled {
		push = collisionPush(pos, radius, objects)
	}
	s.Push = push

	pos = pos.Add(push)
	pos = clampInside(pos, radius, vp)

	if push.Len() < p.DriftThreshold {
		s.Center = s.Center.Lerp(Vec2{0.5, 0.5}, p.DriftSpeed)
		pos = clampInside(vp.ToPixels(s.Center), radius, vp)
	}
	s.Center = vp.ToNormalized(pos)

	if p.RotationEnabled {
		s.Rotation.Advance(now, p.Rotation, s.rng)
	}

	s.updateGrowth(now, p)
}

func (s *Spotlight) updateGrowth(now float64, p SpotlightParams) {
	elapsed := now - s.GrowthStart
	if !s.Growing(p, now) {
		s.GrowthRadius = 0
		return
	}
	if p.GrowthDuration <= 0 {
		s.GrowthRadius = p.GrowthMaxRadius
		return
	}
	s.GrowthRadius = math.Min(p.GrowthMaxRadius, elapsed/p.GrowthDuration*p.GrowthMaxRadius)
}

// collisionPush sums half the overlap of every object along the line from
// the object to the circle centre. Coincident centres have no direction and
// are skipped.
func collisionPush(center Vec2, radius float64, objects []Circle) Vec2 {
	var push Vec2
	for _, o := range objects {
		d := center.Sub(o.Center)
		minDist := radius + o.Radius
		distSq := d.X*d.X + d.Y*d.Y
		if distSq == 0 || distSq >= minDist*minDist {
			continue
		}
		dist := math.Sqrt(distSq)
		strength := (minDist - dist) * 0.5
		push = push.Add(d.Scale(strength / dist))
	}
	return push
}

// clampInside keeps a circle of the given radius fully on screen.
func clampInside(pos Vec2, radius float64, vp Viewport) Vec2 {
	return Vec2{
		X: clampRange(pos.X, radius, vp.W-radius),
		Y: clampRange(pos.Y, radius, vp.H-radius),
	}
}
