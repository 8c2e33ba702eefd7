package game

// Ring is one annulus of the converging-rings stimulus, radius in pixels.
type Ring struct {
	Radius float64
}

// RingGeometry is the ring layout resolved to pixels for the current display.
type RingGeometry struct {
	Count       int
	StartRadius float64
	Gap         float64
	Thickness   float64
	ShrinkSpeed float64 // px/s
}

// Rings animates a queue of shrinking concentric rings. The front of the
// queue is the innermost ring.
type Rings struct {
	rings []Ring
}

// Reset rebuilds the queue with count rings spaced gap+thickness apart,
// innermost at startRadius.
func (r *Rings) Reset(count int, startRadius, gap, thickness float64) {
	r.rings = r.rings[:0]
	if count <= 0 {
		return
	}
	step := gap + thickness
	rad := startRadius + float64(count-1)*step
	// filled back to front so the slice ends up smallest first
	r.rings = append(r.rings, make([]Ring, count)...)
	for k := count - 1; k >= 0; k-- {
		r.rings[k] = Ring{Radius: rad}
		rad -= step
	}
}

// Update advances the animation by dt seconds. A change in the configured
// count rebuilds the queue rather than adjusting it. Large dt values are not
// clamped, so several rings may collapse at once.
func (r *Rings) Update(dt float64, g RingGeometry) {
	if len(r.rings) == 0 || len(r.rings) != g.Count {
		r.Reset(g.Count, g.StartRadius, g.Gap, g.Thickness)
	}

	for i := range r.rings {
		r.rings[i].Radius -= g.ShrinkSpeed * dt
	}

	collapsed := 0
	for collapsed < len(r.rings) && r.rings[collapsed].Radius < g.Thickness/2 {
		collapsed++
	}
	if collapsed > 0 {
		r.rings = append(r.rings[:0], r.rings[collapsed:]...)
	}

	for len(r.rings) < g.Count {
		outermost := g.StartRadius
		if n := len(r.rings); n > 0 {
			outermost = r.rings[n-1].Radius
		}
		r.rings = append(r.rings, Ring{Radius: outermost + g.Gap + g.Thickness})
	}
}

// Len returns the number of active rings.
func (r *Rings) Len() int { return len(r.rings) }

// Radii returns the ring radii front to back.
func (r *Rings) Radii() []float64 {
	out := make([]float64, len(r.rings))
	for i, ring := range r.rings {
		out[i] = ring.Radius
	}
	return out
}

// Circles returns the active rings as circles around center, the geometry
// consumed by the salesman intersection test.
func (r *Rings) Circles(center Vec2) []Circle {
	out := make([]Circle, len(r.rings))
	for i, ring := range r.rings {
		out[i] = Circle{Center: center, Radius: ring.Radius}
	}
	return out
}
