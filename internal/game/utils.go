package game

import "math"

// Vec2 is a point or displacement. Normalized positions live in [0,1]^2.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	return Vec2{v.X + (to.X-v.X)*t, v.Y + (to.Y-v.Y)*t}
}

// Viewport is the display size in pixels.
type Viewport struct {
	W, H float64
}

func (vp Viewport) Min() float64 { return math.Min(vp.W, vp.H) }

// ToPixels converts a normalized position.
func (vp Viewport) ToPixels(n Vec2) Vec2 { return Vec2{n.X * vp.W, n.Y * vp.H} }

// ToNormalized converts a pixel position.
func (vp Viewport) ToNormalized(p Vec2) Vec2 {
	if vp.W == 0 || vp.H == 0 {
		return Vec2{0.5, 0.5}
	}
	return Vec2{p.X / vp.W, p.Y / vp.H}
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) W() float64 { return r.X1 - r.X0 }
func (r Rect) H() float64 { return r.Y1 - r.Y0 }

// BoxAround returns the rectangle of size w x h centred on c.
func BoxAround(c Vec2, w, h float64) Rect {
	return Rect{c.X - w/2, c.Y - h/2, c.X + w/2, c.Y + h/2}
}

// Circle is a pixel-space circle.
type Circle struct {
	Center Vec2
	Radius float64
}

// clampRange clamps v to [lo, hi]; an empty range collapses to its midpoint.
func clampRange(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
