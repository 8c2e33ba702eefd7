package game

import "math"

// Grating describes a drifting square-wave bar pattern.
type Grating struct {
	Vertical  bool
	Speed     float64 // px/s, sign sets the drift direction
	BarLength float64 // px, bar width and gap width
}

// Period is the distance between consecutive bar starts.
func (g Grating) Period() float64 { return 2 * g.BarLength }

// Offset returns the pattern shift at time t, in [0, period).
func (g Grating) Offset(t float64) float64 {
	p := g.Period()
	if p <= 0 {
		return 0
	}
	off := math.Mod(t*g.Speed, p)
	if off < 0 {
		off += p
	}
	return off
}

// Bars returns the bar rectangles covering box at time t, clipped to it.
func (g Grating) Bars(box Rect, t float64) []Rect {
	p := g.Period()
	if p <= 0 || box.W() <= 0 || box.H() <= 0 {
		return nil
	}
	offset := g.Offset(t)

	lo, hi := box.X0, box.X1
	if !g.Vertical {
		lo, hi = box.Y0, box.Y1
	}

	var bars []Rect
	for s := lo - p; s < hi+p; s += p {
		a := s + offset
		b := a + g.BarLength
		if b < lo || a > hi {
			continue
		}
		a = math.Max(a, lo)
		b = math.Min(b, hi)
		if b <= a {
			continue
		}
		if g.Vertical {
			bars = append(bars, Rect{a, box.Y0, b, box.Y1})
		} else {
			bars = append(bars, Rect{box.X0, a, box.X1, b})
		}
	}
	return bars
}
