package display

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/spotlight/internal/game"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// drawScene paints one frame in scene order.
func drawScene(screen *ebiten.Image, sc *game.Scene) {
	if g := sc.Grating; g != nil {
		fillRect(screen, g.Box, g.Background)
		for _, b := range g.Bars {
			fillRect(screen, b, g.BarColor)
		}
	}

	for _, r := range sc.Rings {
		width := r.Outer - r.Inner
		mid := (r.Outer + r.Inner) / 2
		if width <= 0 || mid <= 0 {
			continue
		}
		vector.StrokeCircle(screen, float32(r.Center.X), float32(r.Center.Y), float32(mid), float32(width), r.Color, true)
	}

	for _, o := range sc.Objects {
		drawSegmentedRing(screen, o)
	}
	for _, t := range sc.Targets {
		drawDisc(screen, t)
	}
	if sc.Spotlight != nil {
		drawDisc(screen, *sc.Spotlight)
	}
	for _, m := range sc.Markers {
		drawDisc(screen, m)
	}
}

func fillRect(screen *ebiten.Image, r game.Rect, c color.NRGBA) {
	if r.W() <= 0 || r.H() <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(r.X0), float32(r.Y0), float32(r.W()), float32(r.H()), c, false)
}

func drawDisc(screen *ebiten.Image, d game.Disc) {
	if d.Radius <= 0 {
		return
	}
	if d.Color == d.Alternate || d.Segments < 2 {
		vector.DrawFilledCircle(screen, float32(d.Center.X), float32(d.Center.Y), float32(d.Radius), d.Color, true)
		return
	}
	for i, a := range segmentAngles(d.Segments, 0) {
		fillPath(screen, sectorPath(d.Center, 0, d.Radius, a[0], a[1]), alternating(i, d.Color, d.Alternate))
	}
}

func drawSegmentedRing(screen *ebiten.Image, r game.SegmentedRing) {
	if r.Outer <= 0 || r.Inner >= r.Outer {
		return
	}
	segs := r.Segments
	if segs < 1 {
		segs = 1
	}
	for i, a := range segmentAngles(segs, r.Theta) {
		fillPath(screen, sectorPath(r.Center, r.Inner, r.Outer, a[0], a[1]), alternating(i, r.Color, r.Alternate))
	}
}

func alternating(i int, a, b color.NRGBA) color.NRGBA {
	if i%2 == 0 {
		return a
	}
	return b
}

// segmentAngles splits the full turn into n equal arcs starting at theta.
func segmentAngles(n int, theta float64) [][2]float64 {
	if n < 1 {
		return nil
	}
	step := 2 * math.Pi / float64(n)
	out := make([][2]float64, n)
	for i := range out {
		start := theta + float64(i)*step
		out[i] = [2]float64{start, start + step}
	}
	return out
}

// sectorPath outlines the annular sector between inner and outer radius. An
// inner radius of zero gives a pie slice.
func sectorPath(c game.Vec2, inner, outer, a0, a1 float64) *vector.Path {
	var p vector.Path
	cx, cy := float32(c.X), float32(c.Y)
	p.MoveTo(cx+float32(outer*math.Cos(a0)), cy+float32(outer*math.Sin(a0)))
	p.Arc(cx, cy, float32(outer), float32(a0), float32(a1), vector.Clockwise)
	if inner > 0 {
		p.LineTo(cx+float32(inner*math.Cos(a1)), cy+float32(inner*math.Sin(a1)))
		p.Arc(cx, cy, float32(inner), float32(a1), float32(a0), vector.CounterClockwise)
	} else {
		p.LineTo(cx, cy)
	}
	p.Close()
	return &p
}

func fillPath(screen *ebiten.Image, p *vector.Path, c color.NRGBA) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	if len(is) == 0 {
		return
	}
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, whiteSubImage, op)
}

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
}
