package game

import "image/color"

// Annulus is a plain ring outline of the converging-rings stimulus.
type Annulus struct {
	Center       Vec2
	Inner, Outer float64
	Color        color.NRGBA
}

// SegmentedRing is a ring whose segments alternate between two colours,
// rotated by Theta radians.
type SegmentedRing struct {
	Center       Vec2
	Inner, Outer float64
	Theta        float64
	Segments     int
	Color        color.NRGBA
	Alternate    color.NRGBA
}

// Disc is a filled circle. When Alternate differs from Color the fan is split
// into two coloured halves.
type Disc struct {
	Center    Vec2
	Radius    float64
	Segments  int
	Color     color.NRGBA
	Alternate color.NRGBA
}

type GratingLayer struct {
	Box        Rect
	Bars       []Rect
	BarColor   color.NRGBA
	Background color.NRGBA
}

// Scene is everything the display draws for one frame, in draw order.
type Scene struct {
	Grating   *GratingLayer
	Rings     []Annulus
	Objects   []SegmentedRing
	Targets   []Disc
	Spotlight *Disc
	Markers   []Disc

	// HUD
	Time          float64
	Remaining     int
	SalesmanLive  bool
	RunElapsed    float64
	Rotation      Phase
	DroppedFrames uint64
}
