package tracking

// Transform maps camera-space boxes onto the stimulus display. The camera
// sees a square arena of Scale units centred in the display, so the mapped
// area is height x height pixels with the sides letterboxed.
type Transform struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
	// Mirror flips x so the projection lines up with the arena.
	Mirror bool
}

// Center returns the object centre in display pixels for a width x height display.
func (t Transform) Center(o Object, width, height float64) (float64, float64) {
	if t.Scale == 0 {
		return width / 2, height / 2
	}
	xc := o.X + o.W/2
	yc := o.Y - o.H/2

	cx := (xc-t.OffsetX)/t.Scale*height + (width-height)/2
	if t.Mirror {
		cx = width - cx
	}
	cy := (yc - t.OffsetY) / t.Scale * height
	return cx, cy
}
