package game

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingsReset_IncreasingFrontToBack(t *testing.T) {
	for _, n := range []int{1, 2, 5, 20} {
		var r Rings
		r.Reset(n, 30, 12, 6)
		radii := r.Radii()
		require.Len(t, radii, n)
		assert.True(t, sort.Float64sAreSorted(radii), "radii %v", radii)
		assert.InDelta(t, 30.0, radii[0], 1e-9)
		assert.InDelta(t, 30+float64(n-1)*18, radii[n-1], 1e-9)
	}
}

func TestRingsReset_ZeroCount(t *testing.T) {
	var r Rings
	r.Reset(0, 30, 12, 6)
	assert.Equal(t, 0, r.Len())
}

func TestRingsUpdate_CollapseAndReplenish(t *testing.T) {
	g := RingGeometry{Count: 3, StartRadius: 20, Gap: 5, Thickness: 10, ShrinkSpeed: 80}
	var r Rings
	r.Reset(g.Count, g.StartRadius, g.Gap, g.Thickness)
	require.Equal(t, []float64{20, 35, 50}, r.Radii())

	// 20 - 80*0.25 = 0 < 5: the innermost ring collapses, one is appended
	r.Update(0.25, g)
	assert.Equal(t, 3, r.Len())
	radii := r.Radii()
	assert.InDelta(t, 15.0, radii[0], 1e-9)
	assert.InDelta(t, 30.0, radii[1], 1e-9)
	assert.InDelta(t, 45.0, radii[2], 1e-9)
}

func TestRingsUpdate_SmallStepKeepsQueue(t *testing.T) {
	g := RingGeometry{Count: 3, StartRadius: 20, Gap: 5, Thickness: 10, ShrinkSpeed: 80}
	var r Rings
	r.Reset(g.Count, g.StartRadius, g.Gap, g.Thickness)

	r.Update(0.1, g)
	radii := r.Radii()
	assert.InDelta(t, 12.0, radii[0], 1e-9)
	assert.InDelta(t, 42.0, radii[2], 1e-9)
}

func TestRingsUpdate_LargeDtCollapsesSeveral(t *testing.T) {
	g := RingGeometry{Count: 3, StartRadius: 20, Gap: 5, Thickness: 10, ShrinkSpeed: 80}
	var r Rings
	r.Reset(g.Count, g.StartRadius, g.Gap, g.Thickness)

	r.Update(1, g)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []float64{35, 50, 65}, r.Radii())
}

func TestRingsUpdate_CountChangeResets(t *testing.T) {
	g := RingGeometry{Count: 3, StartRadius: 20, Gap: 5, Thickness: 10, ShrinkSpeed: 0}
	var r Rings
	r.Update(0, g)
	require.Equal(t, 3, r.Len())

	g.Count = 5
	r.Update(0, g)
	assert.Equal(t, []float64{20, 35, 50, 65, 80}, r.Radii())

	g.Count = 2
	r.Update(0, g)
	assert.Equal(t, []float64{20, 35}, r.Radii())
}

func TestRingsUpdate_ConvergesToCount(t *testing.T) {
	for n := 1; n <= 8; n++ {
		g := RingGeometry{Count: n, StartRadius: 15, Gap: 7, Thickness: 4, ShrinkSpeed: 120}
		var r Rings
		for i, dt := range []float64{0.016, 0.5, 0.016, 2, 0.033, 0.016} {
			r.Update(dt, g)
			require.Equal(t, n, r.Len(), "count %d after step %d", n, i)
		}
	}
}

func TestRingsCircles(t *testing.T) {
	var r Rings
	r.Reset(2, 10, 0, 5)
	got := r.Circles(Vec2{100, 50})
	assert.Equal(t, []Circle{
		{Center: Vec2{100, 50}, Radius: 10},
		{Center: Vec2{100, 50}, Radius: 15},
	}, got)
}
