package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseParams() SpotlightParams {
	return SpotlightParams{
		Radius:           0.1,
		DriftSpeed:       0.1,
		DriftThreshold:   0.05,
		CollisionEnabled: true,
		GrowthDuration:   2,
		GrowthMaxRadius:  0.2,
		GrowthLinger:     1,
	}
}

func newTestSpotlight() *Spotlight {
	return NewSpotlight(rand.New(rand.NewSource(1)))
}

func TestSpotlight_PushHalfOverlap(t *testing.T) {
	s := newTestSpotlight()
	vp := Viewport{1000, 1000}

	// radius 100 + 50, centres 100 apart: overlap 50, push 25 away
	s.Update(0, vp, baseParams(), []Circle{{Center: Vec2{600, 500}, Radius: 50}})
	assert.InDelta(t, 0.475, s.Center.X, 1e-9)
	assert.InDelta(t, 0.5, s.Center.Y, 1e-9)
	assert.InDelta(t, 25.0, s.Push.Len(), 1e-9)
}

func TestSpotlight_PushesAccumulate(t *testing.T) {
	s := newTestSpotlight()
	vp := Viewport{1000, 1000}
	objs := []Circle{
		{Center: Vec2{600, 500}, Radius: 50},
		{Center: Vec2{500, 600}, Radius: 50},
	}
	s.Update(0, vp, baseParams(), objs)
	assert.InDelta(t, 0.475, s.Center.X, 1e-9)
	assert.InDelta(t, 0.475, s.Center.Y, 1e-9)
}

func TestSpotlight_ZeroDistanceSkipped(t *testing.T) {
	s := newTestSpotlight()
	vp := Viewport{1000, 1000}
	s.Update(0, vp, baseParams(), []Circle{{Center: Vec2{500, 500}, Radius: 50}})
	assert.False(t, math.IsNaN(s.Center.X) || math.IsNaN(s.Center.Y))
	assert.Equal(t, Vec2{}, s.Push)
	assert.InDelta(t, 0.5, s.Center.X, 1e-9)
}

func TestSpotlight_CollisionDisabled(t *testing.T) {
	s := newTestSpotlight()
	p := baseParams()
	p.CollisionEnabled = false
	s.Update(0, Viewport{1000, 1000}, p, []Circle{{Center: Vec2{600, 500}, Radius: 50}})
	assert.InDelta(t, 0.5, s.Center.X, 1e-9)
}

func TestSpotlight_ClampedToBounds(t *testing.T) {
	s := newTestSpotlight()
	vp := Viewport{1000, 1000}
	s.Center = Vec2{0.12, 0.5}
	s.Update(0, vp, baseParams(), []Circle{{Center: Vec2{160, 500}, Radius: 200}})
	assert.InDelta(t, 0.1, s.Center.X, 1e-9)
}

func TestSpotlight_StaysInsideForAnyPush(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	vp := Viewport{1600, 900}
	p := baseParams()
	s := newTestSpotlight()
	r := s.PixelRadius(p, vp)

	for i := 0; i < 500; i++ {
		var objs []Circle
		for j := 0; j < 1+rng.Intn(4); j++ {
			objs = append(objs, Circle{
				Center: Vec2{rng.Float64() * vp.W, rng.Float64() * vp.H},
				Radius: rng.Float64() * 400,
			})
		}
		s.Update(float64(i)/60, vp, p, objs)
		pos := vp.ToPixels(s.Center)
		require.GreaterOrEqual(t, pos.X, r-1e-6)
		require.LessOrEqual(t, pos.X, vp.W-r+1e-6)
		require.GreaterOrEqual(t, pos.Y, r-1e-6)
		require.LessOrEqual(t, pos.Y, vp.H-r+1e-6)
	}
}

func TestSpotlight_DriftBackExponential(t *testing.T) {
	s := newTestSpotlight()
	vp := Viewport{1000, 1000}
	s.Center = Vec2{0.2, 0.5}

	s.Update(0, vp, baseParams(), nil)
	assert.InDelta(t, 0.23, s.Center.X, 1e-9)

	for i := 1; i < 10; i++ {
		s.Update(float64(i), vp, baseParams(), nil)
	}
	assert.InDelta(t, 0.5-0.3*math.Pow(0.9, 10), s.Center.X, 1e-9)
}

func TestSpotlight_NoDriftWhilePushed(t *testing.T) {
	s := newTestSpotlight()
	vp := Viewport{1000, 1000}
	s.Center = Vec2{0.3, 0.5}
	// object on the right pushes left by 10 px
	s.Update(0, vp, baseParams(), []Circle{{Center: Vec2{430, 500}, Radius: 50}})
	assert.InDelta(t, 0.29, s.Center.X, 1e-9)
}

func TestSpotlight_GrowthPulse(t *testing.T) {
	s := newTestSpotlight()
	vp := Viewport{1000, 1000}
	p := baseParams()

	s.Update(5, vp, p, nil)
	assert.Equal(t, 0.0, s.GrowthRadius)
	assert.False(t, s.Growing(p, 5))

	s.Dispense(10)
	assert.Equal(t, 0.0, s.GrowthRadius)

	s.Update(11, vp, p, nil)
	assert.InDelta(t, 0.1, s.GrowthRadius, 1e-9)

	s.Update(12.5, vp, p, nil)
	assert.InDelta(t, 0.2, s.GrowthRadius, 1e-9)

	s.Update(13, vp, p, nil)
	assert.InDelta(t, 0.2, s.GrowthRadius, 1e-9)
	assert.True(t, s.Growing(p, 13))

	s.Update(13.01, vp, p, nil)
	assert.Equal(t, 0.0, s.GrowthRadius)

	// a new dispense restarts the pulse from zero
	s.Dispense(20)
	s.Update(20.5, vp, p, nil)
	assert.InDelta(t, 0.05, s.GrowthRadius, 1e-9)
}

func TestSpotlight_RotationOnlyWhenEnabled(t *testing.T) {
	s := newTestSpotlight()
	vp := Viewport{1000, 1000}
	p := baseParams()
	p.Rotation = fixedSchedule(2, 1, 0)

	s.Update(0, vp, p, nil)
	assert.Equal(t, PhaseIdle, s.Rotation.Phase)

	p.RotationEnabled = true
	s.Update(1, vp, p, nil)
	s.Update(1.5, vp, p, nil)
	assert.InDelta(t, 1.0, s.Rotation.Theta, 1e-9)

	p.RotationEnabled = false
	s.Update(5, vp, p, nil)
	assert.InDelta(t, 1.0, s.Rotation.Theta, 1e-9)
}
