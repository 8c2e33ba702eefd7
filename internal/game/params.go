package game

import (
	"github.com/iburimskiy/spotlight/internal/config"
	"github.com/iburimskiy/spotlight/internal/tracking"
)

func ringGeometry(c config.RingsConfig, vp Viewport) RingGeometry {
	box := c.BoxWidth * vp.Min()
	return RingGeometry{
		Count:       c.Count,
		StartRadius: c.Radius * box,
		Gap:         c.Gap * box,
		Thickness:   c.Thickness * box,
		ShrinkSpeed: c.ShrinkSpeed,
	}
}

func grating(c config.GratingConfig) Grating {
	return Grating{Vertical: c.Vertical, Speed: c.Speed, BarLength: c.BarLength}
}

func gratingBox(c config.GratingConfig, vp Viewport) Rect {
	center := vp.ToPixels(Vec2{c.Center[0], c.Center[1]})
	return BoxAround(center, c.BoxWidth*vp.W, c.BoxHeight*vp.H)
}

func direction(s string) Direction {
	switch s {
	case "cw":
		return DirectionCW
	case "ccw":
		return DirectionCCW
	}
	return DirectionRandom
}

func interval(iv config.Interval) Interval {
	return Interval{Value: iv.Value, Min: iv.Min, Max: iv.Max, Randomize: iv.Randomize}
}

// rotationSchedule resolves the random/fixed switches into a policy.
func rotationSchedule(c config.RotationConfig) RotationSchedule {
	var policy RotationPolicy = FixedRotation{Theta: c.Theta}
	if c.Random {
		policy = RandomRotation{
			MinMagnitude: c.MinMagnitude,
			MaxMagnitude: c.MaxMagnitude,
			Direction:    direction(c.Direction),
		}
	}
	return RotationSchedule{
		Policy:   policy,
		Duration: interval(c.Duration),
		Delay:    interval(c.Delay),
	}
}

func spotlightParams(cfg config.Config) SpotlightParams {
	c := cfg.Spotlight
	return SpotlightParams{
		Radius:           c.Radius,
		DriftSpeed:       c.DriftSpeed,
		DriftThreshold:   config.DriftPushThreshold,
		CollisionEnabled: c.CollisionEnabled,
		Dynamic:          c.Dynamic,
		GrowthDuration:   c.GrowthDuration,
		GrowthMaxRadius:  c.GrowthMaxRadius,
		GrowthLinger:     c.GrowthLinger,
		RotationEnabled:  cfg.Rotation.Running,
		Rotation:         rotationSchedule(cfg.Rotation),
	}
}

func salesmanParams(c config.SalesmanConfig) SalesmanParams {
	return SalesmanParams{
		Count:              c.Count,
		Radius:             c.Radius,
		IntersectionMillis: c.IntersectionMillis,
		Seed:               c.Seed,
		ReuseSeed:          c.ReuseSeed,
	}
}

func transform(c config.TrackingConfig) tracking.Transform {
	return tracking.Transform{OffsetX: c.OffsetX, OffsetY: c.OffsetY, Scale: c.Scale, Mirror: c.Mirror}
}
