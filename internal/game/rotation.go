package game

import "math/rand"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRotating
	PhaseDelaying
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRotating:
		return "rotating"
	case PhaseDelaying:
		return "delaying"
	}
	return "unknown"
}

type Direction int

const (
	DirectionRandom Direction = 0
	DirectionCW     Direction = 1
	DirectionCCW    Direction = -1
)

func (d Direction) sign(rng *rand.Rand) float64 {
	switch d {
	case DirectionCW:
		return 1
	case DirectionCCW:
		return -1
	}
	if rng.Intn(2) == 0 {
		return 1
	}
	return -1
}

// RotationPolicy picks the target angle of the next rotation cycle.
type RotationPolicy interface {
	Target(current float64, rng *rand.Rand) float64
}

// FixedRotation always rotates to Theta.
type FixedRotation struct {
	Theta float64
}

func (f FixedRotation) Target(float64, *rand.Rand) float64 { return f.Theta }

// RandomRotation rotates by a uniform magnitude in [MinMagnitude, MaxMagnitude].
type RandomRotation struct {
	MinMagnitude float64
	MaxMagnitude float64
	Direction    Direction
}

func (r RandomRotation) Target(current float64, rng *rand.Rand) float64 {
	mag := uniform(rng, r.MinMagnitude, r.MaxMagnitude)
	return current + r.Direction.sign(rng)*mag
}

// Interval is a duration in seconds, fixed or drawn from [Min, Max].
type Interval struct {
	Value     float64
	Min, Max  float64
	Randomize bool
}

func (iv Interval) Resolve(rng *rand.Rand) float64 {
	if iv.Randomize {
		return uniform(rng, iv.Min, iv.Max)
	}
	return iv.Value
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// RotationSchedule is resolved once per cycle into concrete values.
type RotationSchedule struct {
	Policy   RotationPolicy
	Duration Interval
	Delay    Interval
}

// Rotation runs the Idle -> Rotating -> Delaying -> Idle cycle.
type Rotation struct {
	Phase            Phase
	Theta            float64
	StartTheta       float64
	TargetTheta      float64
	RotationDuration float64
	DelayDuration    float64
	PhaseStart       float64
}

// Stop returns to idle; Theta stays where it is.
func (r *Rotation) Stop() {
	r.Phase = PhaseIdle
}

// Advance steps the state machine to time now.
func (r *Rotation) Advance(now float64, s RotationSchedule, rng *rand.Rand) {
	if r.Phase == PhaseIdle {
		r.StartTheta = r.Theta
		r.TargetTheta = r.Theta
		if s.Policy != nil {
			r.TargetTheta = s.Policy.Target(r.Theta, rng)
		}
		r.RotationDuration = s.Duration.Resolve(rng)
		r.DelayDuration = s.Delay.Resolve(rng)
		r.Phase = PhaseRotating
		r.PhaseStart = now
	}

	switch r.Phase {
	case PhaseRotating:
		t := 1.0
		if r.RotationDuration > 0 {
			t = (now - r.PhaseStart) / r.RotationDuration
		}
		if t >= 1 {
			r.Theta = r.TargetTheta
			r.Phase = PhaseDelaying
			r.PhaseStart = now
			return
		}
		r.Theta = r.StartTheta + t*(r.TargetTheta-r.StartTheta)
	case PhaseDelaying:
		if now-r.PhaseStart >= r.DelayDuration {
			r.Phase = PhaseIdle
			r.PhaseStart = now
		}
	}
}
