package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Tracking camera space to display space
	TrackingOffsetX = 1020
	TrackingOffsetY = 465
	TrackingScale   = 1172

	// Salesman placement
	PlacementAttempts   = 100
	PlacementSeparation = 1.2
	PlacementMargin     = 0.1

	// Push magnitude under which the spotlight drifts back to the centre
	DriftPushThreshold = 0.05

	CalibrationMarkerRadius = 20
)

var ErrInvalid = errors.New("invalid config")

// Color is an RGBA quadruple with channels in 0..1.
type Color [4]float64

func (c Color) RGBA() color.NRGBA {
	ch := func(v float64) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}

type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Rings     RingsConfig     `yaml:"rings"`
	Grating   GratingConfig   `yaml:"grating"`
	Objects   ObjectsConfig   `yaml:"objects"`
	Spotlight SpotlightConfig `yaml:"spotlight"`
	Rotation  RotationConfig  `yaml:"rotation"`
	Salesman  SalesmanConfig  `yaml:"salesman"`
	Pumps     []PumpConfig    `yaml:"pumps"`
	Door      DoorConfig      `yaml:"door"`
	Audio     AudioConfig     `yaml:"audio"`
}

type DisplayConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	SecondScreen bool `yaml:"second_screen"`
	Fullscreen   bool `yaml:"fullscreen"`
	Calibrating  bool `yaml:"calibrating"`
	ShowHUD      bool `yaml:"show_hud"`
}

type TrackingConfig struct {
	ReplayFile string  `yaml:"replay_file"`
	OffsetX    float64 `yaml:"offset_x"`
	OffsetY    float64 `yaml:"offset_y"`
	Scale      float64 `yaml:"scale"`
	Mirror     bool    `yaml:"mirror"`
	Loop       bool    `yaml:"loop"`
}

type RingsConfig struct {
	Enabled     bool       `yaml:"enabled"`
	Center      [2]float64 `yaml:"center"`
	BoxWidth    float64    `yaml:"box_width"`
	Count       int        `yaml:"count"`
	Radius      float64    `yaml:"radius"`
	Gap         float64    `yaml:"gap"`
	Thickness   float64    `yaml:"thickness"`
	ShrinkSpeed float64    `yaml:"shrink_speed"`
	Color       Color      `yaml:"color"`
}

type GratingConfig struct {
	Enabled    bool       `yaml:"enabled"`
	Vertical   bool       `yaml:"vertical"`
	Speed      float64    `yaml:"speed"`
	BarLength  float64    `yaml:"bar_length"`
	Center     [2]float64 `yaml:"center"`
	BoxWidth   float64    `yaml:"box_width"`
	BoxHeight  float64    `yaml:"box_height"`
	BarColor   Color      `yaml:"bar_color"`
	Background Color      `yaml:"background"`
}

// ObjectsConfig styles the rings drawn around tracked objects.
type ObjectsConfig struct {
	Radius         float64 `yaml:"radius"`
	InnerRatio     float64 `yaml:"inner_ratio"`
	Color          Color   `yaml:"color"`
	AlternateColor Color   `yaml:"alternate_color"`
	Segments       int     `yaml:"segments"`
}

type SpotlightConfig struct {
	Radius           float64 `yaml:"radius"`
	Color            Color   `yaml:"color"`
	AlternateColor   Color   `yaml:"alternate_color"`
	Segments         int     `yaml:"segments"`
	DriftSpeed       float64 `yaml:"drift_speed"`
	CollisionEnabled bool    `yaml:"collision_enabled"`
	Dynamic          bool    `yaml:"dynamic"`
	GrowthDuration   float64 `yaml:"growth_duration"`
	GrowthMaxRadius  float64 `yaml:"growth_max_radius"`
	GrowthLinger     float64 `yaml:"growth_linger"`
}

type Interval struct {
	Value     float64 `yaml:"value"`
	Min       float64 `yaml:"min"`
	Max       float64 `yaml:"max"`
	Randomize bool    `yaml:"randomize"`
}

type RotationConfig struct {
	Running bool `yaml:"running"`
	// Random picks a random magnitude each cycle, otherwise Theta is the fixed target.
	Random       bool     `yaml:"random"`
	Theta        float64  `yaml:"theta"`
	MinMagnitude float64  `yaml:"min_magnitude"`
	MaxMagnitude float64  `yaml:"max_magnitude"`
	Direction    string   `yaml:"direction"` // random, cw, ccw
	Duration     Interval `yaml:"duration"`
	Delay        Interval `yaml:"delay"`
}

type SalesmanConfig struct {
	Count              int     `yaml:"count"`
	Radius             float64 `yaml:"radius"`
	IntersectionMillis int     `yaml:"intersection_ms"`
	Color              Color   `yaml:"color"`
	Segments           int     `yaml:"segments"`
	Seed               *int64  `yaml:"seed"`
	ReuseSeed          bool    `yaml:"reuse_seed"`
	// Pumps dispensed when every target has been collected.
	RewardPumps []string `yaml:"reward_pumps"`
}

type PumpConfig struct {
	ID          string  `yaml:"id"`
	Repeat      bool    `yaml:"repeat"`
	Randomize   bool    `yaml:"randomize"`
	IntervalSec float64 `yaml:"interval_s"`
	MinDelaySec float64 `yaml:"min_delay_s"`
	MaxDelaySec float64 `yaml:"max_delay_s"`
}

type DoorConfig struct {
	Enabled        bool `yaml:"enabled"`
	ObjectLimit    int  `yaml:"object_limit"`
	ManualOverride bool `yaml:"manual_override"`
}

type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	CueFile      string  `yaml:"cue_file"`
	DispenseTone int `yaml:"dispense_tone_hz"`
	CompleteTone int `yaml:"complete_tone_hz"`
	ToneMillis   int `yaml:"tone_ms"`
}

// Default returns the rig defaults.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Width:        WindowWidth,
			Height:       WindowHeight,
			SecondScreen: true,
			ShowHUD:      true,
		},
		Tracking: TrackingConfig{
			OffsetX: TrackingOffsetX,
			OffsetY: TrackingOffsetY,
			Scale:   TrackingScale,
			Mirror:  true,
		},
		Rings: RingsConfig{
			Center:      [2]float64{0.5, 0.5},
			BoxWidth:    0.8,
			Count:       5,
			Radius:      0.04,
			Gap:         0.02,
			Thickness:   0.01,
			ShrinkSpeed: 80,
			Color:       Color{1, 1, 1, 1},
		},
		Grating: GratingConfig{
			Vertical:   true,
			Speed:      100,
			BarLength:  40,
			Center:     [2]float64{0.5, 0.5},
			BoxWidth:   0.3,
			BoxHeight:  0.3,
			BarColor:   Color{1, 1, 1, 1},
			Background: Color{0, 0, 0, 1},
		},
		Objects: ObjectsConfig{
			Radius:         0.12,
			InnerRatio:     0.75,
			Color:          Color{1, 0, 0, 1},
			AlternateColor: Color{0, 0, 0, 1},
			Segments:       12,
		},
		Spotlight: SpotlightConfig{
			Radius:           0.1,
			Color:            Color{1, 1, 0, 1},
			AlternateColor:   Color{1, 1, 0, 1},
			Segments:         64,
			DriftSpeed:       0.1,
			CollisionEnabled: true,
			GrowthDuration:   3,
			GrowthMaxRadius:  0.2,
			GrowthLinger:     1,
		},
		Rotation: RotationConfig{
			Random:       true,
			MinMagnitude: 6,
			MaxMagnitude: 12,
			Direction:    "random",
			Duration:     Interval{Value: 1, Min: 0.5, Max: 5, Randomize: true},
			Delay:        Interval{Value: 0, Min: 0, Max: 5, Randomize: true},
		},
		Salesman: SalesmanConfig{
			Count:              5,
			Radius:             70,
			IntersectionMillis: 500,
			Color:              Color{1, 0.8, 0.2, 1},
			Segments:           32,
		},
		Pumps: []PumpConfig{
			{ID: "x", IntervalSec: 10, MinDelaySec: 5, MaxDelaySec: 100},
			{ID: "y", IntervalSec: 10, MinDelaySec: 5, MaxDelaySec: 100},
			{ID: "z", IntervalSec: 10, MinDelaySec: 5, MaxDelaySec: 100},
		},
		Door: DoorConfig{
			ObjectLimit: 3,
		},
		Audio: AudioConfig{
			Enabled:      true,
			DispenseTone: 880,
			CompleteTone: 1320,
			ToneMillis:   150,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	case c.Tracking.Scale == 0:
		return fmt.Errorf("%w: tracking scale must be non-zero", ErrInvalid)
	case c.Rings.Count < 1:
		return fmt.Errorf("%w: rings.count must be at least 1", ErrInvalid)
	case c.Rings.Thickness <= 0:
		return fmt.Errorf("%w: rings.thickness must be positive", ErrInvalid)
	case c.Grating.BarLength <= 0:
		return fmt.Errorf("%w: grating.bar_length must be positive", ErrInvalid)
	case c.Salesman.Count < 1:
		return fmt.Errorf("%w: salesman.count must be at least 1", ErrInvalid)
	case c.Salesman.Radius <= 0:
		return fmt.Errorf("%w: salesman.radius must be positive", ErrInvalid)
	case c.Rotation.MinMagnitude > c.Rotation.MaxMagnitude:
		return fmt.Errorf("%w: rotation magnitude range [%g, %g]", ErrInvalid, c.Rotation.MinMagnitude, c.Rotation.MaxMagnitude)
	}
	switch c.Rotation.Direction {
	case "random", "cw", "ccw":
	default:
		return fmt.Errorf("%w: rotation.direction %q", ErrInvalid, c.Rotation.Direction)
	}
	for _, iv := range []Interval{c.Rotation.Duration, c.Rotation.Delay} {
		if iv.Randomize && iv.Min > iv.Max {
			return fmt.Errorf("%w: interval range [%g, %g]", ErrInvalid, iv.Min, iv.Max)
		}
	}
	seen := map[string]bool{}
	for _, p := range c.Pumps {
		if p.ID == "" {
			return fmt.Errorf("%w: pump without id", ErrInvalid)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate pump %q", ErrInvalid, p.ID)
		}
		seen[p.ID] = true
		if p.Randomize && p.MinDelaySec > p.MaxDelaySec {
			return fmt.Errorf("%w: pump %q delay range [%g, %g]", ErrInvalid, p.ID, p.MinDelaySec, p.MaxDelaySec)
		}
	}
	for _, id := range c.Salesman.RewardPumps {
		if !seen[id] {
			return fmt.Errorf("%w: salesman reward pump %q not configured", ErrInvalid, id)
		}
	}
	return nil
}
