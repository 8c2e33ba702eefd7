package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spotlight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
rings:
  count: 3
  shrink_speed: 120
salesman:
  seed: 42
  reward_pumps: [x, z]
rotation:
  direction: ccw
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Rings.Count)
	assert.Equal(t, 120.0, cfg.Rings.ShrinkSpeed)
	// untouched keys keep their defaults
	assert.Equal(t, 0.01, cfg.Rings.Thickness)
	require.NotNil(t, cfg.Salesman.Seed)
	assert.Equal(t, int64(42), *cfg.Salesman.Seed)
	assert.Equal(t, []string{"x", "z"}, cfg.Salesman.RewardPumps)
	assert.Equal(t, "ccw", cfg.Rotation.Direction)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero rings":    "rings:\n  count: 0\n",
		"bad direction": "rotation:\n  direction: sideways\n",
		"unknown pump":  "salesman:\n  reward_pumps: [w]\n",
		"inverted delay": `
rotation:
  delay: {randomize: true, min: 3, max: 1}
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestColorRGBA(t *testing.T) {
	c := Color{1, 0.5, -1, 2}.RGBA()
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
}
