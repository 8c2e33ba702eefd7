package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/spotlight/internal/config"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestTone_LengthAndLevel(t *testing.T) {
	sr := beep.SampleRate(8000)
	tone, err := Tone(sr, 440, 100*time.Millisecond)
	require.NoError(t, err)
	samples := drain(tone)
	require.Len(t, samples, 800)

	assert.InDelta(t, 0.0, samples[0][0], 1e-12)
	peak := 0.0
	for _, s := range samples {
		assert.Equal(t, s[0], s[1])
		peak = math.Max(peak, math.Abs(s[0]))
	}
	assert.LessOrEqual(t, peak, 0.4+1e-9)
	assert.Greater(t, peak, 0.39)
}

func TestTone_RejectsBadFrequency(t *testing.T) {
	_, err := Tone(beep.SampleRate(1000), 0, time.Second)
	assert.ErrorIs(t, err, ErrBadTone)

	// above Nyquist
	_, err = Tone(beep.SampleRate(1000), 600, time.Second)
	assert.Error(t, err)
}

func TestPlayer_DisabledIsSilent(t *testing.T) {
	p := NewPlayer(config.AudioConfig{Enabled: false})
	require.NoError(t, p.Init())
	// no speaker: these must be no-ops
	p.Dispense()
	p.Complete()
	p.Close()
}

func TestLoadCue_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.ogg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err := loadCue(path)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = loadCue(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCue_BadWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))
	_, err := loadCue(path)
	assert.ErrorContains(t, err, "decode cue")
}
