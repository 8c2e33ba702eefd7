package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/spotlight/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// toneGain scales the unit sine down to 0.4.
const toneGain = -0.6

var (
	ErrUnsupported = errors.New("unsupported audio file")
	ErrBadTone     = errors.New("tone frequency must be positive")
)

// Player plays short feedback sounds on dispense and run completion. A cue
// file, when configured, replaces the dispense tone.
type Player struct {
	mu       sync.Mutex
	cfg      config.AudioConfig
	cue      *beep.Buffer
	ready    bool
	disabled bool
}

func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{cfg: cfg, disabled: !cfg.Enabled}
}

// Init opens the speaker and loads the cue file.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disabled || p.ready {
		return nil
	}
	if p.cfg.CueFile != "" {
		buf, err := loadCue(p.cfg.CueFile)
		if err != nil {
			return err
		}
		p.cue = buf
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.ready = true
	slog.Debug("audio ready", "cue", p.cfg.CueFile)
	return nil
}

// Close stops anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Clear()
	p.ready = false
}

func (p *Player) Dispense() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	if p.cue != nil {
		speaker.Play(p.cue.Streamer(0, p.cue.Len()))
		return
	}
	tone, err := Tone(sampleRate, p.cfg.DispenseTone, p.toneLength())
	if err != nil {
		slog.Warn("dispense cue", "err", err)
		return
	}
	speaker.Play(tone)
}

func (p *Player) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	// two short rising beeps
	d := p.toneLength()
	low, err := Tone(sampleRate, p.cfg.DispenseTone, d)
	if err != nil {
		slog.Warn("completion cue", "err", err)
		return
	}
	high, err := Tone(sampleRate, p.cfg.CompleteTone, d)
	if err != nil {
		slog.Warn("completion cue", "err", err)
		return
	}
	speaker.Play(beep.Seq(low, beep.Silence(sampleRate.N(d/2)), high))
}

func (p *Player) toneLength() time.Duration {
	if p.cfg.ToneMillis <= 0 {
		return 150 * time.Millisecond
	}
	return time.Duration(p.cfg.ToneMillis) * time.Millisecond
}

// Tone is a sine beep of length d at cue volume.
func Tone(sr beep.SampleRate, freq int, d time.Duration) (beep.Streamer, error) {
	if freq <= 0 {
		return nil, fmt.Errorf("%w: %d Hz", ErrBadTone, freq)
	}
	sine, err := generators.SinTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("tone %d Hz: %w", freq, err)
	}
	return beep.Take(sr.N(d), &effects.Gain{Streamer: sine, Gain: toneGain}), nil
}

// loadCue decodes a wav, mp3 or flac file into memory at the speaker rate.
func loadCue(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode cue %s: %w", path, err)
	}
	defer streamer.Close()

	out := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(out)
	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	buf.Append(s)
	return buf, nil
}
