package tracking

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Frame is one line of a replay file.
type Frame struct {
	T       float64  `json:"t"`
	Objects []Object `json:"objects"`
}

// ReadFrames parses JSON-lines frames. Blank lines are skipped; frames must be
// in non-decreasing time order.
func ReadFrames(r io.Reader) ([]Frame, error) {
	var frames []Frame
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var fr Frame
		if err := json.Unmarshal(b, &fr); err != nil {
			return nil, fmt.Errorf("replay line %d: %w", line, err)
		}
		if n := len(frames); n > 0 && fr.T < frames[n-1].T {
			return nil, fmt.Errorf("replay line %d: time %g before %g", line, fr.T, frames[n-1].T)
		}
		frames = append(frames, fr)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay scan: %w", err)
	}
	return frames, nil
}

// Replay publishes recorded frames into a Feed on their recorded timing.
type Replay struct {
	Frames []Frame
	Loop   bool

	// sleep is swapped in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func OpenReplay(path string, loop bool) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	frames, err := ReadFrames(f)
	if err != nil {
		return nil, err
	}
	return &Replay{Frames: frames, Loop: loop}, nil
}

// Run blocks until every frame has been published (or forever with Loop)
// or ctx is cancelled.
func (r *Replay) Run(ctx context.Context, feed *Feed) error {
	if len(r.Frames) == 0 {
		return nil
	}
	sleep := r.sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	for pass := 0; ; pass++ {
		prev := r.Frames[0].T
		for _, fr := range r.Frames {
			if wait := fr.T - prev; wait > 0 {
				if err := sleep(ctx, time.Duration(wait*float64(time.Second))); err != nil {
					return err
				}
			}
			prev = fr.T
			feed.Publish(fr.Objects)
		}
		if !r.Loop {
			slog.Info("replay finished", "frames", len(r.Frames), "dropped", feed.Dropped())
			return nil
		}
		slog.Debug("replay looping", "pass", pass+1)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
