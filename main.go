package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/spotlight/internal/audio"
	"github.com/iburimskiy/spotlight/internal/config"
	"github.com/iburimskiy/spotlight/internal/display"
	"github.com/iburimskiy/spotlight/internal/game"
	"github.com/iburimskiy/spotlight/internal/tracking"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (defaults are used when empty)")
		replayPath = flag.String("replay", "", "JSON-lines tracking replay file")
		pickReplay = flag.Bool("pick-replay", false, "choose the replay file with a file dialog")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath, *replayPath, *pickReplay); err != nil {
		slog.Error("spotlight stopped", "err", err)
		_ = zenity.Error(err.Error(), zenity.Title("Spotlight"))
		os.Exit(1)
	}
}

func run(configPath, replayPath string, pick bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if replayPath != "" {
		cfg.Tracking.ReplayFile = replayPath
	}
	if pick {
		path, err := selectReplay()
		if err != nil {
			return err
		}
		if path != "" {
			cfg.Tracking.ReplayFile = path
		}
	}
	slog.Info("config loaded",
		"path", configPath,
		"display", fmt.Sprintf("%dx%d", cfg.Display.Width, cfg.Display.Height),
		"replay", cfg.Tracking.ReplayFile,
		"pumps", len(cfg.Pumps),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	feed := tracking.NewFeed()
	if cfg.Tracking.ReplayFile != "" {
		replay, err := tracking.OpenReplay(cfg.Tracking.ReplayFile, cfg.Tracking.Loop)
		if err != nil {
			return err
		}
		go func() {
			if err := replay.Run(ctx, feed); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("replay stopped", "err", err)
			}
		}()
	}

	cues := audio.NewPlayer(cfg.Audio)
	if err := cues.Init(); err != nil {
		// the rig runs without sound
		slog.Warn("audio disabled", "err", err)
	}
	defer cues.Close()

	stage := game.NewStage(cfg, feed, game.WithCues(cues))

	display.Configure(cfg.Display)
	if err := ebiten.RunGame(display.NewGame(stage)); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run display: %w", err)
	}
	return nil
}

func selectReplay() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Tracking Replay"),
		zenity.FileFilters{{
			Name:     "Tracking replay",
			Patterns: []string{"*.jsonl", "*.json"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("select replay: %w", err)
	}
	slog.Info("replay selected", "path", filename)
	return filename, nil
}
