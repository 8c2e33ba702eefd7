package display

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/spotlight/internal/config"
	"github.com/iburimskiy/spotlight/internal/game"
)

// Game adapts a Stage to the ebiten frame loop.
type Game struct {
	stage *game.Stage
	vp    game.Viewport
	scene *game.Scene

	showHUD bool
}

func NewGame(stage *game.Stage) *Game {
	d := stage.Config.Display
	return &Game{
		stage:   stage,
		vp:      game.Viewport{W: float64(d.Width), H: float64(d.Height)},
		showHUD: d.ShowHUD,
	}
}

// Configure sets window title, size, monitor and fullscreen before the loop
// starts.
func Configure(d config.DisplayConfig) {
	ebiten.SetWindowTitle("Spotlight - R rings, S salesman, T rotation, D dispense, Space pause, Esc/Q quit")
	ebiten.SetWindowSize(d.Width, d.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if d.SecondScreen {
		monitors := ebiten.AppendMonitors(nil)
		if len(monitors) > 1 {
			ebiten.SetMonitor(monitors[1])
			slog.Info("using second monitor", "name", monitors[1].Name())
		} else {
			slog.Warn("second screen requested but only one monitor found")
		}
	}
	ebiten.SetFullscreen(d.Fullscreen)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.handleKeys()

	if g.stage.Paused() && g.scene != nil {
		return nil
	}
	g.scene = g.stage.Step(g.vp)
	return nil
}

func (g *Game) handleKeys() {
	s := g.stage
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if s.Paused() {
			s.Resume()
		} else {
			s.Pause()
		}
		slog.Info("pause", "paused", s.Paused())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.ResetRings(g.vp)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		s.RestartSalesman(g.vp)
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		s.SetRotation(!s.Config.Rotation.Running)
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.manualDispense()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		s.Config.Display.Calibrating = !s.Config.Display.Calibrating
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		s.Config.Grating.Enabled = !s.Config.Grating.Enabled
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.SetRepeating(!s.Repeating())
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		s.RecenterSpotlight()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		if !s.ToggleDoor() {
			slog.Warn("manual door needs door.enabled and door.manual_override")
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		s.SetRingCount(s.Config.Rings.Count + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		s.SetRingCount(s.Config.Rings.Count - 1)
	}
}

// manualDispense fires the first configured pump, or only the growth pulse
// when the rig has no pumps.
func (g *Game) manualDispense() {
	s := g.stage
	if len(s.Config.Pumps) == 0 {
		s.Spotlight.Dispense(s.Clock.Seconds())
		return
	}
	s.DispenseNow(s.Config.Pumps[0].ID, game.SourceManual)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if g.scene == nil {
		return
	}
	drawScene(screen, g.scene)
	if g.showHUD {
		g.drawObjectOutlines(screen)
		ebitenutil.DebugPrintAt(screen, statusLine(g.scene, g.stage.Paused(), g.stage.LastErr), 12, 12)
	}
}

// drawObjectOutlines rings each tracked object in its own hue.
func (g *Game) drawObjectOutlines(screen *ebiten.Image) {
	for i, o := range g.scene.Objects {
		r, gr, b := hsvToRgb(float64(i)*67, 0.8, 1)
		vector.StrokeCircle(screen, float32(o.Center.X), float32(o.Center.Y), float32(o.Outer+4), 2,
			color.RGBA{R: r, G: gr, B: b, A: 255}, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprint(i), int(o.Center.X+o.Outer+6), int(o.Center.Y))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.vp.W), int(g.vp.H)
}

func statusLine(sc *game.Scene, paused bool, lastErr error) string {
	status := "Idle - S to start a salesman run"
	if sc.SalesmanLive {
		status = fmt.Sprintf("Run %s - %d targets left", formatDuration(secs(sc.RunElapsed)), sc.Remaining)
	}
	status += fmt.Sprintf(" | rotation %s", sc.Rotation)
	if sc.DroppedFrames > 0 {
		status += fmt.Sprintf(" | dropped %d", sc.DroppedFrames)
	}
	if paused {
		status += " | Paused"
	}
	if lastErr != nil {
		status += " | Error: " + lastErr.Error()
	}
	return status
}

func secs(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
