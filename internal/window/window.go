package window

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/facet/internal/game"
)

// Options configure the window.
type Options struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

// Window adapts a game.Game to ebiten.Game.
type Window struct {
	ctx     context.Context
	game    *game.Game
	surface *Surface
	log     *slog.Logger

	width, height int
	last          time.Time
	showHUD       bool
}

// New creates a window front end for g.
func New(ctx context.Context, g *game.Game, log *slog.Logger) *Window {
	return &Window{
		ctx:     ctx,
		game:    g,
		surface: NewSurface(),
		log:     log,
		showHUD: true,
	}
}

// Run opens the window and blocks until it is closed, Escape is pressed or
// ctx is cancelled.
func Run(ctx context.Context, g *game.Game, opts Options, log *slog.Logger) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.FPS > 0 {
		ebiten.SetTPS(opts.FPS)
	}

	log.Info("window opened", "width", opts.Width, "height", opts.Height)
	if err := ebiten.RunGame(New(ctx, g, log)); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game. Frames are drawn in Draw; Update only
// handles toggles and shutdown.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if tps := w.game.TargetFPS(); tps != ebiten.TPS() {
		ebiten.SetTPS(tps)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		w.game.ToggleMode()
		w.log.Debug("draw mode", "mode", w.game.Mode())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySlash) || inpututil.IsKeyJustPressed(ebiten.KeyH) {
		w.showHUD = !w.showHUD
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := 0.0
	if !w.last.IsZero() {
		dt = min(now.Sub(w.last).Seconds(), 0.1)
	}
	w.last = now

	w.surface.SetTarget(screen)
	w.game.Frame(w.surface, dt, ReadInput(ebiten.IsKeyPressed))

	if w.showHUD {
		st := w.game.Stats()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f FPS  %d/%d faces  %s",
			w.game.FPS(), st.FacesDrawn, st.FacesTested, w.game.Mode()), 8, 8)
	}
}

// Layout implements ebiten.Game. The surface always matches the window in
// pixels; size changes are queued on the game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.game.RequestResize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// ReadInput maps held keys to game input.
func ReadInput(pressed func(ebiten.Key) bool) game.Input {
	return game.Input{
		Forward:   pressed(ebiten.KeyW),
		Back:      pressed(ebiten.KeyS),
		Left:      pressed(ebiten.KeyA),
		Right:     pressed(ebiten.KeyD),
		Rise:      pressed(ebiten.KeySpace),
		Sink:      pressed(ebiten.KeyShift),
		PitchUp:   pressed(ebiten.KeyArrowUp),
		PitchDown: pressed(ebiten.KeyArrowDown),
		YawLeft:   pressed(ebiten.KeyArrowLeft),
		YawRight:  pressed(ebiten.KeyArrowRight),
	}
}
