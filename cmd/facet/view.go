package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/internal/config"
	"github.com/taigrr/facet/internal/game"
	"github.com/taigrr/facet/pkg/render"
)

func newViewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Draw the scene in the terminal (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd.Context(), opts)
		},
	}
}

func runView(ctx context.Context, opts *rootOptions) error {
	// Anything written to the terminal while it is in the alt screen would
	// corrupt the picture.
	log, closeLog, err := opts.logger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := opts.loadConfig(config.Flags{})
	if err != nil {
		return err
	}
	g, err := game.New(cfg, log)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	g.RequestResize(fbWidth, fbHeight)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := opts.watchConfig(ctx, g, config.Flags{}, log); err != nil {
		cleanup()
		return err
	}

	keys := newKeyState()
	resized := make(chan [2]int, 1)
	var toggleMode, showHUD atomic.Bool
	showHUD.Store(true)

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-resized:
				default:
				}
				resized <- [2]int{ev.Width, ev.Height}

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c", "q"):
					cancel()
					return
				case ev.MatchString("x"):
					toggleMode.Store(true)
				case ev.MatchString("?", "shift+/"):
					showHUD.Store(!showHUD.Load())
				default:
					if c, ok := controlFor(ev.MatchString, ev.Code); ok {
						keys.press(c, time.Now())
					}
				}

			case uv.KeyReleaseEvent:
				if c, ok := controlFor(ev.MatchString, ev.Code); ok {
					keys.release(c)
				}
			}
		}
	}()

	lastFrame := time.Now()
	hud := newHUD(sceneTitle(opts.configPath))

	for {
		select {
		case <-ctx.Done():
			cleanup()
			log.Info("terminal view closed", "frames", g.Frames())
			return nil
		case sz := <-resized:
			width, height = sz[0], sz[1]
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			fbWidth, fbHeight = termRenderer.FramebufferSize()
			fb = render.NewFramebuffer(fbWidth, fbHeight)
			g.RequestResize(fbWidth, fbHeight)
		default:
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		if toggleMode.Swap(false) {
			g.ToggleMode()
		}

		g.Frame(fb, dt, keys.input(now))
		termRenderer.Render(fb)
		hud.draw(termRenderer, width, height, g, showHUD.Load())
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		// Frame timing; a reload may change the rate
		targetDuration := time.Second / time.Duration(g.TargetFPS())
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
