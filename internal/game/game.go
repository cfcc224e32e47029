// Package game runs facet frames: it owns the camera rig, the scene and the
// rasterizer, and draws one frame per call to Frame. Front ends supply the
// surface, the frame time and the held keys.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/taigrr/facet/internal/config"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/scene"
)

type size struct{ w, h int }

// Game is the frame controller. Frame must be called from a single
// goroutine; RequestResize and RequestReload may be called from any.
type Game struct {
	log *slog.Logger

	rig    *CameraRig
	scene  *scene.Scene
	raster *render.Rasterizer
	opts   Options
	target int // frames per second the front end should aim for
	fps    FPSCounter
	frames uint64

	mu            sync.Mutex
	pendingSize   *size
	pendingReload *config.Config
}

// New builds a game from a validated config. A nil logger discards.
func New(cfg config.Config, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	opts, err := OptionsFromConfig(cfg.Render)
	if err != nil {
		return nil, fmt.Errorf("render options: %w", err)
	}
	sc, err := BuildScene(cfg)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	cam := cameraFromConfig(cfg)
	g := &Game{
		log:    log,
		rig:    NewCameraRig(cam, cfg.FPS, cfg.Camera.Smoothing, cfg.Camera.MoveSpeed, cfg.Camera.RotateSpeed),
		scene:  sc,
		raster: render.NewRasterizer(cam, nil),
		opts:   opts,
		target: cfg.FPS,
	}
	opts.apply(g.raster)

	log.Debug("scene built", "objects", sc.Len(), "faces", sc.FaceCount())
	return g, nil
}

// RequestResize queues a surface size change. It takes effect at the start
// of the next frame, before anything is projected.
func (g *Game) RequestResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.mu.Lock()
	g.pendingSize = &size{width, height}
	g.mu.Unlock()
}

// RequestReload queues a new config. The scene, render options, camera
// settings and target frame rate are replaced at the start of the next frame. A config that fails
// to build is logged and the current scene kept.
func (g *Game) RequestReload(cfg config.Config) {
	g.mu.Lock()
	g.pendingReload = &cfg
	g.mu.Unlock()
}

// Frame advances the game by dt seconds and draws it onto s.
func (g *Game) Frame(s render.Surface, dt float64, in Input) {
	g.applyPending()

	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	g.rig.Update(in, dt)
	g.scene.Update(dt)

	g.raster.SetSurface(s)
	g.raster.ResetStats()
	g.raster.Clear(g.opts.Background)
	for _, o := range g.scene.Objects() {
		g.raster.DrawObject(o)
	}

	g.fps.Tick(dt)
	g.frames++
}

func (g *Game) applyPending() {
	g.mu.Lock()
	sz, cfg := g.pendingSize, g.pendingReload
	g.pendingSize, g.pendingReload = nil, nil
	g.mu.Unlock()

	if cfg != nil {
		if err := g.reload(*cfg); err != nil {
			g.log.Warn("reload failed, keeping current scene", "err", err)
		} else {
			g.log.Info("scene reloaded", "objects", g.scene.Len())
		}
	}
	if sz != nil {
		g.rig.Camera.SetViewport(sz.w, sz.h)
		g.log.Debug("resized", "width", sz.w, "height", sz.h)
	}
}

func (g *Game) reload(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts, err := OptionsFromConfig(cfg.Render)
	if err != nil {
		return err
	}
	sc, err := BuildScene(cfg)
	if err != nil {
		return err
	}

	g.scene = sc
	g.opts = opts
	opts.apply(g.raster)

	cam := g.rig.Camera
	cam.SetFOV(cfg.Camera.FOV * math.Pi / 180)
	cam.SetClipPlanes(cfg.Camera.Near, cfg.Camera.Far)
	g.rig.MoveSpeed = cfg.Camera.MoveSpeed
	g.rig.RotateSpeed = cfg.Camera.RotateSpeed
	g.rig.SetSmoothing(cfg.FPS, cfg.Camera.Smoothing)
	g.rig.Jump(vec(cfg.Camera.Position))
	g.target = cfg.FPS
	return nil
}

// Camera returns the camera the game draws through.
func (g *Game) Camera() *render.Camera { return g.rig.Camera }

// Rig returns the camera rig.
func (g *Game) Rig() *CameraRig { return g.rig }

// Scene returns the current scene.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Stats returns the rasterizer counters of the last frame.
func (g *Game) Stats() render.Stats { return g.raster.Stats }

// FPS returns the measured frame rate.
func (g *Game) FPS() float64 { return g.fps.FPS() }

// Frames returns the number of frames drawn.
func (g *Game) Frames() uint64 { return g.frames }

// SetMode switches between filled and wireframe drawing.
func (g *Game) SetMode(m render.Mode) {
	g.opts.Mode = m
	g.raster.Mode = m
}

// Mode returns the current draw mode.
func (g *Game) Mode() render.Mode { return g.opts.Mode }

// ToggleMode switches between filled and wireframe drawing.
func (g *Game) ToggleMode() {
	if g.opts.Mode == render.ModeWireframe {
		g.SetMode(render.ModeFilled)
	} else {
		g.SetMode(render.ModeWireframe)
	}
}

// TargetFPS returns the configured frame rate, updated by reloads.
func (g *Game) TargetFPS() int { return max(g.target, 1) }
