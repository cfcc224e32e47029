package game

import (
	"fmt"
	"math"

	"github.com/taigrr/facet/internal/config"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/scene"
)

// Options are the rasterizer settings of a config.
type Options struct {
	Background render.Color
	Outline    render.Color
	Mode       render.Mode
	Degenerate render.DegeneratePolicy
	Clip       render.ClipMode
}

// OptionsFromConfig converts the render section of a config.
func OptionsFromConfig(r config.Render) (Options, error) {
	var o Options
	var err error
	if o.Background, err = models.ParseColor(r.Background); err != nil {
		return Options{}, fmt.Errorf("background: %w", err)
	}
	if o.Outline, err = models.ParseColor(r.Outline); err != nil {
		return Options{}, fmt.Errorf("outline: %w", err)
	}

	switch r.Mode {
	case "", "filled":
		o.Mode = render.ModeFilled
	case "wireframe":
		o.Mode = render.ModeWireframe
	default:
		return Options{}, fmt.Errorf("render mode %q: %w", r.Mode, config.ErrInvalid)
	}
	switch r.Degenerate {
	case "", "draw":
		o.Degenerate = render.DegenerateDraw
	case "skip":
		o.Degenerate = render.DegenerateSkip
	default:
		return Options{}, fmt.Errorf("degenerate policy %q: %w", r.Degenerate, config.ErrInvalid)
	}
	switch r.Clip {
	case "", "none":
		o.Clip = render.ClipNone
	case "objects":
		o.Clip = render.ClipObjects
	default:
		return Options{}, fmt.Errorf("clip mode %q: %w", r.Clip, config.ErrInvalid)
	}
	return o, nil
}

func (o Options) apply(r *render.Rasterizer) {
	r.Outline = o.Outline
	r.Mode = o.Mode
	r.Degenerate = o.Degenerate
	r.Clip = o.Clip
}

// BuildScene creates the scene objects a config describes, in order.
func BuildScene(cfg config.Config) (*scene.Scene, error) {
	s := scene.New()
	for _, o := range cfg.Objects {
		obj, err := buildObject(o, cfg.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("build object %q: %w", o.Name, err)
		}
		s.Add(obj)
	}
	return s, nil
}

func buildObject(o config.Object, baseDir string) (*scene.Object, error) {
	var c render.Color
	if o.Color != "" {
		var err error
		if c, err = models.ParseColor(o.Color); err != nil {
			return nil, err
		}
	}

	var mesh *models.Mesh
	switch o.Mesh {
	case config.MeshCube:
		mesh = models.NewCube(o.Size, orDefault(c, models.CubeColor))
	case config.MeshPyramid:
		mesh = models.NewPyramid(o.Size, orDefault(c, models.PyramidColor))
	case config.MeshGLTF:
		l := models.NewGLTFLoader()
		l.DefaultColor = orDefault(c, l.DefaultColor)
		l.FitSize = o.Size
		var err error
		if mesh, err = l.Load(o.MeshPath(baseDir)); err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownMesh, o.Mesh)
	}
	mesh.CalculateBounds()

	obj := scene.NewObject(o.Name, mesh)
	obj.Position = vec(o.Position)
	obj.Rotation = vec(o.Rotation)
	if o.Scale != nil {
		obj.Scale = vec(*o.Scale)
	}

	var updates []scene.UpdateFunc
	if o.Spin != [3]float64{} {
		updates = append(updates, scene.Spin(o.Spin[0], o.Spin[1], o.Spin[2]))
	}
	if o.Bob != nil {
		freq := o.Bob.Frequency
		if freq == 0 {
			freq = 1
		}
		updates = append(updates, scene.Bob(o.Position[1], o.Bob.Amplitude, freq))
	}
	if len(updates) > 0 {
		obj.Update = scene.Chain(updates...)
	}
	return obj, nil
}

// cameraFromConfig creates a camera with the configured projection and
// position. The aspect ratio comes from the configured size until the
// first resize.
func cameraFromConfig(c config.Config) *render.Camera {
	cam := render.NewCamera()
	cam.SetPosition(vec(c.Camera.Position))
	cam.SetFOV(c.Camera.FOV * math.Pi / 180)
	cam.SetClipPlanes(c.Camera.Near, c.Camera.Far)
	cam.SetViewport(c.Width, c.Height)
	return cam
}

func orDefault(c, def render.Color) render.Color {
	if c.A == 0 {
		return def
	}
	return c
}

func vec(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}
