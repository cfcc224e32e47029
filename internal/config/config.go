// Package config loads facet scene files. A scene file describes the
// camera, the render options and the objects to draw, in TOML, YAML or JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/facet/pkg/models"
	"gopkg.in/yaml.v3"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrNoObjects     = errors.New("scene has no objects")
	ErrUnknownMesh   = errors.New("unknown mesh kind")
	ErrUnknownFormat = errors.New("unknown config format")
	ErrInvalid       = errors.New("invalid value")
)

// Mesh kinds.
const (
	MeshCube    = "cube"
	MeshPyramid = "pyramid"
	MeshGLTF    = "gltf"
)

// Config is a complete scene description.
type Config struct {
	FPS    int    `json:"fps" toml:"fps" yaml:"fps"`
	Width  int    `json:"width" toml:"width" yaml:"width"`   // window and snapshot size
	Height int    `json:"height" toml:"height" yaml:"height"` // in pixels
	Camera Camera `json:"camera" toml:"camera" yaml:"camera"`
	Render Render `json:"render" toml:"render" yaml:"render"`

	Objects []Object `json:"objects" toml:"objects" yaml:"objects"`

	// Directory relative mesh paths resolve against; set by Load.
	BaseDir string `json:"-" toml:"-" yaml:"-"`
}

// Camera configures the view and the controller.
type Camera struct {
	Position    [3]float64 `json:"position" toml:"position" yaml:"position"`
	FOV         float64    `json:"fov" toml:"fov" yaml:"fov"` // vertical, degrees
	Near        float64    `json:"near" toml:"near" yaml:"near"`
	Far         float64    `json:"far" toml:"far" yaml:"far"`
	MoveSpeed   float64    `json:"move_speed" toml:"move_speed" yaml:"move_speed"`       // units/s
	RotateSpeed float64    `json:"rotate_speed" toml:"rotate_speed" yaml:"rotate_speed"` // rad/s

	// Spring angular frequency for smoothed movement. Negative disables
	// smoothing.
	Smoothing float64 `json:"smoothing" toml:"smoothing" yaml:"smoothing"`
}

// Render configures the rasterizer. Mode is "filled" or "wireframe",
// Degenerate "draw" or "skip", Clip "none" or "objects".
type Render struct {
	Background string `json:"background" toml:"background" yaml:"background"`
	Outline    string `json:"outline" toml:"outline" yaml:"outline"`
	Mode       string `json:"mode" toml:"mode" yaml:"mode"`
	Degenerate string `json:"degenerate" toml:"degenerate" yaml:"degenerate"`
	Clip       string `json:"clip" toml:"clip" yaml:"clip"`
}

// Object is one scene object.
type Object struct {
	Name  string  `json:"name" toml:"name" yaml:"name"`
	Mesh  string  `json:"mesh" toml:"mesh" yaml:"mesh"` // cube | pyramid | gltf
	Path  string  `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`
	Size  float64 `json:"size" toml:"size" yaml:"size"`
	Color string  `json:"color" toml:"color" yaml:"color"`

	Position [3]float64  `json:"position" toml:"position" yaml:"position"`
	Rotation [3]float64  `json:"rotation" toml:"rotation" yaml:"rotation"`
	Scale    *[3]float64 `json:"scale,omitempty" toml:"scale,omitempty" yaml:"scale,omitempty"`

	Spin [3]float64 `json:"spin" toml:"spin" yaml:"spin"` // rad/s around X, Y, Z
	Bob  *Bob       `json:"bob,omitempty" toml:"bob,omitempty" yaml:"bob,omitempty"`
}

// Bob moves an object up and down: y = position.y + amplitude·sin(frequency·t).
type Bob struct {
	Amplitude float64 `json:"amplitude" toml:"amplitude" yaml:"amplitude"`
	Frequency float64 `json:"frequency" toml:"frequency" yaml:"frequency"`
}

// Default returns the built-in demo scene: a spinning blue cube, a spinning
// and bobbing red pyramid and a green floor.
//
// Scale is a translation, so the floor is a 10-unit cube placed with its
// top face at y=-1.5 in front of the camera rather than a flattened slab.
func Default() Config {
	c := Config{
		Objects: []Object{
			{
				Name:     "cube",
				Mesh:     MeshCube,
				Size:     1,
				Color:    "#44f",
				Position: [3]float64{-1.5, 0, 0},
				Spin:     [3]float64{0.3, 0.5, 0},
			},
			{
				Name:     "pyramid",
				Mesh:     MeshPyramid,
				Size:     1,
				Color:    "#f44",
				Position: [3]float64{1.5, 0, 0},
				Spin:     [3]float64{0, -0.5, 0},
				Bob:      &Bob{Amplitude: 0.5, Frequency: 1},
			},
			{
				Name:     "floor",
				Mesh:     MeshCube,
				Size:     10,
				Color:    "#282",
				Position: [3]float64{-1, -6.6, 0},
				Scale:    &[3]float64{1, 0.1, 1},
			},
		},
	}
	c.Resolve(Flags{})
	return c
}

// Load reads a config file, choosing the decoder from the extension
// (.toml, .yaml/.yml, .json). Unset fields are filled by Resolve.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.BaseDir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes data in the format named by ext and applies defaults.
func Parse(data []byte, ext string) (Config, error) {
	var cfg Config
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return Config{}, err
	}
	cfg.Resolve(Flags{})
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	FPS        int
	Width      int
	Height     int
	Background string
	Mode       string
}

// Resolve applies flag overrides, then fills any unset field with its
// default. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Background != "" {
		c.Render.Background = flags.Background
	}
	if flags.Mode != "" {
		c.Render.Mode = flags.Mode
	}

	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}

	cam := &c.Camera
	if cam.Position == [3]float64{} {
		cam.Position = [3]float64{0, 0, -5}
	}
	if cam.FOV <= 0 {
		cam.FOV = 45
	}
	if cam.Near <= 0 {
		cam.Near = 0.1
	}
	if cam.Far <= 0 {
		cam.Far = 1000
	}
	if cam.MoveSpeed <= 0 {
		cam.MoveSpeed = 2
	}
	if cam.RotateSpeed <= 0 {
		cam.RotateSpeed = 0.5
	}
	if cam.Smoothing == 0 {
		cam.Smoothing = 6
	}

	r := &c.Render
	if r.Background == "" {
		r.Background = "#000"
	}
	if r.Outline == "" {
		r.Outline = "#333"
	}
	if r.Mode == "" {
		r.Mode = "filled"
	}
	if r.Degenerate == "" {
		r.Degenerate = "draw"
	}
	if r.Clip == "" {
		r.Clip = "none"
	}

	for i := range c.Objects {
		o := &c.Objects[i]
		if o.Size <= 0 {
			o.Size = 1
		}
		if o.Name == "" {
			o.Name = fmt.Sprintf("%s-%d", o.Mesh, i)
		}
	}
}

// Validate checks ranges and references. It does not open mesh files.
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("config: fps %d: %w (want 1-240)", c.FPS, ErrInvalid)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("config: size %dx%d: %w", c.Width, c.Height, ErrInvalid)
	}

	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		return fmt.Errorf("config: camera fov %g: %w (want 0-180 degrees)", cam.FOV, ErrInvalid)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("config: camera clip planes %g/%g: %w", cam.Near, cam.Far, ErrInvalid)
	}
	// The camera looks at the origin with +Y up.
	if cam.Position[0] == 0 && cam.Position[2] == 0 {
		return fmt.Errorf("config: camera position %v is on the Y axis: %w", cam.Position, ErrInvalid)
	}

	for _, s := range []struct{ name, value string }{
		{"background", c.Render.Background},
		{"outline", c.Render.Outline},
	} {
		if _, err := models.ParseColor(s.value); err != nil {
			return fmt.Errorf("config: render %s: %w", s.name, err)
		}
	}
	if !slices.Contains([]string{"filled", "wireframe"}, c.Render.Mode) {
		return fmt.Errorf("config: render mode %q: %w", c.Render.Mode, ErrInvalid)
	}
	if !slices.Contains([]string{"draw", "skip"}, c.Render.Degenerate) {
		return fmt.Errorf("config: render degenerate %q: %w", c.Render.Degenerate, ErrInvalid)
	}
	if !slices.Contains([]string{"none", "objects"}, c.Render.Clip) {
		return fmt.Errorf("config: render clip %q: %w", c.Render.Clip, ErrInvalid)
	}

	if len(c.Objects) == 0 {
		return fmt.Errorf("config: %w", ErrNoObjects)
	}
	for _, o := range c.Objects {
		if err := o.validate(); err != nil {
			return fmt.Errorf("config: object %q: %w", o.Name, err)
		}
	}
	return nil
}

func (o Object) validate() error {
	switch o.Mesh {
	case MeshCube, MeshPyramid:
	case MeshGLTF:
		if o.Path == "" {
			return fmt.Errorf("gltf mesh needs a path: %w", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMesh, o.Mesh)
	}
	if o.Color != "" {
		if _, err := models.ParseColor(o.Color); err != nil {
			return err
		}
	}
	if !finite(o.Position[:]...) || !finite(o.Rotation[:]...) || !finite(o.Spin[:]...) {
		return fmt.Errorf("non-finite transform: %w", ErrInvalid)
	}
	if o.Scale != nil && !finite(o.Scale[:]...) {
		return fmt.Errorf("non-finite scale: %w", ErrInvalid)
	}
	return nil
}

// MeshPath returns the object's mesh path resolved against base.
func (o Object) MeshPath(base string) string {
	if o.Path == "" || filepath.IsAbs(o.Path) || base == "" {
		return o.Path
	}
	return filepath.Join(base, o.Path)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
