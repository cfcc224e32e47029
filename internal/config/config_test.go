package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/facet/pkg/models"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, [3]float64{0, 0, -5}, c.Camera.Position)
	assert.Equal(t, 45.0, c.Camera.FOV)
	assert.Equal(t, 0.1, c.Camera.Near)
	assert.Equal(t, 1000.0, c.Camera.Far)
	assert.Equal(t, 2.0, c.Camera.MoveSpeed)
	assert.Equal(t, 0.5, c.Camera.RotateSpeed)
	assert.Equal(t, "#000", c.Render.Background)
	assert.Equal(t, "#333", c.Render.Outline)

	require.Len(t, c.Objects, 3)
	cube, pyramid, floor := c.Objects[0], c.Objects[1], c.Objects[2]

	assert.Equal(t, MeshCube, cube.Mesh)
	assert.Equal(t, "#44f", cube.Color)
	assert.Equal(t, [3]float64{-1.5, 0, 0}, cube.Position)
	assert.Equal(t, [3]float64{0.3, 0.5, 0}, cube.Spin)

	assert.Equal(t, MeshPyramid, pyramid.Mesh)
	assert.Equal(t, [3]float64{0, -0.5, 0}, pyramid.Spin)
	require.NotNil(t, pyramid.Bob)
	assert.Equal(t, 0.5, pyramid.Bob.Amplitude)

	assert.Equal(t, 10.0, floor.Size)
	require.NotNil(t, floor.Scale)
	assert.Equal(t, [3]float64{1, 0.1, 1}, *floor.Scale)
	assert.Equal(t, [3]float64{-1, -6.6, 0}, floor.Position)
}

const tomlScene = `
fps = 30

[camera]
position = [2.0, 1.0, -6.0]
fov = 60.0

[render]
background = "#102030"
mode = "wireframe"

[[objects]]
mesh = "pyramid"
color = "#f44"
spin = [0.0, 1.0, 0.0]

[[objects]]
name = "ship"
mesh = "gltf"
path = "models/ship.glb"
scale = [0.0, 0.0, 0.0]
`

const yamlScene = `
fps: 30
camera:
  position: [2, 1, -6]
  fov: 60
render:
  background: "#102030"
  mode: wireframe
objects:
  - mesh: pyramid
    color: "#f44"
    spin: [0, 1, 0]
  - name: ship
    mesh: gltf
    path: models/ship.glb
    scale: [0, 0, 0]
`

const jsonScene = `{
  "fps": 30,
  "camera": {"position": [2, 1, -6], "fov": 60},
  "render": {"background": "#102030", "mode": "wireframe"},
  "objects": [
    {"mesh": "pyramid", "color": "#f44", "spin": [0, 1, 0]},
    {"name": "ship", "mesh": "gltf", "path": "models/ship.glb", "scale": [0, 0, 0]}
  ]
}`

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		file, body string
	}{
		{"scene.toml", tomlScene},
		{"scene.yaml", yamlScene},
		{"scene.yml", yamlScene},
		{"scene.json", jsonScene},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))

			c, err := Load(path)
			require.NoError(t, err)
			require.NoError(t, c.Validate())

			assert.Equal(t, 30, c.FPS)
			assert.Equal(t, [3]float64{2, 1, -6}, c.Camera.Position)
			assert.Equal(t, 60.0, c.Camera.FOV)
			assert.Equal(t, 0.1, c.Camera.Near, "unset fields get defaults")
			assert.Equal(t, "wireframe", c.Render.Mode)
			assert.Equal(t, "#333", c.Render.Outline)

			require.Len(t, c.Objects, 2)
			assert.Equal(t, "pyramid-0", c.Objects[0].Name)
			assert.Equal(t, 1.0, c.Objects[0].Size)
			assert.Nil(t, c.Objects[0].Scale)
			require.NotNil(t, c.Objects[1].Scale)
			assert.Equal(t, [3]float64{}, *c.Objects[1].Scale)

			assert.Equal(t, dir, c.BaseDir)
			assert.Equal(t, filepath.Join(dir, "models", "ship.glb"), c.Objects[1].MeshPath(c.BaseDir))
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	ini := filepath.Join(dir, "scene.ini")
	require.NoError(t, os.WriteFile(ini, []byte("fps=1"), 0o644))
	_, err = Load(ini)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	bad := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestResolveFlagsOverride(t *testing.T) {
	c := Default()
	c.Resolve(Flags{FPS: 24, Width: 320, Height: 200, Background: "#fff", Mode: "wireframe"})

	assert.Equal(t, 24, c.FPS)
	assert.Equal(t, 320, c.Width)
	assert.Equal(t, 200, c.Height)
	assert.Equal(t, "#fff", c.Render.Background)
	assert.Equal(t, "wireframe", c.Render.Mode)

	c.Resolve(Flags{})
	assert.Equal(t, 24, c.FPS, "empty flags keep current values")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"no objects", func(c *Config) { c.Objects = nil }, ErrNoObjects},
		{"unknown mesh", func(c *Config) { c.Objects[0].Mesh = "teapot" }, ErrUnknownMesh},
		{"bad color", func(c *Config) { c.Objects[1].Color = "red" }, models.ErrBadColor},
		{"bad background", func(c *Config) { c.Render.Background = "#12" }, models.ErrBadColor},
		{"gltf without path", func(c *Config) { c.Objects[0].Mesh = MeshGLTF }, ErrInvalid},
		{"fps too high", func(c *Config) { c.FPS = 1000 }, ErrInvalid},
		{"fov", func(c *Config) { c.Camera.FOV = 180 }, ErrInvalid},
		{"clip planes", func(c *Config) { c.Camera.Far = c.Camera.Near }, ErrInvalid},
		{"camera on y axis", func(c *Config) { c.Camera.Position = [3]float64{0, 5, 0} }, ErrInvalid},
		{"mode", func(c *Config) { c.Render.Mode = "textured" }, ErrInvalid},
		{"degenerate", func(c *Config) { c.Render.Degenerate = "maybe" }, ErrInvalid},
		{"clip", func(c *Config) { c.Render.Clip = "vertices" }, ErrInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

func TestMeshPath(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "models", "a.glb")
	assert.Equal(t, abs, Object{Path: abs}.MeshPath("/base"))
	assert.Equal(t, "a.glb", Object{Path: "a.glb"}.MeshPath(""))
	assert.Equal(t, "", Object{}.MeshPath("/base"))
}
