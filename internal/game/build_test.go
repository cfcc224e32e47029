package game

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/facet/internal/config"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

func TestBuildDefaultScene(t *testing.T) {
	s, err := BuildScene(config.Default())
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	cube, pyramid, floor := s.Objects()[0], s.Objects()[1], s.Objects()[2]
	assert.Equal(t, "cube", cube.Name)
	assert.Equal(t, math3d.V3(-1.5, 0, 0), cube.Position)
	assert.Equal(t, math3d.V3(1, 1, 1), cube.Scale)
	assert.Equal(t, render.RGB(0x44, 0x44, 0xff), cube.Mesh.FaceColor(0))
	assert.Equal(t, 6, cube.Mesh.FaceCount())

	assert.Equal(t, render.RGB(0xff, 0x44, 0x44), pyramid.Mesh.FaceColor(0))
	assert.Equal(t, models.PyramidBaseColor, pyramid.Mesh.FaceColor(4))

	assert.Equal(t, math3d.V3(1, 0.1, 1), floor.Scale)
	assert.Nil(t, floor.Update, "floor is static")
	assert.InDelta(t, 10.0, floor.Mesh.Size().X, 1e-12)

	s.Update(math.Pi / 2)
	assert.InDelta(t, 0.5*math.Pi/2, cube.Rotation.Y, 1e-12)
	assert.InDelta(t, 0.3*math.Pi/2, cube.Rotation.X, 1e-12)
	assert.InDelta(t, -0.5*math.Pi/2, pyramid.Rotation.Y, 1e-12)
	assert.InDelta(t, 0.5, pyramid.Position.Y, 1e-12)
	assert.Equal(t, -6.6, floor.Position.Y)

	// Top face of the floor sits at y=-1.5 once the scale offset is applied.
	top := floor.ModelMatrix().TransformPoint(math3d.V3(0, 5, 0)).Vec3()
	assert.InDelta(t, -1.5, top.Y, 1e-12)
}

func TestBuildDefaultColors(t *testing.T) {
	cfg := config.Default()
	cfg.Objects = []config.Object{
		{Name: "c", Mesh: config.MeshCube, Size: 1},
		{Name: "p", Mesh: config.MeshPyramid, Size: 1},
	}
	s, err := BuildScene(cfg)
	require.NoError(t, err)
	assert.Equal(t, models.CubeColor, s.Objects()[0].Mesh.FaceColor(0))
	assert.Equal(t, models.PyramidColor, s.Objects()[1].Mesh.FaceColor(0))
}

func TestBuildSceneErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Objects = []config.Object{{Name: "x", Mesh: "teapot", Size: 1}}
	_, err := BuildScene(cfg)
	assert.True(t, errors.Is(err, config.ErrUnknownMesh), "got %v", err)

	cfg.Objects = []config.Object{{Name: "ship", Mesh: config.MeshGLTF, Path: "ship.glb", Size: 1}}
	cfg.BaseDir = filepath.Join(t.TempDir(), "missing")
	_, err = BuildScene(cfg)
	assert.ErrorContains(t, err, "load model")

	cfg.Objects = []config.Object{{Name: "x", Mesh: config.MeshCube, Size: 1, Color: "blue"}}
	_, err = BuildScene(cfg)
	assert.True(t, errors.Is(err, models.ErrBadColor), "got %v", err)
}

func TestOptionsFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		in      config.Render
		want    Options
		wantErr bool
	}{
		{
			name: "defaults",
			in:   config.Render{Background: "#000", Outline: "#333"},
			want: Options{Background: render.RGB(0, 0, 0), Outline: render.RGB(0x33, 0x33, 0x33)},
		},
		{
			name: "all set",
			in:   config.Render{Background: "#102030", Outline: "#fff", Mode: "wireframe", Degenerate: "skip", Clip: "objects"},
			want: Options{
				Background: render.RGB(0x10, 0x20, 0x30),
				Outline:    render.RGB(0xff, 0xff, 0xff),
				Mode:       render.ModeWireframe,
				Degenerate: render.DegenerateSkip,
				Clip:       render.ClipObjects,
			},
		},
		{name: "bad background", in: config.Render{Background: "nope", Outline: "#333"}, wantErr: true},
		{name: "bad mode", in: config.Render{Background: "#000", Outline: "#333", Mode: "points"}, wantErr: true},
		{name: "bad clip", in: config.Render{Background: "#000", Outline: "#333", Clip: "all"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := OptionsFromConfig(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
