package models

import (
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// outwardNormal returns the right-hand normal of a face's first three vertices.
func outwardNormal(m *Mesh, face int) math3d.Vec3 {
	v := m.AppendFaceVertices(nil, face)
	return v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
}

func TestPrimitivesWindOutward(t *testing.T) {
	meshes := []*Mesh{NewCube(1, render.ColorWhite), NewPyramid(1, render.ColorWhite)}
	for _, m := range meshes {
		t.Run(m.Name, func(t *testing.T) {
			center := m.Center()
			for i := range m.FaceCount() {
				v := m.AppendFaceVertices(nil, i)
				var centroid math3d.Vec3
				for _, p := range v {
					centroid = centroid.Add(p)
				}
				centroid = centroid.Scale(1 / float64(len(v)))

				if outwardNormal(m, i).Dot(centroid.Sub(center)) <= 0 {
					t.Errorf("face %d is wound inward", i)
				}
			}
		})
	}
}

func TestNewCube(t *testing.T) {
	m := NewCube(10, render.RGB(0x22, 0x88, 0x22))
	if m.VertexCount() != 8 || m.FaceCount() != 6 {
		t.Fatalf("cube has %d vertices, %d faces", m.VertexCount(), m.FaceCount())
	}
	lo, hi := m.GetBounds()
	if lo != math3d.V3(-5, -5, -5) || hi != math3d.V3(5, 5, 5) {
		t.Errorf("bounds = %v %v", lo, hi)
	}
	for i := range m.FaceCount() {
		if m.FaceColor(i) != render.RGB(0x22, 0x88, 0x22) {
			t.Errorf("face %d color = %v", i, m.FaceColor(i))
		}
	}
}

func TestNewPyramid(t *testing.T) {
	red := render.RGB(0xff, 0x44, 0x44)
	m := NewPyramid(1, red)
	if m.VertexCount() != 5 || m.FaceCount() != 5 {
		t.Fatalf("pyramid has %d vertices, %d faces", m.VertexCount(), m.FaceCount())
	}
	for i := range 4 {
		if m.FaceColor(i) != red {
			t.Errorf("side %d color = %v", i, m.FaceColor(i))
		}
	}
	if m.FaceColor(4) != PyramidBaseColor {
		t.Errorf("base color = %v, want %v", m.FaceColor(4), PyramidBaseColor)
	}
	if m.Vertices[0] != math3d.V3(0, 0.5, 0) {
		t.Errorf("apex = %v", m.Vertices[0])
	}
}

func TestCubeRendersOneFaceHeadOn(t *testing.T) {
	fb := render.NewFramebuffer(64, 64)
	cam := render.NewCamera()
	cam.SetViewport(64, 64)
	r := render.NewRasterizer(cam, fb)
	blue := render.RGB(0x44, 0x44, 0xff)

	r.Clear(render.ColorBlack)
	r.DrawMesh(NewCube(1, blue), math3d.Identity())

	if r.Stats.FacesDrawn != 1 || r.Stats.FacesCulled != 5 {
		t.Errorf("stats = %+v, want 1 drawn / 5 culled", r.Stats)
	}
	if got := fb.GetPixel(32, 32); got != blue {
		t.Errorf("center pixel = %v, want %v", got, blue)
	}
	if got := fb.GetPixel(2, 2); got != render.ColorBlack {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

func TestPyramidFromAbove(t *testing.T) {
	cam := render.NewCamera()
	cam.SetPosition(math3d.V3(0, 5, -5))
	r := render.NewRasterizer(cam, render.NewFramebuffer(32, 32))

	r.DrawMesh(NewPyramid(1, render.ColorWhite), math3d.Identity())

	// Looking down at the front: the -Z side and some neighbours, never the base.
	if r.Stats.FacesDrawn == 0 || r.Stats.FacesCulled == 0 {
		t.Errorf("stats = %+v", r.Stats)
	}
	if r.Stats.FacesDrawn+r.Stats.FacesCulled != 5 {
		t.Errorf("stats = %+v, want 5 faces tested", r.Stats)
	}
}
