// Package models provides the polygon meshes facet draws: hand-built
// primitives and meshes loaded from glTF files.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// ErrBadIndex is returned when a face references a vertex that does not exist.
var ErrBadIndex = errors.New("vertex index out of range")

// Mesh is an indexed polygon mesh with one flat color per face.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box, kept current by CalculateBounds
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a polygon over Mesh.Vertices, wound counter-clockwise when seen
// from its visible side.
type Face struct {
	V     []int
	Color render.Color
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(x, y, z float64) int {
	m.Vertices = append(m.Vertices, math3d.V3(x, y, z))
	return len(m.Vertices) - 1
}

// AddFace appends a face over the given vertex indices. A zero color
// (alpha 0) means render.ColorDefault.
func (m *Mesh) AddFace(c render.Color, indices ...int) {
	if c.A == 0 {
		c = render.ColorDefault
	}
	m.Faces = append(m.Faces, Face{V: append([]int(nil), indices...), Color: c})
}

// Validate checks that every face index refers to an existing vertex.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("mesh %q face %d: %w: %d", m.Name, i, ErrBadIndex, idx)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.TransformPoint(v).Vec3()
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its
// largest dimension equals size.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	ext := m.Size()
	maxDim := max(ext.X, ext.Y, ext.Z)
	if maxDim <= 0 {
		return
	}
	s := size / maxDim
	m.Transform(math3d.Translate(m.Center().Negate()).Mul(math3d.Scale(math3d.V3(s, s, s))))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  append([]math3d.Vec3(nil), m.Vertices...),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	for i, f := range m.Faces {
		clone.Faces[i] = Face{V: append([]int(nil), f.V...), Color: f.Color}
	}
	return clone
}

// FaceCount returns the number of faces.
// Implements render.MeshRenderer interface.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// AppendFaceVertices appends the positions of face i to dst.
// Implements render.MeshRenderer interface.
func (m *Mesh) AppendFaceVertices(dst []math3d.Vec3, i int) []math3d.Vec3 {
	for _, idx := range m.Faces[i].V {
		dst = append(dst, m.Vertices[idx])
	}
	return dst
}

// FaceColor returns the base color of face i.
// Implements render.MeshRenderer interface.
func (m *Mesh) FaceColor(i int) render.Color {
	return m.Faces[i].Color
}

// GetBounds returns the axis-aligned bounding box.
// Implements render.BoundedMeshRenderer interface.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
