package models

import "github.com/taigrr/facet/pkg/render"

// Default primitive colors.
var (
	CubeColor        = render.RGB(0x66, 0x66, 0x66)
	PyramidColor     = render.RGB(0x88, 0x88, 0x44)
	PyramidBaseColor = render.RGB(0x44, 0x44, 0x22)
)

// NewCube builds an axis-aligned cube of edge length size centered on the
// origin, every face in color c.
func NewCube(size float64, c render.Color) *Mesh {
	m := NewMesh("cube")
	s := size / 2

	m.AddVertex(-s, -s, -s) // 0
	m.AddVertex(s, -s, -s)  // 1
	m.AddVertex(s, s, -s)   // 2
	m.AddVertex(-s, s, -s)  // 3
	m.AddVertex(-s, -s, s)  // 4
	m.AddVertex(s, -s, s)   // 5
	m.AddVertex(s, s, s)    // 6
	m.AddVertex(-s, s, s)   // 7

	m.AddFace(c, 0, 3, 2, 1) // front (-Z)
	m.AddFace(c, 2, 6, 5, 1) // right
	m.AddFace(c, 6, 7, 4, 5) // back
	m.AddFace(c, 7, 3, 0, 4) // left
	m.AddFace(c, 7, 6, 2, 3) // top
	m.AddFace(c, 0, 1, 5, 4) // bottom

	m.CalculateBounds()
	return m
}

// NewPyramid builds a square pyramid with its apex on +Y. The sides use c,
// the base PyramidBaseColor.
func NewPyramid(size float64, c render.Color) *Mesh {
	m := NewMesh("pyramid")
	s := size / 2

	m.AddVertex(0, s, 0)   // apex
	m.AddVertex(-s, -s, s) // front left
	m.AddVertex(s, -s, s)  // front right
	m.AddVertex(s, -s, -s) // back right
	m.AddVertex(-s, -s, -s)

	m.AddFace(c, 0, 1, 2)
	m.AddFace(c, 0, 2, 3)
	m.AddFace(c, 0, 3, 4)
	m.AddFace(c, 0, 4, 1)
	m.AddFace(PyramidBaseColor, 1, 4, 3, 2)

	m.CalculateBounds()
	return m
}
