// Package window is the desktop front end: an ebiten game loop driving a
// game.Game, drawn through a render.Surface backed by ebiten vector paths.
package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/taigrr/facet/pkg/render"
)

// Surface implements render.Surface on an ebiten image. Paths are
// triangulated by ebiten's vector package and drawn with DrawTriangles.
type Surface struct {
	dst   *ebiten.Image
	path  vector.Path
	white *ebiten.Image

	// Reused between draws
	vs []ebiten.Vertex
	is []uint16
}

// NewSurface creates a surface without a target. Call SetTarget before
// drawing.
func NewSurface() *Surface {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Surface{
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// SetTarget sets the image drawn to.
func (s *Surface) SetTarget(dst *ebiten.Image) {
	s.dst = dst
}

// Size implements render.Surface.
func (s *Surface) Size() (int, int) {
	if s.dst == nil {
		return 0, 0
	}
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

// FillRect implements render.Surface.
func (s *Surface) FillRect(x, y, w, h int, c render.Color) {
	if s.dst == nil {
		return
	}
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// BeginPath implements render.Surface.
func (s *Surface) BeginPath() {
	s.path = vector.Path{}
}

// MoveTo implements render.Surface.
func (s *Surface) MoveTo(x, y float64) {
	s.path.MoveTo(float32(x), float32(y))
}

// LineTo implements render.Surface.
func (s *Surface) LineTo(x, y float64) {
	s.path.LineTo(float32(x), float32(y))
}

// ClosePath implements render.Surface.
func (s *Surface) ClosePath() {
	s.path.Close()
}

// Fill implements render.Surface.
func (s *Surface) Fill(c render.Color) {
	if s.dst == nil {
		return
	}
	s.vs, s.is = s.path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	s.draw(c)
}

// Stroke implements render.Surface with a one-pixel line.
func (s *Surface) Stroke(c render.Color) {
	if s.dst == nil {
		return
	}
	s.vs, s.is = s.path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:    1,
		LineJoin: vector.LineJoinMiter,
	})
	s.draw(c)
}

func (s *Surface) draw(c render.Color) {
	if len(s.is) == 0 {
		return
	}
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = r
		s.vs[i].ColorG = g
		s.vs[i].ColorB = b
		s.vs[i].ColorA = a
	}
	s.dst.DrawTriangles(s.vs, s.is, s.white, nil)
}
