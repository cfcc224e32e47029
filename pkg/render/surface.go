package render

// Surface is a 2D drawing device the rasterizer emits faces to.
//
// Paths follow canvas semantics: BeginPath discards the current path,
// MoveTo starts a subpath, LineTo extends it, ClosePath joins it back to its
// start. Fill and Stroke both paint the current path and leave it intact, so
// a face can be filled and then outlined from a single trace.
type Surface interface {
	// Size reports the current pixel dimensions.
	Size() (width, height int)

	// FillRect paints a solid rectangle.
	FillRect(x, y, w, h int, c Color)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()

	// Fill paints the interior of the current path. Open subpaths are
	// treated as closed.
	Fill(c Color)

	// Stroke paints the outline of the current path.
	Stroke(c Color)
}

// ClearSurface fills the whole surface with c.
func ClearSurface(s Surface, c Color) {
	w, h := s.Size()
	s.FillRect(0, 0, w, h, c)
}
