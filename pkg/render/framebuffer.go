// Package render implements the facet transform pipeline, the flat-shading
// rasterizer and the software surfaces it draws to.
package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/vector"
)

// Framebuffer is an in-memory Surface backed by an RGBA image.
// Paths are filled with an x/image/vector rasterizer and stroked with
// one-pixel Bresenham lines.
type Framebuffer struct {
	Width  int
	Height int

	img   *image.RGBA
	fill  *vector.Rasterizer
	path  []subpath
	cover *image.Uniform

	// Sutherland-Hodgman scratch buffers, swapped between clip edges
	clipA, clipB [][2]float64
}

type subpath struct {
	pts    [][2]float64
	closed bool
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		fill:   vector.NewRasterizer(width, height),
		cover:  image.NewUniform(ColorBlack),
	}
}

// Size implements Surface.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	fb.FillRect(0, 0, fb.Width, fb.Height, c)
}

// FillRect implements Surface.
func (fb *Framebuffer) FillRect(x, y, w, h int, c Color) {
	r := image.Rect(x, y, x+w, y+h).Intersect(fb.img.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			fb.img.SetRGBA(px, py, c)
		}
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.img.SetRGBA(x, y, c)
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.img.RGBAAt(x, y)
}

// BeginPath implements Surface.
func (fb *Framebuffer) BeginPath() {
	fb.path = fb.path[:0]
}

// MoveTo implements Surface.
func (fb *Framebuffer) MoveTo(x, y float64) {
	fb.path = append(fb.path, subpath{pts: [][2]float64{{x, y}}})
}

// LineTo implements Surface. A LineTo without a preceding MoveTo starts a
// subpath at the given point.
func (fb *Framebuffer) LineTo(x, y float64) {
	if len(fb.path) == 0 || fb.path[len(fb.path)-1].closed {
		fb.MoveTo(x, y)
		return
	}
	sp := &fb.path[len(fb.path)-1]
	sp.pts = append(sp.pts, [2]float64{x, y})
}

// ClosePath implements Surface.
func (fb *Framebuffer) ClosePath() {
	if len(fb.path) == 0 {
		return
	}
	fb.path[len(fb.path)-1].closed = true
}

// Fill implements Surface.
func (fb *Framebuffer) Fill(c Color) {
	if fb.Width == 0 || fb.Height == 0 {
		return
	}
	z := fb.fill
	z.Reset(fb.Width, fb.Height)

	drawn := false
	for _, sp := range fb.path {
		if len(sp.pts) < 3 || !finitePath(sp.pts) {
			continue
		}
		pts := fb.clipPolygon(sp.pts)
		if len(pts) < 3 {
			continue
		}
		z.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
		for _, p := range pts[1:] {
			z.LineTo(float32(p[0]), float32(p[1]))
		}
		z.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}

	fb.cover.C = c
	z.Draw(fb.img, fb.img.Rect, fb.cover, image.Point{})
}

// Stroke implements Surface.
func (fb *Framebuffer) Stroke(c Color) {
	for _, sp := range fb.path {
		if !finitePath(sp.pts) {
			continue
		}
		for i := 1; i < len(sp.pts); i++ {
			fb.strokeSegment(sp.pts[i-1], sp.pts[i], c)
		}
		if sp.closed && len(sp.pts) > 1 {
			fb.strokeSegment(sp.pts[len(sp.pts)-1], sp.pts[0], c)
		}
	}
}

func (fb *Framebuffer) strokeSegment(a, b [2]float64, c Color) {
	a, b, ok := clipSegment(a, b, float64(fb.Width), float64(fb.Height))
	if !ok {
		return
	}
	fb.DrawLine(
		int(math.Floor(a[0])), int(math.Floor(a[1])),
		int(math.Floor(b[0])), int(math.Floor(b[1])),
		c,
	)
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipEdge is one side of the surface rectangle: points with
// p[axis] >= bound are inside, or p[axis] <= bound when upper is set.
type clipEdge struct {
	axis  int
	bound float64
	upper bool
}

func (e clipEdge) inside(p [2]float64) bool {
	if e.upper {
		return p[e.axis] <= e.bound
	}
	return p[e.axis] >= e.bound
}

// cross returns the point where segment a-b meets the edge. a and b must
// lie on opposite sides.
func (e clipEdge) cross(a, b [2]float64) [2]float64 {
	t := (e.bound - a[e.axis]) / (b[e.axis] - a[e.axis])
	other := 1 - e.axis
	var p [2]float64
	p[e.axis] = e.bound
	p[other] = a[other] + t*(b[other]-a[other])
	return p
}

// clipPolygon clips a closed polygon to the surface rectangle
// (Sutherland-Hodgman). Edges inside the rectangle keep their lines, so the
// covered pixels match the unclipped polygon. The result aliases fb's
// scratch buffers and is valid until the next call.
func (fb *Framebuffer) clipPolygon(pts [][2]float64) [][2]float64 {
	edges := [4]clipEdge{
		{axis: 0, bound: 0},
		{axis: 0, bound: float64(fb.Width), upper: true},
		{axis: 1, bound: 0},
		{axis: 1, bound: float64(fb.Height), upper: true},
	}

	in := append(fb.clipA[:0], pts...)
	out := fb.clipB[:0]
	for _, e := range edges {
		out = out[:0]
		for i, cur := range in {
			prev := in[(i+len(in)-1)%len(in)]
			if e.inside(cur) != e.inside(prev) {
				out = append(out, e.cross(prev, cur))
			}
			if e.inside(cur) {
				out = append(out, cur)
			}
		}
		in, out = out, in
		if len(in) == 0 {
			break
		}
	}
	fb.clipA, fb.clipB = in, out
	return in
}

// clipSegment clips a-b to the rectangle [0,w]x[0,h] (Liang-Barsky).
// ok is false when the segment misses the rectangle.
func clipSegment(a, b [2]float64, w, h float64) (ca, cb [2]float64, ok bool) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	t0, t1 := 0.0, 1.0
	for _, pq := range [4][2]float64{
		{-dx, a[0]},
		{dx, w - a[0]},
		{-dy, a[1]},
		{dy, h - a[1]},
	} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return ca, cb, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return ca, cb, false
		}
	}
	ca = [2]float64{a[0] + t0*dx, a[1] + t0*dy}
	cb = [2]float64{a[0] + t1*dx, a[1] + t1*dy}
	return ca, cb, true
}

func finitePath(pts [][2]float64) bool {
	for _, p := range pts {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Save writes the framebuffer to path, choosing PNG or WebP from the
// file extension.
func (fb *Framebuffer) Save(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return fb.SavePNG(path)
	case ".webp":
		return fb.SaveWebP(path)
	default:
		return fmt.Errorf("unsupported image format: %q (use .png or .webp)", ext)
	}
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, fb.img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// SaveWebP saves the framebuffer as a lossless WebP file.
func (fb *Framebuffer) SaveWebP(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create webp: %w", err)
	}
	if err := nativewebp.Encode(f, fb.img, nil); err != nil {
		f.Close()
		return fmt.Errorf("encode webp: %w", err)
	}
	return f.Close()
}
