package render

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferFillRect(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Clear(ColorBlack)
	fb.FillRect(-5, -5, 8, 8, ColorWhite)

	assert.Equal(t, ColorWhite, fb.GetPixel(0, 0))
	assert.Equal(t, ColorWhite, fb.GetPixel(2, 2))
	assert.Equal(t, ColorBlack, fb.GetPixel(3, 3))
	assert.Equal(t, Color{}, fb.GetPixel(-1, 0), "out of bounds is transparent")
}

func TestFramebufferFillTriangle(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	fb.Clear(ColorBlack)
	red := RGB(255, 0, 0)

	fb.BeginPath()
	fb.MoveTo(0, 0)
	fb.LineTo(20, 0)
	fb.LineTo(0, 20)
	fb.ClosePath()
	fb.Fill(red)

	assert.Equal(t, red, fb.GetPixel(2, 2), "inside the triangle")
	assert.Equal(t, ColorBlack, fb.GetPixel(18, 18), "outside the triangle")
}

func TestFramebufferFillOpenPathClosesImplicitly(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Clear(ColorBlack)

	fb.BeginPath()
	fb.MoveTo(1, 1)
	fb.LineTo(9, 1)
	fb.LineTo(9, 9)
	fb.LineTo(1, 9)
	fb.Fill(ColorWhite)

	assert.Equal(t, ColorWhite, fb.GetPixel(5, 5))
}

func TestFramebufferFillThenStrokeKeepsPath(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	fb.Clear(ColorBlack)
	fill := RGB(0, 0, 200)

	fb.BeginPath()
	fb.MoveTo(2, 2)
	fb.LineTo(17, 2)
	fb.LineTo(17, 17)
	fb.LineTo(2, 17)
	fb.ClosePath()
	fb.Fill(fill)
	fb.Stroke(ColorOutline)

	assert.Equal(t, fill, fb.GetPixel(10, 10))
	assert.Equal(t, ColorOutline, fb.GetPixel(10, 2), "top edge")
	assert.Equal(t, ColorOutline, fb.GetPixel(2, 10), "closing edge")
	assert.Equal(t, ColorBlack, fb.GetPixel(0, 0))
}

func TestFramebufferBeginPathDiscards(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Clear(ColorBlack)

	fb.BeginPath()
	fb.MoveTo(0, 0)
	fb.LineTo(10, 0)
	fb.LineTo(10, 10)
	fb.BeginPath()
	fb.Fill(ColorWhite)
	fb.Stroke(ColorWhite)

	for y := range 10 {
		for x := range 10 {
			require.Equal(t, ColorBlack, fb.GetPixel(x, y))
		}
	}
}

func TestFramebufferToleratesWildCoordinates(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	fb.Clear(ColorBlack)

	paths := [][][2]float64{
		{{math.NaN(), 0}, {5, 5}, {0, 5}},
		{{math.Inf(1), 0}, {5, 5}, {0, 5}},
		{{-1e12, -1e12}, {1e12, -1e12}, {0, 1e12}},
	}
	for _, pts := range paths {
		assert.NotPanics(t, func() {
			fb.BeginPath()
			fb.MoveTo(pts[0][0], pts[0][1])
			for _, p := range pts[1:] {
				fb.LineTo(p[0], p[1])
			}
			fb.ClosePath()
			fb.Fill(ColorWhite)
			fb.Stroke(ColorOutline)
		})
	}

	// The huge triangle covers the whole buffer.
	assert.Equal(t, ColorWhite, fb.GetPixel(8, 8))
}

func TestFramebufferFarVertexKeepsEdges(t *testing.T) {
	fb := NewFramebuffer(100, 100)
	fb.Clear(ColorBlack)

	// The apex is far below the buffer; the sides are nearly vertical.
	fb.BeginPath()
	fb.MoveTo(0, 0)
	fb.LineTo(100, 0)
	fb.LineTo(50, 10000)
	fb.ClosePath()
	fb.Fill(ColorWhite)

	for _, x := range []int{2, 4, 50, 95, 97} {
		assert.Equal(t, ColorWhite, fb.GetPixel(x, 50), "pixel (%d,50)", x)
	}
}

func TestFramebufferStrokeFarEndpoint(t *testing.T) {
	fb := NewFramebuffer(100, 100)
	fb.Clear(ColorBlack)

	fb.BeginPath()
	fb.MoveTo(0, 0)
	fb.LineTo(1e6, 5e5)
	fb.Stroke(ColorWhite)

	assert.Equal(t, ColorWhite, fb.GetPixel(40, 20), "slope is kept")
	assert.Equal(t, ColorBlack, fb.GetPixel(40, 40))
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name   string
		a, b   [2]float64
		ok     bool
		ca, cb [2]float64
	}{
		{"inside", [2]float64{1, 1}, [2]float64{5, 5}, true, [2]float64{1, 1}, [2]float64{5, 5}},
		{"crosses", [2]float64{-10, 5}, [2]float64{20, 5}, true, [2]float64{0, 5}, [2]float64{10, 5}},
		{"outside", [2]float64{-5, -5}, [2]float64{-1, 20}, false, [2]float64{}, [2]float64{}},
		{"parallel outside", [2]float64{0, 11}, [2]float64{10, 11}, false, [2]float64{}, [2]float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ca, cb, ok := clipSegment(tt.a, tt.b, 10, 10)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDeltaSlice(t, tt.ca[:], ca[:], 1e-9)
				assert.InDeltaSlice(t, tt.cb[:], cb[:], 1e-9)
			}
		})
	}
}

func TestFramebufferZeroSize(t *testing.T) {
	fb := NewFramebuffer(0, -3)
	w, h := fb.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
	assert.NotPanics(t, func() {
		fb.BeginPath()
		fb.MoveTo(0, 0)
		fb.LineTo(1, 0)
		fb.LineTo(0, 1)
		fb.Fill(ColorWhite)
		fb.Stroke(ColorWhite)
	})
}

func TestDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Clear(ColorBlack)
	fb.DrawLine(0, 0, 9, 9, ColorWhite)

	for i := range 10 {
		assert.Equal(t, ColorWhite, fb.GetPixel(i, i))
	}
	assert.Equal(t, ColorBlack, fb.GetPixel(9, 0))
}

func TestFramebufferSave(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(RGB(10, 20, 30))
	dir := t.TempDir()

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "out.png")
		require.NoError(t, fb.Save(path))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		img, err := png.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 8, img.Bounds().Dx())
	})

	t.Run("webp", func(t *testing.T) {
		path := filepath.Join(dir, "out.webp")
		require.NoError(t, fb.Save(path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("unknown extension", func(t *testing.T) {
		assert.Error(t, fb.Save(filepath.Join(dir, "out.bmp")))
	})
}

func BenchmarkFramebufferFill(b *testing.B) {
	fb := NewFramebuffer(320, 240)

	for b.Loop() {
		fb.BeginPath()
		fb.MoveTo(10, 10)
		fb.LineTo(300, 40)
		fb.LineTo(160, 230)
		fb.ClosePath()
		fb.Fill(ColorWhite)
	}
}
