package render

import (
	"image/color"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorOutline = color.RGBA{0x33, 0x33, 0x33, 255}
	ColorDefault = color.RGBA{0x88, 0x88, 0x88, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// MinIntensity is the ambient floor; no lit face is ever fully black.
const MinIntensity = 0.1

// LightDir is the fixed directional light, pointing toward +Z.
var LightDir = math3d.V3(0, 0, 1)

// Intensity returns the diffuse light intensity for a face normal,
// max(MinIntensity, -normal·light), clamped to [MinIntensity, 1].
// A non-finite result (degenerate normal) yields MinIntensity.
func Intensity(normal, light math3d.Vec3) float64 {
	i := -normal.Dot(light)
	if math.IsNaN(i) || i < MinIntensity {
		return MinIntensity
	}
	if i > 1 {
		return 1
	}
	return i
}

// Shade scales each channel of c by intensity, flooring and clamping to
// [0, 255]. Alpha is kept.
func Shade(c Color, intensity float64) Color {
	return Color{
		R: shadeChannel(c.R, intensity),
		G: shadeChannel(c.G, intensity),
		B: shadeChannel(c.B, intensity),
		A: c.A,
	}
}

func shadeChannel(v uint8, intensity float64) uint8 {
	s := math.Floor(float64(v) * intensity)
	switch {
	case math.IsNaN(s), s < 0:
		return 0
	case s > 255:
		return 255
	}
	return uint8(s)
}
