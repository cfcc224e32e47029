package models

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/facet/pkg/render"
)

// ErrBadColor is returned for strings that are not #rgb or #rrggbb.
var ErrBadColor = errors.New("invalid hex color")

// ParseColor parses a CSS-style hex color ("#44f" or "#4444ff").
func ParseColor(s string) (render.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return render.Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	r, g, b := c.RGB255()
	return render.RGB(r, g, b), nil
}

// MustParseColor is like ParseColor but panics on error. For literals only.
func MustParseColor(s string) render.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FormatColor returns c as "#rrggbb".
func FormatColor(c render.Color) string {
	cf, _ := colorful.MakeColor(render.RGB(c.R, c.G, c.B))
	return cf.Hex()
}
