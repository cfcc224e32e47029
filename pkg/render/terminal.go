package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to half-block terminal cells and draws them
// on the screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows:
	// ▀ (upper half block) with fg=top color and bg=bottom color.
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(col, topY)),
					Bg: cellColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor maps transparent pixels to the terminal default color.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalScreen is a uv.Screen that can push its cells to the terminal.
// *uv.Terminal satisfies it.
type TerminalScreen interface {
	uv.Screen
	Display() error
}

// TerminalRenderer presents a Framebuffer on a terminal using half-block
// cells, two framebuffer rows per terminal row.
type TerminalRenderer struct {
	scr           TerminalScreen
	width, height int // terminal cells
}

// NewTerminalRenderer creates a renderer for a width x height cell area.
func NewTerminalRenderer(scr TerminalScreen, width, height int) *TerminalRenderer {
	return &TerminalRenderer{scr: scr, width: width, height: height}
}

// FramebufferSize returns the framebuffer size that fills the cell area.
func (t *TerminalRenderer) FramebufferSize() (int, int) {
	return t.width, t.height * 2
}

// Render draws fb onto the screen buffer.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.scr, uv.Rect(0, 0, t.width, t.height))
}

// DrawText writes a single-line overlay at (x, y) in cell coordinates.
// Text past the right edge is dropped.
func (t *TerminalRenderer) DrawText(x, y int, text string, fg, bg Color) {
	if y < 0 || y >= t.height {
		return
	}
	style := uv.Style{Fg: cellColor(fg), Bg: cellColor(bg)}
	for _, r := range text {
		if x >= t.width {
			return
		}
		if x >= 0 {
			t.scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		}
		x++
	}
}

// Flush pushes pending cell changes to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.scr.Display()
}
