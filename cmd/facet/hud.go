package main

import (
	"fmt"
	"path/filepath"

	"github.com/taigrr/facet/internal/game"
	"github.com/taigrr/facet/pkg/render"
)

var (
	hudBG     = render.RGB(0, 0, 0)
	hudGreen  = render.RGB(0x55, 0xff, 0x55)
	hudWhite  = render.RGB(0xff, 0xff, 0xff)
	hudCyan   = render.RGB(0x55, 0xff, 0xff)
	hudYellow = render.RGB(0xff, 0xff, 0x55)
)

// hudText is one overlay string in cell coordinates.
type hudText struct {
	x, y int
	text string
	fg   render.Color
}

// hud renders an overlay with the frame rate and scene info.
type hud struct {
	title string
}

func newHUD(title string) *hud {
	return &hud{title: title}
}

func sceneTitle(configPath string) string {
	if configPath == "" {
		return "demo"
	}
	return filepath.Base(configPath)
}

func (h *hud) draw(tr *render.TerminalRenderer, width, height int, g *game.Game, visible bool) {
	if !visible {
		return
	}
	st := g.Stats()
	for _, t := range h.layout(width, height, g.FPS(), st.FacesDrawn, g.Scene().FaceCount(), g.Mode()) {
		tr.DrawText(t.x, t.y, t.text, t.fg, hudBG)
	}
}

// layout places the FPS top left, the title top center, the face count
// top right and the mode line at the bottom.
func (h *hud) layout(width, height int, fps float64, drawn, total int, mode render.Mode) []hudText {
	fpsStr := fmt.Sprintf(" %.0f FPS ", fps)
	title := " " + h.title + " "
	faces := fmt.Sprintf(" %d/%d faces ", drawn, total)

	check := "[ ]"
	if mode == render.ModeWireframe {
		check = "[✓]"
	}
	modeStr := fmt.Sprintf(" %s X-Ray (wireframe) ", check)
	hint := " ?: hud  esc: quit "

	return []hudText{
		{0, 0, fpsStr, hudGreen},
		{max((width-len(title))/2, 0), 0, title, hudWhite},
		{max(width-len(faces), 0), 0, faces, hudCyan},
		{0, height - 1, modeStr, hudWhite},
		{max(width-len(hint), 0), height - 1, hint, hudYellow},
	}
}
