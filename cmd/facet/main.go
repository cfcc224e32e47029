// facet - flat-shaded 3D scenes in the terminal, a desktop window or an
// image file.
//
// Controls (view and window):
//
//	W/S         - Move camera forward/back
//	A/D         - Move camera left/right
//	Space/Shift - Move camera up/down (C also moves down in terminals)
//	Arrows      - Turn camera
//	X           - Toggle wireframe mode
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
