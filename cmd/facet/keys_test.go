package main

import (
	"slices"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/taigrr/facet/internal/game"
	"github.com/taigrr/facet/pkg/render"
)

func matcher(name string) func(...string) bool {
	return func(s ...string) bool { return slices.Contains(s, name) }
}

func TestControlFor(t *testing.T) {
	tests := []struct {
		key  string
		code rune
		want control
		ok   bool
	}{
		{"w", 'w', ctlForward, true},
		{"s", 's', ctlBack, true},
		{"a", 'a', ctlLeft, true},
		{"d", 'd', ctlRight, true},
		{"space", ' ', ctlRise, true},
		{"c", 'c', ctlSink, true},
		{"leftshift", uv.KeyLeftShift, ctlSink, true},
		{"up", uv.KeyUp, ctlPitchUp, true},
		{"down", uv.KeyDown, ctlPitchDown, true},
		{"left", uv.KeyLeft, ctlYawLeft, true},
		{"right", uv.KeyRight, ctlYawRight, true},
		{"z", 'z', 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got, ok := controlFor(matcher(tc.key), tc.code)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestKeyState(t *testing.T) {
	k := newKeyState()
	now := time.Now()

	k.press(ctlForward, now)
	k.press(ctlYawLeft, now)
	assert.Equal(t, game.Input{Forward: true, YawLeft: true}, k.input(now.Add(keyHold/2)))

	k.release(ctlYawLeft)
	assert.Equal(t, game.Input{Forward: true}, k.input(now))

	assert.Equal(t, game.Input{}, k.input(now.Add(keyHold)), "presses expire without repeats")
}

func TestHUDLayout(t *testing.T) {
	h := newHUD("scene.toml")
	texts := h.layout(80, 24, 59.6, 9, 17, render.ModeFilled)
	assert.Len(t, texts, 5)

	assert.Equal(t, " 60 FPS ", texts[0].text)
	assert.Equal(t, 0, texts[0].y)
	assert.Equal(t, (80-len(" scene.toml "))/2, texts[1].x)
	assert.Equal(t, " 9/17 faces ", texts[2].text)
	assert.Equal(t, 80-len(texts[2].text), texts[2].x)
	assert.Equal(t, 23, texts[3].y)
	assert.Contains(t, texts[3].text, "[ ]")

	wire := h.layout(10, 5, 0, 0, 0, render.ModeWireframe)
	assert.Contains(t, wire[3].text, "[✓]")
	for _, tx := range wire {
		assert.GreaterOrEqual(t, tx.x, 0)
	}
}

func TestSceneTitle(t *testing.T) {
	assert.Equal(t, "demo", sceneTitle(""))
	assert.Equal(t, "scene.toml", sceneTitle("/tmp/scenes/scene.toml"))
}
