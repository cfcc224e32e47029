package main

import (
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/facet/internal/game"
)

// control is one movement input.
type control int

const (
	ctlForward control = iota
	ctlBack
	ctlLeft
	ctlRight
	ctlRise
	ctlSink
	ctlPitchUp
	ctlPitchDown
	ctlYawLeft
	ctlYawRight
	numControls
)

// keyHold is how long a key press counts as held. Most terminals send no
// release events, only repeated presses while a key is down.
const keyHold = 250 * time.Millisecond

// controlFor maps a key event to a control. match is the event's
// MatchString method.
func controlFor(match func(...string) bool, code rune) (control, bool) {
	switch {
	case match("w"):
		return ctlForward, true
	case match("s"):
		return ctlBack, true
	case match("a"):
		return ctlLeft, true
	case match("d"):
		return ctlRight, true
	case match("space"):
		return ctlRise, true
	case match("c") || code == uv.KeyLeftShift || code == uv.KeyRightShift:
		return ctlSink, true
	case match("up"):
		return ctlPitchUp, true
	case match("down"):
		return ctlPitchDown, true
	case match("left"):
		return ctlYawLeft, true
	case match("right"):
		return ctlYawRight, true
	}
	return 0, false
}

// keyState tracks held controls from terminal key events. It is written by
// the event goroutine and read by the frame loop.
type keyState struct {
	mu      sync.Mutex
	pressed [numControls]time.Time
}

func newKeyState() *keyState {
	return &keyState{}
}

func (k *keyState) press(c control, now time.Time) {
	k.mu.Lock()
	k.pressed[c] = now
	k.mu.Unlock()
}

func (k *keyState) release(c control) {
	k.mu.Lock()
	k.pressed[c] = time.Time{}
	k.mu.Unlock()
}

// input returns the controls held at now.
func (k *keyState) input(now time.Time) game.Input {
	k.mu.Lock()
	defer k.mu.Unlock()

	held := func(c control) bool {
		t := k.pressed[c]
		return !t.IsZero() && now.Sub(t) < keyHold
	}
	return game.Input{
		Forward:   held(ctlForward),
		Back:      held(ctlBack),
		Left:      held(ctlLeft),
		Right:     held(ctlRight),
		Rise:      held(ctlRise),
		Sink:      held(ctlSink),
		PitchUp:   held(ctlPitchUp),
		PitchDown: held(ctlPitchDown),
		YawLeft:   held(ctlYawLeft),
		YawRight:  held(ctlYawRight),
	}
}
