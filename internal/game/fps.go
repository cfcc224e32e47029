package game

// FPSCounter measures frames per second over one-second windows.
type FPSCounter struct {
	fps     float64
	frames  int
	elapsed float64
}

// Tick records a frame that took dt seconds.
func (f *FPSCounter) Tick(dt float64) {
	f.frames++
	f.elapsed += dt
	if f.elapsed >= 1 {
		f.fps = float64(f.frames) / f.elapsed
		f.frames = 0
		f.elapsed = 0
	}
}

// FPS returns the rate measured over the last full window.
func (f *FPSCounter) FPS() float64 {
	return f.fps
}
