package hud

import "time"

// FPSCounter averages the frame rate over one second windows.
type FPSCounter struct {
	fps    float64
	frames int
	start  time.Time
}

// NewFPSCounter starts counting at now.
func NewFPSCounter(now time.Time) *FPSCounter {
	return &FPSCounter{start: now}
}

// Tick records a frame finished at now and returns the current estimate.
func (c *FPSCounter) Tick(now time.Time) float64 {
	c.frames++
	elapsed := now.Sub(c.start)
	if elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.start = now
	}
	return c.fps
}

// FPS returns the last full-window estimate.
func (c *FPSCounter) FPS() float64 {
	return c.fps
}
