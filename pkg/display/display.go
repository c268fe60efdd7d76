// Package display runs the frame loop against a presentation target: a
// terminal, an offscreen buffer or (in the window subpackage) a desktop
// window.
package display

import (
	"context"
	"time"

	"github.com/taigrr/flatshade/pkg/input"
	"github.com/taigrr/flatshade/pkg/render"
)

// App is the per-frame work a backend drives.
type App interface {
	// Frame applies input and renders into the framebuffer. It returns true
	// when the app wants to stop.
	Frame(snap input.Snapshot) (done bool)

	// Framebuffer returns the buffer the last frame was rendered into.
	Framebuffer() *render.Framebuffer

	// Resize changes the render target size in pixels.
	Resize(width, height int)

	// Presented reports how long the backend took to show the last frame.
	Presented(d time.Duration)
}

// Backend owns the frame cadence and presents frames.
type Backend interface {
	Run(ctx context.Context, app App) error
}

// frameInterval returns the pacing interval for fps, falling back to 60.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
