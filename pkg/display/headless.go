package display

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/taigrr/flatshade/pkg/input"
)

// Headless renders a fixed number of frames without presenting them and
// optionally saves the last one as PNG.
type Headless struct {
	Frames int    // frames to render; at least one is always rendered
	Out    string // PNG path, empty to skip
	FPS    int    // simulated frame rate
	Logger *log.Logger
}

// Run renders the frames as fast as possible. Every frame sees the same
// simulated time step so output is reproducible.
func (h *Headless) Run(ctx context.Context, app App) error {
	logger := h.Logger
	if logger == nil {
		logger = log.Default()
	}
	snap := input.Snapshot{DT: frameInterval(h.FPS)}

	frames := max(h.Frames, 1)
	rendered := 0
	for rendered < frames {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "headless run stopped after %d frames", rendered)
		}
		rendered++
		if app.Frame(snap) {
			break
		}
		app.Presented(0)
	}
	logger.Debug("headless run finished", "frames", rendered)

	if h.Out == "" {
		return nil
	}
	if err := app.Framebuffer().SavePNG(h.Out); err != nil {
		return errors.Wrapf(err, "save %s", h.Out)
	}
	logger.Info("wrote frame", "path", h.Out, "frames", rendered)
	return nil
}
