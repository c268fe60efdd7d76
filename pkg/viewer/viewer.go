// Package viewer ties the scene, input, renderer and overlay into the frame
// step every display backend drives.
package viewer

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/taigrr/flatshade/pkg/display"
	"github.com/taigrr/flatshade/pkg/hud"
	"github.com/taigrr/flatshade/pkg/input"
	"github.com/taigrr/flatshade/pkg/render"
	"github.com/taigrr/flatshade/pkg/scene"
)

// ReportEvery is how many frames pass between debug reports.
const ReportEvery = 100

// Config holds the viewer's startup settings.
type Config struct {
	Width, Height int
	FPS           int
	Background    render.Color // zero value keeps render.ColorBackground
	Wireframe     bool
	HideHUD       bool
	Guides        bool
	Logger        *log.Logger
}

// Viewer is a display.App rendering a scene.
type Viewer struct {
	Scene    *scene.Scene
	State    *render.FrameContext
	Renderer *render.Renderer
	Control  *input.Controller
	Overlay  *hud.Overlay

	fps     *hud.FPSCounter
	present time.Duration
	frames  int
	last    render.FrameStats
	logger  *log.Logger
}

var _ display.App = (*Viewer)(nil)

// New creates a viewer for sc.
func New(sc *scene.Scene, cfg Config) *Viewer {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}

	scr := render.Screen{Width: max(cfg.Width, 1), Height: max(cfg.Height, 1)}
	ctx := render.NewFrameContext(scr, render.NewCamera(), scene.LightDir, sc.Objects)
	if cfg.Background != (render.Color{}) {
		ctx.Background = cfg.Background
	}
	ctx.ShowGuides = cfg.Guides
	if cfg.Wireframe {
		ctx.Mode = render.ModeWireframe
	}

	ctl := input.NewController(fps)
	ctl.ShowHUD = !cfg.HideHUD

	return &Viewer{
		Scene:    sc,
		State:    ctx,
		Renderer: render.NewRenderer(),
		Control:  ctl,
		Overlay:  hud.NewOverlay(),
		fps:      hud.NewFPSCounter(time.Now()),
		logger:   logger,
	}
}

// Frame applies input, renders the scene and draws the overlay.
func (v *Viewer) Frame(snap input.Snapshot) bool {
	if v.Control.Update(snap, v.Scene, v.State) {
		v.logger.Info("quit requested", "frames", v.frames)
		return true
	}

	v.last = v.Renderer.RenderFrame(v.State)
	fps := v.fps.Tick(time.Now())
	if v.Control.ShowHUD {
		v.Overlay.Draw(v.State.Framebuffer, hud.Stats{
			FPS:       fps,
			Transform: v.last.Transform,
			Raster:    v.last.Raster,
			Present:   v.present,
			Visible:   v.last.Visible,
		})
	}

	v.frames++
	if v.frames%ReportEvery == 0 {
		v.logger.Debug("frame", "n", v.frames, "fps", fps, "visible", v.last.Visible, "culled", v.last.Culled)
	}
	return false
}

// Framebuffer returns the render target.
func (v *Viewer) Framebuffer() *render.Framebuffer {
	return v.State.Framebuffer
}

// Resize changes the render target size. Sizes below one pixel are raised
// to one.
func (v *Viewer) Resize(width, height int) {
	v.State.Resize(render.Screen{Width: max(width, 1), Height: max(height, 1)})
}

// Presented records the backend's present time for the next overlay.
func (v *Viewer) Presented(d time.Duration) {
	v.present = d
}

// Frames returns the number of frames rendered.
func (v *Viewer) Frames() int {
	return v.frames
}

// LastStats returns the statistics of the most recent frame.
func (v *Viewer) LastStats() render.FrameStats {
	return v.last
}

// ParseColor parses "r,g,b" with each component in 0..255.
func ParseColor(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, errors.Errorf("colour %q: want r,g,b", s)
	}
	var c [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, errors.Wrapf(err, "colour %q", s)
		}
		c[i] = uint8(n)
	}
	return render.RGB(c[0], c[1], c[2]), nil
}
