// Package window presents frames in a desktop window using ebiten.
package window

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/taigrr/flatshade/pkg/display"
	"github.com/taigrr/flatshade/pkg/input"
)

// Window is a display.Backend that opens a resizable desktop window. The
// scene renders at Width×Height and ebiten scales it to the window.
type Window struct {
	Width, Height int
	Title         string
	FPS           int
	Logger        *log.Logger
}

var _ display.Backend = (*Window)(nil)

// Run blocks until the window closes, the app finishes or ctx is cancelled.
func (w *Window) Run(ctx context.Context, app display.App) error {
	logger := w.Logger
	if logger == nil {
		logger = log.Default()
	}
	fps := w.FPS
	if fps <= 0 {
		fps = 60
	}

	app.Resize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(fps)

	g := &game{ctx: ctx, app: app, last: time.Now()}
	logger.Info("window backend started", "width", w.Width, "height", w.Height, "fps", fps)
	if err := ebiten.RunGame(g); err != nil {
		return errors.Wrap(err, "run window")
	}
	return nil
}

type game struct {
	ctx  context.Context
	app  display.App
	last time.Time
	pix  []byte
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	now := time.Now()
	snap := poll(now.Sub(g.last))
	g.last = now
	if g.app.Frame(snap) {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	start := time.Now()
	fb := g.app.Framebuffer()
	if n := 4 * fb.Width * fb.Height; len(g.pix) != n {
		g.pix = make([]byte, n)
	}
	fb.CopyRGBA(g.pix)
	screen.WritePixels(g.pix)
	g.app.Presented(time.Since(start))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.app.Framebuffer()
	return fb.Width, fb.Height
}

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeyTab:        input.KeyTab,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyQ:          input.KeyQ,
	ebiten.KeyE:          input.KeyE,
	ebiten.KeyX:          input.KeyX,
	ebiten.KeyH:          input.KeyH,
	ebiten.KeyR:          input.KeyR,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
}

var buttonMap = map[ebiten.MouseButton]input.Button{
	ebiten.MouseButtonLeft:   input.ButtonLeft,
	ebiten.MouseButtonMiddle: input.ButtonMiddle,
	ebiten.MouseButtonRight:  input.ButtonRight,
}

// poll reads the current device state.
func poll(dt time.Duration) input.Snapshot {
	snap := input.Snapshot{DT: dt}
	for ek, k := range keyMap {
		if ebiten.IsKeyPressed(ek) {
			snap.Held = snap.Held.With(k)
		}
		if inpututil.IsKeyJustPressed(ek) {
			snap.Pressed = snap.Pressed.With(k)
		}
	}
	for eb, b := range buttonMap {
		if ebiten.IsMouseButtonPressed(eb) {
			snap.Buttons |= b
		}
	}
	x, y := ebiten.CursorPosition()
	snap.X, snap.Y = float32(x), float32(y)
	_, wheel := ebiten.Wheel()
	snap.Wheel = float32(wheel)
	return snap
}
