package display

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"
	"github.com/taigrr/flatshade/pkg/input"
)

// Terminal presents frames in the terminal's alternate screen using half
// block characters, two pixel rows per cell.
type Terminal struct {
	FPS    int
	Logger *log.Logger
}

// Run takes over the terminal until the app finishes, ctx is cancelled or
// the user presses ctrl+c.
func (t *Terminal) Run(ctx context.Context, app App) error {
	logger := t.Logger
	if logger == nil {
		logger = log.Default()
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return errors.Wrap(err, "get terminal size")
	}
	if err := term.Start(); err != nil {
		return errors.Wrap(err, "start terminal")
	}

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		logger.Warn("resize terminal", "err", err)
	}
	_, _ = term.WriteString(ansi.SetModeMouseAnyEvent + ansi.SetModeMouseExtSgr)
	defer func() {
		_, _ = term.WriteString(ansi.ResetModeMouseAnyEvent + ansi.ResetModeMouseExtSgr)
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Warn("shutdown terminal", "err", err)
		}
	}()

	app.Resize(width, height*2)
	logger.Info("terminal backend started", "cols", width, "rows", height)

	// The pump only forwards; all state changes happen on this goroutine.
	events := make(chan uv.Event, 256)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var in termInput
	interval := frameInterval(t.FPS)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

	drain:
		for {
			select {
			case ev := <-events:
				in.handle(ev)
			default:
				break drain
			}
		}
		if in.quit {
			return nil
		}
		if in.resized {
			in.resized = false
			term.Erase()
			if err := term.Resize(in.width, in.height); err != nil {
				logger.Warn("resize terminal", "err", err)
			}
			app.Resize(in.width, in.height*2)
			logger.Debug("terminal resized", "cols", in.width, "rows", in.height)
		}

		now := time.Now()
		if app.Frame(in.snapshot(now.Sub(last))) {
			return nil
		}
		last = now

		start := time.Now()
		term.Draw(app.Framebuffer())
		if err := term.Display(); err != nil {
			return errors.Wrap(err, "display frame")
		}
		app.Presented(time.Since(start))

		if elapsed := time.Since(now); elapsed < interval {
			time.Sleep(interval - elapsed)
		}
	}
}

// termInput accumulates terminal events between frames. Terminals do not
// report key releases reliably, so a key counts as held only for the frame
// its press (or auto-repeat) arrived in.
type termInput struct {
	buttons input.Button
	x, y    float32
	wheel   float32
	pressed input.Keys

	quit          bool
	resized       bool
	width, height int
}

func (in *termInput) handle(ev uv.Event) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		in.resized = true
		in.width, in.height = ev.Width, ev.Height

	case uv.KeyPressEvent:
		if ev.MatchString("ctrl+c") {
			in.quit = true
			return
		}
		if k, ok := input.ParseKey(ev.Keystroke()); ok {
			in.pressed = in.pressed.With(k)
		}

	case uv.MouseClickEvent:
		in.buttons |= mouseButton(ev.Button)
		in.move(ev.X, ev.Y)

	case uv.MouseReleaseEvent:
		// SGR reports which button went up, X10 does not.
		if b := mouseButton(ev.Button); b != 0 {
			in.buttons &^= b
		} else {
			in.buttons = 0
		}
		in.move(ev.X, ev.Y)

	case uv.MouseMotionEvent:
		in.move(ev.X, ev.Y)

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			in.wheel++
		case uv.MouseWheelDown:
			in.wheel--
		}
	}
}

// move records a cell position in framebuffer pixels.
func (in *termInput) move(col, row int) {
	in.x, in.y = float32(col), float32(row*2)
}

// snapshot returns the accumulated state and resets the per-frame parts.
func (in *termInput) snapshot(dt time.Duration) input.Snapshot {
	snap := input.Snapshot{
		Buttons: in.buttons,
		X:       in.x,
		Y:       in.y,
		Wheel:   in.wheel,
		Held:    in.pressed,
		Pressed: in.pressed,
		DT:      dt,
	}
	in.wheel = 0
	in.pressed = 0
	return snap
}

func mouseButton(b uv.MouseButton) input.Button {
	switch b {
	case uv.MouseLeft:
		return input.ButtonLeft
	case uv.MouseMiddle:
		return input.ButtonMiddle
	case uv.MouseRight:
		return input.ButtonRight
	}
	return 0
}
