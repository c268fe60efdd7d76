// flatshade - software 3D renderer
// Renders OBJ and GLB models with flat shading in a window, a terminal or
// straight to a PNG file.
//
// Controls:
//
//	Middle drag - Move the selected object over the floor
//	Right drag  - Rotate the selected object
//	Scroll      - Raise/lower the selected object
//	W/S         - Move the camera forward/back
//	A/D         - Strafe the camera left/right
//	Q/E         - Turn the camera left/right
//	Tab         - Select the next object
//	Space       - Spin the selected object
//	R           - Stop spinning
//	X           - Toggle wireframe mode
//	H           - Toggle stats overlay
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taigrr/flatshade/pkg/display"
	"github.com/taigrr/flatshade/pkg/display/window"
	"github.com/taigrr/flatshade/pkg/scene"
	"github.com/taigrr/flatshade/pkg/viewer"
)

var version = "dev"

type options struct {
	backend   string
	width     int
	height    int
	frames    int
	out       string
	wireframe bool
	noHUD     bool
	noFloor   bool
	guides    bool
	fit       float32
	fps       int
	bg        string
	logLevel  string
	logFile   string
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "flatshade [model.obj|model.glb ...]",
		Short: "Software 3D renderer with flat shading",
		Long: `flatshade renders a small scene on the CPU: a cube, a checkerboard floor
and the OBJ or glTF models given on the command line, or a built-in pot when
none are given.`,
		Example: `  flatshade teapot.obj
  flatshade --backend term --log-file flatshade.log teapot.obj
  flatshade --backend headless --frames 1 --out frame.png teapot.obj`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.backend, "backend", "window", "presentation backend: window, term or headless")
	f.IntVar(&o.width, "width", 800, "render width in pixels (window, headless)")
	f.IntVar(&o.height, "height", 600, "render height in pixels (window, headless)")
	f.IntVar(&o.frames, "frames", 1, "frames to render (headless)")
	f.StringVar(&o.out, "out", "frame.png", "output PNG path (headless)")
	f.BoolVar(&o.wireframe, "wireframe", false, "start in wireframe mode")
	f.BoolVar(&o.noHUD, "no-hud", false, "hide the stats overlay")
	f.BoolVar(&o.noFloor, "no-floor", false, "skip the checkerboard floor")
	f.BoolVar(&o.guides, "guides", false, "draw the world axes and a floor grid")
	f.Float32Var(&o.fit, "fit", 0, "scale models so their largest side is this many units (0 keeps file size)")
	f.IntVar(&o.fps, "fps", 60, "target frame rate")
	f.StringVar(&o.bg, "bg", "59,59,59", "background colour (R,G,B)")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.StringVar(&o.logFile, "log-file", "", "write logs to this file instead of stderr")
	return cmd
}

func run(ctx context.Context, o options, models []string) error {
	logger, closeLog, err := newLogger(o)
	if err != nil {
		return err
	}
	defer closeLog()

	bg, err := viewer.ParseColor(o.bg)
	if err != nil {
		return fmt.Errorf("parse --bg: %w", err)
	}

	sc, err := scene.Build(scene.Options{
		Models: models,
		Pot:    true,
		Floor:  !o.noFloor,
		Fit:    o.fit,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	backend, err := newBackend(o, logger)
	if err != nil {
		return err
	}
	logger.Info("starting", "backend", o.backend, "objects", len(sc.Objects), "triangles", sc.TriangleCount())

	app := viewer.New(sc, viewer.Config{
		Width:      o.width,
		Height:     o.height,
		FPS:        o.fps,
		Background: bg,
		Wireframe:  o.wireframe,
		HideHUD:    o.noHUD,
		Guides:     o.guides,
		Logger:     logger,
	})
	if err := backend.Run(ctx, app); err != nil {
		return fmt.Errorf("%s backend: %w", o.backend, err)
	}
	return nil
}

func newBackend(o options, logger *log.Logger) (display.Backend, error) {
	switch o.backend {
	case "window":
		return &window.Window{
			Width:  o.width,
			Height: o.height,
			Title:  "flatshade",
			FPS:    o.fps,
			Logger: logger,
		}, nil
	case "term", "terminal":
		return &display.Terminal{FPS: o.fps, Logger: logger}, nil
	case "headless":
		return &display.Headless{Frames: o.frames, Out: o.out, FPS: o.fps, Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (use window, term or headless)", o.backend)
	}
}

// newLogger builds the process logger. The terminal backend owns the screen,
// so without a log file its logs are dropped.
func newLogger(o options) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parse --log-level: %w", err)
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case o.backend == "term" || o.backend == "terminal":
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "flatshade",
	})
	return logger, closeFn, nil
}
