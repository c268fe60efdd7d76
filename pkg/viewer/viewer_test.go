package viewer

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/taigrr/flatshade/pkg/display"
	"github.com/taigrr/flatshade/pkg/input"
	"github.com/taigrr/flatshade/pkg/render"
	"github.com/taigrr/flatshade/pkg/scene"
)

func newViewer(t testing.TB, cfg Config) *Viewer {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	sc, err := scene.Build(scene.Options{Floor: true, Logger: cfg.Logger})
	if err != nil {
		t.Fatal(err)
	}
	return New(sc, cfg)
}

func TestViewerFrame(t *testing.T) {
	v := newViewer(t, Config{Width: 800, Height: 600, Background: render.ColorBackground})

	if v.Frame(input.Snapshot{}) {
		t.Fatal("empty snapshot ended the viewer")
	}

	// The rotated cube shows 6 of its 12 triangles; every floor triangle
	// faces up and is kept.
	stats := v.LastStats()
	wantVisible := 6 + 2*scene.FloorTiles*scene.FloorTiles
	if stats.Visible != wantVisible || stats.Culled != 6 {
		t.Errorf("visible %d culled %d, want %d and 6", stats.Visible, stats.Culled, wantVisible)
	}

	fb := v.Framebuffer()
	if fb.Width != 800 || fb.Height != 600 {
		t.Fatalf("framebuffer %dx%d", fb.Width, fb.Height)
	}
	drawn := 0
	bg := render.PackRGB(render.ColorBackground)
	for _, p := range fb.Pixels {
		if p != bg {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("frame is empty")
	}
	if v.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", v.Frames())
	}
}

func TestViewerHUD(t *testing.T) {
	// Without a floor, the top right corner only changes when the HUD draws.
	countCorner := func(hide bool) int {
		sc, err := scene.Build(scene.Options{Logger: log.New(io.Discard)})
		if err != nil {
			t.Fatal(err)
		}
		v := New(sc, Config{Width: 800, Height: 600, HideHUD: hide, Logger: log.New(io.Discard)})
		v.Frame(input.Snapshot{})
		fb := v.Framebuffer()
		n := 0
		for row := range 80 {
			for x := 520; x < 800; x++ {
				if fb.PixelRow(x, row) != v.State.Background {
					n++
				}
			}
		}
		return n
	}

	if countCorner(false) == 0 {
		t.Error("HUD not drawn")
	}
	if n := countCorner(true); n != 0 {
		t.Errorf("hidden HUD touched %d pixels", n)
	}
}

func TestViewerConfig(t *testing.T) {
	v := newViewer(t, Config{Width: 0, Height: -4, Wireframe: true, Guides: true, HideHUD: true})
	if v.State.Mode != render.ModeWireframe {
		t.Errorf("Mode = %v, want wireframe", v.State.Mode)
	}
	if !v.State.ShowGuides {
		t.Error("guides not enabled")
	}
	if v.Control.ShowHUD {
		t.Error("HUD not hidden")
	}
	if fb := v.Framebuffer(); fb.Width != 1 || fb.Height != 1 {
		t.Errorf("framebuffer %dx%d, want 1x1", fb.Width, fb.Height)
	}

	v.Resize(320, 200)
	if fb := v.Framebuffer(); fb.Width != 320 || fb.Height != 200 {
		t.Errorf("after resize %dx%d", fb.Width, fb.Height)
	}
	if v.State.Proj != v.State.Camera.ProjectionMatrix(render.Screen{Width: 320, Height: 200}) {
		t.Error("projection not updated on resize")
	}
}

func TestViewerQuit(t *testing.T) {
	v := newViewer(t, Config{Width: 64, Height: 48})
	esc := input.Keys(0).With(input.KeyEscape)
	if !v.Frame(input.Snapshot{Held: esc, Pressed: esc}) {
		t.Error("escape did not end the viewer")
	}
	if v.Frames() != 0 {
		t.Errorf("rendered %d frames on quit", v.Frames())
	}
}

func TestViewerReports(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	v := newViewer(t, Config{Width: 32, Height: 24, Logger: logger})

	for range ReportEvery - 1 {
		v.Frame(input.Snapshot{})
	}
	if strings.Contains(buf.String(), "visible") {
		t.Fatal("reported before the interval")
	}
	v.Frame(input.Snapshot{})
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("no report after %d frames: %q", ReportEvery, buf.String())
	}
}

func TestViewerHeadless(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	v := newViewer(t, Config{Width: 160, Height: 120})

	h := &display.Headless{Frames: 3, Out: out, FPS: 60, Logger: log.New(io.Discard)}
	if err := h.Run(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	if v.Frames() != 3 {
		t.Errorf("rendered %d frames, want 3", v.Frames())
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Color
		wantErr bool
	}{
		{"59,59,59", render.RGB(59, 59, 59), false},
		{"255, 0 ,12", render.RGB(255, 0, 12), false},
		{"256,0,0", render.Color{}, true},
		{"1,2", render.Color{}, true},
		{"a,b,c", render.Color{}, true},
		{"", render.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkViewerFrame(b *testing.B) {
	v := newViewer(b, Config{Width: 800, Height: 600})
	for b.Loop() {
		v.Frame(input.Snapshot{})
	}
}
