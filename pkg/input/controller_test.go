package input

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"
	"github.com/taigrr/flatshade/pkg/math3d"
	"github.com/taigrr/flatshade/pkg/render"
	"github.com/taigrr/flatshade/pkg/scene"
)

func newTestScene(t *testing.T) (*scene.Scene, *render.FrameContext) {
	t.Helper()
	sc, err := scene.Build(scene.Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	// A second object so selection has somewhere to go.
	cube := *sc.Objects[0]
	sc.Objects = append(sc.Objects, &cube)

	ctx := render.NewFrameContext(render.Screen{Width: 80, Height: 60}, render.NewCamera(), scene.LightDir, sc.Objects)
	return sc, ctx
}

func press(keys ...Key) Snapshot {
	var ks Keys
	for _, k := range keys {
		ks = ks.With(k)
	}
	return Snapshot{Held: ks, Pressed: ks, DT: time.Second / 60}
}

func hold(dt time.Duration, keys ...Key) Snapshot {
	var ks Keys
	for _, k := range keys {
		ks = ks.With(k)
	}
	return Snapshot{Held: ks, DT: dt}
}

func TestControllerQuit(t *testing.T) {
	sc, ctx := newTestScene(t)
	c := NewController(60)

	if c.Update(Snapshot{}, sc, ctx) {
		t.Error("empty snapshot quit")
	}
	if c.Update(hold(time.Second, KeyEscape), sc, ctx) {
		t.Error("holding escape without a press quit")
	}
	if !c.Update(press(KeyEscape), sc, ctx) {
		t.Error("escape did not quit")
	}
}

func TestControllerToggles(t *testing.T) {
	sc, ctx := newTestScene(t)
	c := NewController(60)

	c.Update(press(KeyTab), sc, ctx)
	if sc.Selected != 1 {
		t.Errorf("Selected = %d after tab, want 1", sc.Selected)
	}
	c.Update(press(KeyTab), sc, ctx)
	if sc.Selected != 0 {
		t.Errorf("Selected = %d after second tab, want 0", sc.Selected)
	}

	c.Update(press(KeyX), sc, ctx)
	if ctx.Mode != render.ModeWireframe {
		t.Errorf("Mode = %v after X, want wireframe", ctx.Mode)
	}
	c.Update(press(KeyX), sc, ctx)
	if ctx.Mode != render.ModeFilled {
		t.Errorf("Mode = %v after second X, want filled", ctx.Mode)
	}

	c.Update(press(KeyH), sc, ctx)
	if c.ShowHUD {
		t.Error("H did not hide the HUD")
	}
}

func TestControllerCamera(t *testing.T) {
	tests := []struct {
		name    string
		snap    Snapshot
		wantPos math3d.Vec3
		wantYaw float32
	}{
		{"forward", hold(time.Second, KeyW), math3d.V3(0, 5, -12), 0},
		{"back", hold(time.Second/2, KeyS), math3d.V3(0, 5, -24), 0},
		{"strafe right", hold(time.Second, KeyD), math3d.V3(8, 5, -20), 0},
		{"opposite keys cancel", hold(time.Second, KeyW, KeyS), math3d.V3(0, 5, -20), 0},
		{"turn left wraps", hold(time.Second/2, KeyQ), math3d.V3(0, 5, -20), 315},
		{"turn right", hold(time.Second, KeyE), math3d.V3(0, 5, -20), 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, ctx := newTestScene(t)
			c := NewController(60)
			c.Update(tt.snap, sc, ctx)

			cam := ctx.Camera
			if d := cam.Position.Sub(tt.wantPos).Len(); d > 1e-4 {
				t.Errorf("position = %+v, want %+v", cam.Position, tt.wantPos)
			}
			if math32.Abs(cam.Yaw-tt.wantYaw) > 1e-4 {
				t.Errorf("yaw = %v, want %v", cam.Yaw, tt.wantYaw)
			}
			if ctx.View != cam.ViewMatrix() {
				t.Error("view matrix not recomputed")
			}
		})
	}
}

func TestControllerDragsSelected(t *testing.T) {
	sc, ctx := newTestScene(t)
	c := NewController(60)
	start := sc.Objects[0].Transform.Position

	c.Update(Snapshot{Buttons: ButtonMiddle, X: 30, Y: 30}, sc, ctx)
	c.Update(Snapshot{Buttons: ButtonMiddle, X: 33, Y: 30}, sc, ctx)

	want := start.Add(math3d.V3(1, 0, 0))
	if got := sc.Objects[0].Transform.Position; got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
	if sc.Objects[1].Transform.Position != start {
		t.Error("unselected object moved")
	}
}

func TestControllerSpin(t *testing.T) {
	sc, ctx := newTestScene(t)
	c := NewController(60)
	c.Seed(7)

	before := sc.Objects[0].Transform.Rotation
	c.Update(press(KeySpace), sc, ctx)
	if !c.Spin.Spinning() {
		t.Fatal("space did not start a spin")
	}
	if sc.Objects[0].Transform.Rotation == before {
		t.Error("spin did not rotate the selected object")
	}

	for range 600 {
		c.Update(Snapshot{}, sc, ctx)
	}
	if c.Spin.Spinning() {
		t.Errorf("spin did not settle: %+v", c.Spin)
	}

	c.Update(press(KeySpace), sc, ctx)
	c.Update(press(KeyR), sc, ctx)
	if c.Spin.Spinning() {
		t.Error("R did not stop the spin")
	}
}

func TestSpinnerDecays(t *testing.T) {
	s := NewSpinner(60)
	s.Impulse(math3d.V3(0, 10, 0))

	first := s.Step()
	if first.Y != 10 {
		t.Errorf("first step = %+v, want Y=10", first)
	}
	prev := first.Y
	for i := range 30 {
		step := s.Step()
		if step.Y > prev {
			t.Fatalf("step %d grew: %v > %v", i, step.Y, prev)
		}
		prev = step.Y
	}
	if prev >= 10 {
		t.Errorf("velocity did not decay: %v", prev)
	}
}
