package input

import (
	"math/rand/v2"
	"time"

	"github.com/taigrr/flatshade/pkg/math3d"
	"github.com/taigrr/flatshade/pkg/render"
	"github.com/taigrr/flatshade/pkg/scene"
)

// Action is something a key can trigger.
type Action int

const (
	ActionQuit Action = iota
	ActionSelectNext
	ActionForward
	ActionBack
	ActionStrafeLeft
	ActionStrafeRight
	ActionTurnLeft
	ActionTurnRight
	ActionWireframe
	ActionHUD
	ActionSpin
	ActionStop
)

// KeyBindings maps actions to keys. Movement actions fire while the key is
// held; the rest fire once per press.
type KeyBindings map[Action]Key

// DefaultKeyBindings returns the standard controls.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		ActionQuit:        KeyEscape,
		ActionSelectNext:  KeyTab,
		ActionForward:     KeyW,
		ActionBack:        KeyS,
		ActionStrafeLeft:  KeyA,
		ActionStrafeRight: KeyD,
		ActionTurnLeft:    KeyQ,
		ActionTurnRight:   KeyE,
		ActionWireframe:   KeyX,
		ActionHUD:         KeyH,
		ActionSpin:        KeySpace,
		ActionStop:        KeyR,
	}
}

func (kb KeyBindings) held(snap Snapshot, a Action) bool {
	k, ok := kb[a]
	return ok && snap.Held.Has(k)
}

func (kb KeyBindings) pressed(snap Snapshot, a Action) bool {
	k, ok := kb[a]
	return ok && snap.Pressed.Has(k)
}

// Camera speeds.
const (
	MoveSpeed = 8  // world units per second
	TurnSpeed = 90 // degrees per second
)

// spinImpulse bounds the random per-axis impulse, in degrees per frame.
const spinImpulse = 6

// Controller routes input to the scene, the camera and the view toggles.
// It is driven from the frame loop and is not safe for concurrent use.
type Controller struct {
	Mouse   MouseController
	Keys    KeyBindings
	Spin    *Spinner
	ShowHUD bool

	fps int
	rng *rand.Rand
}

// NewController creates a controller with the default bindings.
func NewController(fps int) *Controller {
	return &Controller{
		Keys:    DefaultKeyBindings(),
		Spin:    NewSpinner(fps),
		ShowHUD: true,
		fps:     fps,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// Seed makes spin impulses reproducible.
func (c *Controller) Seed(seed uint64) {
	c.rng = rand.New(rand.NewPCG(seed, 0))
}

// Update applies one snapshot. It returns true when the user asked to quit.
func (c *Controller) Update(snap Snapshot, sc *scene.Scene, ctx *render.FrameContext) bool {
	if c.Keys.pressed(snap, ActionQuit) {
		return true
	}

	if c.Keys.pressed(snap, ActionSelectNext) {
		sc.SelectNext()
		c.Spin.Reset()
		c.Mouse = MouseController{}
	}
	if c.Keys.pressed(snap, ActionWireframe) {
		if ctx.Mode == render.ModeWireframe {
			ctx.Mode = render.ModeFilled
		} else {
			ctx.Mode = render.ModeWireframe
		}
	}
	if c.Keys.pressed(snap, ActionHUD) {
		c.ShowHUD = !c.ShowHUD
	}
	if c.Keys.pressed(snap, ActionStop) {
		c.Spin.Reset()
	}
	if c.Keys.pressed(snap, ActionSpin) {
		c.Spin.Impulse(math3d.V3(c.impulse(), c.impulse(), c.impulse()))
	}

	if c.moveCamera(snap, ctx.Camera) {
		ctx.RecomputeView()
	}

	if obj := sc.SelectedObject(); obj != nil {
		c.Mouse.Update(snap, &obj.Transform)
		obj.Transform.Rotation = obj.Transform.Rotation.Add(c.Spin.Step())
	}
	return false
}

func (c *Controller) impulse() float32 {
	return (c.rng.Float32()*2 - 1) * spinImpulse
}

// moveCamera applies held movement keys and reports whether the camera moved.
func (c *Controller) moveCamera(snap Snapshot, cam *render.Camera) bool {
	dt := float32(snap.DT.Seconds())
	if dt <= 0 {
		dt = 1 / float32(c.fps)
	}
	step := MoveSpeed * dt
	turn := TurnSpeed * dt

	moved := false
	axis := func(neg, pos Action) float32 {
		var v float32
		if c.Keys.held(snap, neg) {
			v--
		}
		if c.Keys.held(snap, pos) {
			v++
		}
		if v != 0 {
			moved = true
		}
		return v
	}

	if f := axis(ActionBack, ActionForward); f != 0 {
		cam.MoveForward(f * step)
	}
	if r := axis(ActionStrafeLeft, ActionStrafeRight); r != 0 {
		cam.MoveRight(r * step)
	}
	if y := axis(ActionTurnLeft, ActionTurnRight); y != 0 {
		cam.Turn(y * turn)
	}
	return moved
}
