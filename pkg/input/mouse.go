package input

import "github.com/taigrr/flatshade/pkg/models"

// MouseState is the drag mode of the mouse controller.
type MouseState int

const (
	Idle MouseState = iota
	Panning
	Rotating
)

// String returns the state name.
func (s MouseState) String() string {
	switch s {
	case Panning:
		return "panning"
	case Rotating:
		return "rotating"
	default:
		return "idle"
	}
}

// PanDivisor scales cursor movement into world units while panning.
const PanDivisor = 3

// WheelDivisor scales wheel movement into world units.
const WheelDivisor = 20

// MouseController drags objects around. Holding the middle button pans the
// object over the floor, holding the right button rotates it about Y and Z
// and the wheel lifts it. Middle wins when both are held.
//
// The first frame of a drag only records the cursor, so a press never jumps
// the object.
type MouseController struct {
	State MouseState

	lastX, lastY float32
	hasLast      bool
}

// Update applies one snapshot to the transform.
func (m *MouseController) Update(snap Snapshot, t *models.Transform) {
	switch {
	case snap.Down(ButtonMiddle):
		m.State = Panning
	case snap.Down(ButtonRight):
		m.State = Rotating
	default:
		m.State = Idle
	}

	if m.State == Idle {
		m.hasLast = false
	} else {
		if m.hasLast {
			dx := m.lastX - snap.X
			dy := m.lastY - snap.Y
			if m.State == Panning {
				t.Position.X -= dx / PanDivisor
				t.Position.Z += dy / PanDivisor
			} else {
				t.Rotation.Y -= dx
				t.Rotation.Z += dy
			}
		}
		m.lastX, m.lastY = snap.X, snap.Y
		m.hasLast = true
	}

	if snap.Wheel != 0 {
		t.Position.Y += snap.Wheel / WheelDivisor
	}
}

// Dragging reports whether a drag has an anchor cursor position.
func (m *MouseController) Dragging() bool {
	return m.hasLast
}
