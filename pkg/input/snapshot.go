// Package input turns polled device state into scene and camera changes.
package input

import "time"

// Key is a keyboard key the controller understands. Backends translate their
// native key codes into these.
type Key uint8

const (
	KeyEscape Key = iota
	KeyTab
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyX
	KeyH
	KeyR
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	keyCount
)

var keyNames = [keyCount]string{
	"esc", "tab", "space", "w", "a", "s", "d", "q", "e", "x", "h", "r",
	"up", "down", "left", "right",
}

// String returns the key's name.
func (k Key) String() string {
	if k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// ParseKey looks a key up by name.
func ParseKey(name string) (Key, bool) {
	for i, n := range keyNames {
		if n == name {
			return Key(i), true
		}
	}
	return 0, false
}

// Keys is a set of keys.
type Keys uint32

// Has reports whether k is in the set.
func (ks Keys) Has(k Key) bool {
	return ks&(1<<k) != 0
}

// With returns the set with k added.
func (ks Keys) With(k Key) Keys {
	return ks | 1<<k
}

// Button identifies a mouse button.
type Button uint8

const (
	ButtonLeft Button = 1 << iota
	ButtonMiddle
	ButtonRight
)

// Snapshot is one poll of the input devices.
type Snapshot struct {
	Buttons Button  // buttons held down
	X, Y    float32 // cursor position in pixels
	Wheel   float32 // vertical scroll since the last poll

	Held    Keys // keys down this frame
	Pressed Keys // keys that went down since the last poll

	DT time.Duration // time since the last poll
}

// Down reports whether button b is held.
func (s Snapshot) Down(b Button) bool {
	return s.Buttons&b != 0
}
