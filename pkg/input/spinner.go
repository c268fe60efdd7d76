package input

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/flatshade/pkg/math3d"
)

// Spring parameters for spin decay: moderate speed, critically damped.
const (
	spinFrequency = 4.0
	spinDamping   = 1.0
)

// SpinAxis holds angular velocity for one axis, in degrees per frame.
type SpinAxis struct {
	Velocity float64

	spring harmonica.Spring
	accel  float64 // spring velocity of Velocity itself
}

// NewSpinAxis creates an axis whose velocity eases back to zero.
func NewSpinAxis(fps int) SpinAxis {
	return SpinAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), spinFrequency, spinDamping)}
}

// Step returns this frame's rotation and decays the velocity.
func (a *SpinAxis) Step() float64 {
	step := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return step
}

// Spinner gives an object momentum around each axis.
type Spinner struct {
	X, Y, Z SpinAxis
	fps     int
}

// NewSpinner creates a spinner stepped fps times per second.
func NewSpinner(fps int) *Spinner {
	s := &Spinner{fps: fps}
	s.Reset()
	return s
}

// Impulse adds angular velocity, in degrees per frame.
func (s *Spinner) Impulse(v math3d.Vec3) {
	s.X.Velocity += float64(v.X)
	s.Y.Velocity += float64(v.Y)
	s.Z.Velocity += float64(v.Z)
}

// Step advances one frame and returns the rotation to add, in degrees.
func (s *Spinner) Step() math3d.Vec3 {
	return math3d.V3(float32(s.X.Step()), float32(s.Y.Step()), float32(s.Z.Step()))
}

// Reset stops all rotation.
func (s *Spinner) Reset() {
	s.X = NewSpinAxis(s.fps)
	s.Y = NewSpinAxis(s.fps)
	s.Z = NewSpinAxis(s.fps)
}

// Spinning reports whether any axis still moves noticeably.
func (s *Spinner) Spinning() bool {
	const still = 1e-3
	return abs64(s.X.Velocity) > still || abs64(s.Y.Velocity) > still || abs64(s.Z.Velocity) > still
}

func abs64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
