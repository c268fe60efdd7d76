package render

import (
	"github.com/taigrr/flatshade/pkg/math3d"
)

// Camera is a yaw-only perspective camera. Angles are in degrees.
//
// Matrices are not cached: whoever mutates the camera asks the FrameContext
// to recompute them.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Rotation around the world Y axis
	Yaw float32

	// Projection parameters
	FOV  float32 // field of view
	Near float32 // near plane distance
	Far  float32 // far plane distance
}

// NewCamera creates a camera looking down +Z from (0, 5, -20).
func NewCamera() *Camera {
	return &Camera{
		Position: math3d.V3(0, 5, -20),
		FOV:      60,
		Near:     0.1,
		Far:      1000,
	}
}

// ViewMatrix returns the world-to-view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAtYaw(c.Position, c.Yaw)
}

// ProjectionMatrix returns the perspective matrix for the given screen.
func (c *Camera) ProjectionMatrix(scr Screen) math3d.Mat4 {
	return math3d.Perspective(scr.Aspect(), c.FOV, c.Near, c.Far)
}

// Forward returns the horizontal direction the camera faces.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.RotateY(c.Yaw).MulVec3(math3d.Forward())
}

// Right returns the horizontal direction to the camera's right.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.RotateY(c.Yaw).MulVec3(math3d.V3(1, 0, 0))
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float32) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float32) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera up (or down if negative).
func (c *Camera) MoveUp(distance float32) {
	c.Position = c.Position.Add(math3d.WorldUp().Scale(distance))
}

// Turn adds deg to the yaw, keeping it within [0, 360).
func (c *Camera) Turn(deg float32) {
	c.Yaw += deg
	for c.Yaw >= 360 {
		c.Yaw -= 360
	}
	for c.Yaw < 0 {
		c.Yaw += 360
	}
}

// WorldToScreen projects a world point. It reports false for points at or
// behind the near plane.
func (c *Camera) WorldToScreen(p math3d.Vec3, view, proj math3d.Mat4, scr Screen) (Point, bool) {
	v := view.MulVec3(p)
	if v.Z <= c.Near {
		return Point{}, false
	}
	return scr.Viewport(proj.MulVec3(v)), true
}
