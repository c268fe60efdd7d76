package render

import (
	"github.com/taigrr/flatshade/pkg/math3d"
)

// Wireframe draws world-space guide lines (axes, floor grid) over a frame.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
	view   math3d.Mat4
	proj   math3d.Mat4
	screen Screen
}

// NewWireframe creates a wireframe renderer for the current frame's
// matrices.
func NewWireframe(ctx *FrameContext) *Wireframe {
	return &Wireframe{
		camera: ctx.Camera,
		fb:     ctx.Framebuffer,
		view:   ctx.View,
		proj:   ctx.Proj,
		screen: ctx.Screen,
	}
}

// DrawLine3D draws a line in 3D space. Lines with an endpoint behind the
// camera are skipped.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	a, ok1 := w.camera.WorldToScreen(p1, w.view, w.proj, w.screen)
	b, ok2 := w.camera.WorldToScreen(p2, w.view, w.proj, w.screen)
	if !ok1 || !ok2 {
		return
	}
	w.fb.DrawLine(a.X, a.Y, b.X, b.Y, color)
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float32) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawGrid draws a grid on the XZ plane at y=0.
func (w *Wireframe) DrawGrid(size, step float32, color Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		w.DrawLine3D(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), color)
	}
	for z := -half; z <= half; z += step {
		w.DrawLine3D(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), color)
	}
}
