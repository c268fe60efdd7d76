package render

import (
	"time"

	"github.com/taigrr/flatshade/pkg/math3d"
	"github.com/taigrr/flatshade/pkg/models"
)

// Mode selects how visible triangles are rasterized.
type Mode int

const (
	// ModeFilled draws solid flat-shaded triangles.
	ModeFilled Mode = iota
	// ModeWireframe draws triangle edges only.
	ModeWireframe
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeWireframe {
		return "wireframe"
	}
	return "filled"
}

// FrameContext is the render state shared by every stage of a frame.
// It is owned by a single goroutine.
type FrameContext struct {
	Screen      Screen
	Camera      *Camera
	View        math3d.Mat4
	Proj        math3d.Mat4
	Light       math3d.Vec3 // direction towards the light, any length
	Objects     []*models.Object
	Framebuffer *Framebuffer
	Background  Color
	Mode        Mode
	ShowGuides  bool // floor grid and axes
}

// NewFrameContext creates the frame state and computes both camera matrices.
func NewFrameContext(scr Screen, cam *Camera, light math3d.Vec3, objects []*models.Object) *FrameContext {
	ctx := &FrameContext{
		Screen:      scr,
		Camera:      cam,
		Light:       light,
		Objects:     objects,
		Framebuffer: NewFramebuffer(scr.Width, scr.Height),
		Background:  ColorBackground,
	}
	ctx.RecomputeView()
	ctx.RecomputeProjection()
	return ctx
}

// RecomputeView refreshes View after the camera position or yaw changed.
func (ctx *FrameContext) RecomputeView() {
	ctx.View = ctx.Camera.ViewMatrix()
}

// RecomputeProjection refreshes Proj after the screen or lens changed.
func (ctx *FrameContext) RecomputeProjection() {
	ctx.Proj = ctx.Camera.ProjectionMatrix(ctx.Screen)
}

// Resize changes the render target size.
func (ctx *FrameContext) Resize(scr Screen) {
	if scr == ctx.Screen {
		return
	}
	ctx.Screen = scr
	ctx.Framebuffer.Resize(scr.Width, scr.Height)
	ctx.RecomputeProjection()
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Visible   int           // triangles rasterized
	Culled    int           // triangles rejected as back-facing or degenerate
	Transform time.Duration // transform, cull and sort
	Raster    time.Duration // shading and scan conversion
}

// Renderer runs the per-frame pipeline. It keeps its triangle list between
// frames to avoid reallocating it.
type Renderer struct {
	visible []ProcessedTriangle
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Process transforms and culls every triangle of every object. The returned
// slice is reused by the next call.
func (r *Renderer) Process(ctx *FrameContext) []ProcessedTriangle {
	r.visible = r.visible[:0]
	for _, obj := range ctx.Objects {
		m := NewObjectMatrices(obj.Transform)
		for _, tri := range obj.Triangles {
			if pt, ok := ProcessTriangle(tri, m, ctx.View, ctx.Proj, ctx.Screen, obj.Albedo); ok {
				r.visible = append(r.visible, pt)
			}
		}
	}
	return r.visible
}

// RenderFrame clears the frame buffer and draws every object into it.
func (r *Renderer) RenderFrame(ctx *FrameContext) FrameStats {
	var stats FrameStats
	fb := ctx.Framebuffer

	start := time.Now()
	fb.Clear(ctx.Background)
	tris := r.Process(ctx)
	SortBackToFront(tris)
	stats.Transform = time.Since(start)

	total := 0
	for _, obj := range ctx.Objects {
		total += len(obj.Triangles)
	}
	stats.Visible = len(tris)
	stats.Culled = total - len(tris)

	start = time.Now()
	for _, t := range tris {
		c := Shade(ctx.Light, t.Normal, t.Albedo)
		p := t.Points
		switch ctx.Mode {
		case ModeWireframe:
			fb.DrawTriangleOutline(p[0], p[1], p[2], c)
		default:
			fb.FillTriangle(p[0], p[1], p[2], c)
		}
	}
	if ctx.ShowGuides {
		w := NewWireframe(ctx)
		w.DrawGrid(20, 1, ColorGray)
		w.DrawAxes(2)
	}
	stats.Raster = time.Since(start)

	return stats
}
