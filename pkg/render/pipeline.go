package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/flatshade/pkg/math3d"
	"github.com/taigrr/flatshade/pkg/models"
)

// maxCoord bounds screen coordinates so vertices projected from close to the
// camera plane still convert to int safely.
const maxCoord = 1 << 20

// Screen is the size of the render target in pixels.
type Screen struct {
	Width, Height int
}

// Aspect returns height/width.
func (s Screen) Aspect() float32 {
	return float32(s.Height) / float32(s.Width)
}

// Point is a screen-space vertex: integer pixel position plus depth in [0, 1]
// for points between the near and far planes.
type Point struct {
	X, Y int
	Z    float32
}

// ProcessedTriangle is a visible triangle in screen space, ready to sort and
// rasterize.
type ProcessedTriangle struct {
	Points [3]Point
	Normal math3d.Vec3 // world-space unit normal
	Albedo Color
}

// ObjectMatrices holds an object's per-axis rotations and translation.
type ObjectMatrices struct {
	RotZ, RotY, RotX, Translate math3d.Mat4
}

// NewObjectMatrices builds the matrices for a transform.
func NewObjectMatrices(t models.Transform) ObjectMatrices {
	return ObjectMatrices{
		RotZ:      math3d.RotateZ(t.Rotation.Z),
		RotY:      math3d.RotateY(t.Rotation.Y),
		RotX:      math3d.RotateX(t.Rotation.X),
		Translate: math3d.Translate(t.Position.X, t.Position.Y, t.Position.Z),
	}
}

// Apply moves a model-space point into world space: Z, Y and X rotation,
// then translation.
func (m ObjectMatrices) Apply(v math3d.Vec3) math3d.Vec3 {
	v = m.RotZ.MulVec3(v)
	v = m.RotY.MulVec3(v)
	v = m.RotX.MulVec3(v)
	return m.Translate.MulVec3(v)
}

// ProcessTriangle runs one triangle through the geometry stage. It returns
// false when the triangle faces away from the camera (world normal Z > 0) or
// has no area.
func ProcessTriangle(tri models.Triangle, m ObjectMatrices, view, proj math3d.Mat4, scr Screen, albedo Color) (ProcessedTriangle, bool) {
	w1 := m.Apply(tri.V1)
	w2 := m.Apply(tri.V2)
	w3 := m.Apply(tri.V3)

	normal := math3d.TriangleNormal(w1, w2, w3)
	if !normal.IsFinite() || normal.Z > 0 {
		return ProcessedTriangle{}, false
	}

	return ProcessedTriangle{
		Points: [3]Point{
			scr.project(w1, view, proj),
			scr.project(w2, view, proj),
			scr.project(w3, view, proj),
		},
		Normal: normal,
		Albedo: albedo,
	}, true
}

// project takes a world point through view and projection to a pixel.
func (s Screen) project(v math3d.Vec3, view, proj math3d.Mat4) Point {
	return s.Viewport(proj.MulVec3(view.MulVec3(v)))
}

// Viewport maps normalized device coordinates to pixels: x and y from
// [-1, 1] onto the screen, z from [-1, 1] onto [0, 1].
func (s Screen) Viewport(ndc math3d.Vec3) Point {
	return Point{
		X: toPixel((ndc.X + 1) * 0.5 * float32(s.Width)),
		Y: toPixel((ndc.Y + 1) * 0.5 * float32(s.Height)),
		Z: (ndc.Z + 1) * 0.5,
	}
}

func toPixel(f float32) int {
	switch {
	case math32.IsNaN(f):
		return 0
	case f > maxCoord:
		return maxCoord
	case f < -maxCoord:
		return -maxCoord
	}
	return int(math32.Round(f))
}
