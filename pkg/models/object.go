package models

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/taigrr/flatshade/pkg/math3d"
)

// ErrFaceIndex is returned when a face references a vertex that does not exist.
var ErrFaceIndex = errors.New("face index out of range")

// Triangle is three model-space vertices. Winding is meaningful: a triangle
// faces the viewer when its vertices appear clockwise on screen.
type Triangle struct {
	V1, V2, V3 math3d.Vec3
}

// Transform places an object in the world. Rotation is in degrees per axis
// and is applied Z first, then Y, then X, before translating by Position.
type Transform struct {
	Position math3d.Vec3
	Rotation math3d.Vec3
}

// Matrix returns the object-to-world matrix for the transform.
func (t Transform) Matrix() math3d.Mat4 {
	return math3d.ModelMatrix(t.Position, t.Rotation)
}

// Object is a renderable mesh instance with its own transform and colour.
type Object struct {
	Name      string
	Triangles []Triangle
	Transform Transform
	Albedo    color.RGBA
}

// NewObject assembles an object from already built triangles.
func NewObject(name string, tris []Triangle, t Transform, albedo color.RGBA) *Object {
	return &Object{
		Name:      name,
		Triangles: tris,
		Transform: t,
		Albedo:    albedo,
	}
}

// NewObjectFromMesh assembles an object from a loaded mesh.
func NewObjectFromMesh(m *Mesh, t Transform, albedo color.RGBA) *Object {
	return NewObject(m.Name, m.Triangles(), t, albedo)
}

// BuildTriangles resolves one-based face indices against a vertex list.
func BuildTriangles(vertices []math3d.Vec3, faces [][3]int) ([]Triangle, error) {
	tris := make([]Triangle, 0, len(faces))
	for i, f := range faces {
		idx, err := resolveFace(f, 1, len(vertices))
		if err != nil {
			return nil, errors.Wrapf(err, "face %d", i+1)
		}
		tris = append(tris, Triangle{
			V1: vertices[idx[0]],
			V2: vertices[idx[1]],
			V3: vertices[idx[2]],
		})
	}
	return tris, nil
}

// resolveFace converts indices starting at base into zero-based ones,
// checking each against n vertices.
func resolveFace(f [3]int, base, n int) ([3]int, error) {
	var out [3]int
	for j, v := range f {
		i := v - base
		if i < 0 || i >= n {
			return out, errors.Wrapf(ErrFaceIndex, "index %d with %d vertices", v, n)
		}
		out[j] = i
	}
	return out, nil
}
