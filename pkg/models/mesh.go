// Package models provides mesh loading and the scene object model for flatshade.
package models

import (
	"image/color"

	"github.com/taigrr/flatshade/pkg/math3d"
)

// Mesh is an indexed triangle mesh as produced by a loader.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    [][3]int // zero-based indices into Vertices
	Material *Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Material carries the base colour a loader found for the mesh.
type Material struct {
	Name      string
	BaseColor color.RGBA
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Normalize recenters the mesh on the origin and scales it uniformly so its
// largest dimension equals size. Empty or flat-to-a-point meshes are left
// untouched.
func (m *Mesh) Normalize(size float32) {
	m.CalculateBounds()
	dims := m.Size()
	largest := max(dims.X, dims.Y, dims.Z)
	if largest == 0 {
		return
	}

	center := m.Center()
	scale := size / largest
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Sub(center).Scale(scale)
	}
	m.CalculateBounds()
}

// Triangles expands the indexed faces into standalone triangles.
func (m *Mesh) Triangles() []Triangle {
	tris := make([]Triangle, len(m.Faces))
	for i, f := range m.Faces {
		tris[i] = Triangle{
			V1: m.Vertices[f[0]],
			V2: m.Vertices[f[1]],
			V3: m.Vertices[f[2]],
		}
	}
	return tris
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([][3]int, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	if m.Material != nil {
		mat := *m.Material
		clone.Material = &mat
	}
	return clone
}
