package models

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/taigrr/flatshade/pkg/math3d"
)

// Lathe sweeps a profile around the Y axis. Each profile point is a
// (radius, height) pair, listed bottom to top. A zero radius collapses the
// ring to a single vertex, so a profile that starts and ends on the axis
// gives a closed solid. Faces wind outward.
func Lathe(name string, profile [][2]float32, segments int) (*Mesh, error) {
	if len(profile) < 2 {
		return nil, errors.Errorf("lathe %s: profile needs at least 2 points, got %d", name, len(profile))
	}
	if segments < 3 {
		return nil, errors.Errorf("lathe %s: need at least 3 segments, got %d", name, segments)
	}

	mesh := NewMesh(name)
	rings := make([][]int, len(profile))
	for i, p := range profile {
		r, y := p[0], p[1]
		if r == 0 {
			idx := len(mesh.Vertices)
			mesh.Vertices = append(mesh.Vertices, math3d.V3(0, y, 0))
			rings[i] = make([]int, segments)
			for j := range rings[i] {
				rings[i][j] = idx
			}
			continue
		}
		rings[i] = make([]int, segments)
		for j := range segments {
			theta := 2 * math32.Pi * float32(j) / float32(segments)
			rings[i][j] = len(mesh.Vertices)
			mesh.Vertices = append(mesh.Vertices, math3d.V3(r*math32.Cos(theta), y, r*math32.Sin(theta)))
		}
	}

	for i := range len(profile) - 1 {
		lo, hi := rings[i], rings[i+1]
		for j := range segments {
			k := (j + 1) % segments
			a, b, c, d := lo[j], lo[k], hi[k], hi[j]
			for _, f := range [][3]int{{a, d, c}, {a, c, b}} {
				if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
					continue
				}
				mesh.Faces = append(mesh.Faces, f)
			}
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}
