package models

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/taigrr/flatshade/pkg/math3d"
)

// ParseOBJ reads Wavefront OBJ geometry. It returns the vertex positions and
// the faces as one-based indices. Lines it does not understand, including
// malformed vertex and face lines, are skipped. Polygons with more than three
// corners are split into a triangle fan.
func ParseOBJ(r io.Reader) ([]math3d.Vec3, [][3]int, error) {
	var (
		vertices []math3d.Vec3
		faces    [][3]int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if v, ok := parseVertex(fields[1:]); ok {
				vertices = append(vertices, v)
			}
		case "f":
			poly, ok := parseFace(fields[1:], len(vertices))
			if !ok {
				continue
			}
			for i := 1; i+1 < len(poly); i++ {
				faces = append(faces, [3]int{poly[0], poly[i], poly[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "read obj")
	}

	return vertices, faces, nil
}

func parseVertex(fields []string) (math3d.Vec3, bool) {
	// An optional fourth (w) component is ignored.
	if len(fields) != 3 && len(fields) != 4 {
		return math3d.Vec3{}, false
	}
	var xyz [3]float32
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math3d.Vec3{}, false
		}
		xyz[i] = float32(f)
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), true
}

// parseFace returns the polygon's one-based position indices. Negative
// indices count back from the most recent vertex.
func parseFace(fields []string, seen int) ([]int, bool) {
	if len(fields) < 3 {
		return nil, false
	}
	poly := make([]int, len(fields))
	for i, f := range fields {
		pos, _, _ := strings.Cut(f, "/")
		n, err := strconv.Atoi(pos)
		if err != nil || n == 0 {
			return nil, false
		}
		if n < 0 {
			n = seen + 1 + n
		}
		poly[i] = n
	}
	return poly, true
}

// LoadOBJ reads an OBJ file into a mesh. Face indices are validated against
// the vertex list.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open obj")
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh, err := ReadOBJ(name, f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return mesh, nil
}

// ReadOBJ parses OBJ data from r into a mesh called name.
func ReadOBJ(name string, r io.Reader) (*Mesh, error) {
	vertices, faces, err := ParseOBJ(r)
	if err != nil {
		return nil, err
	}
	return meshFromIndexed(name, vertices, faces, 1)
}

// meshFromIndexed builds a mesh from faces whose indices start at base.
func meshFromIndexed(name string, vertices []math3d.Vec3, faces [][3]int, base int) (*Mesh, error) {
	mesh := NewMesh(name)
	mesh.Vertices = vertices
	mesh.Faces = make([][3]int, len(faces))
	for i, f := range faces {
		idx, err := resolveFace(f, base, len(vertices))
		if err != nil {
			return nil, errors.Wrapf(err, "face %d", i+1)
		}
		mesh.Faces[i] = idx
	}
	mesh.CalculateBounds()
	return mesh, nil
}
