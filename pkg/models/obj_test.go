package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/flatshade/pkg/math3d"
)

const cubeOBJ = "# unit cube\r\n" +
	"v 0 0 0\r\nv 0 1 0\r\nv 1 1 0\r\nv 1 0 0\r\n" +
	"v 1 1 1\r\nv 1 0 1\r\nv 0 1 1\r\nv 0 0 1\r\n" +
	"f 1 2 3\r\nf 1 3 4\r\nf 4 3 5\r\nf 4 5 6\r\n" +
	"f 6 5 7\r\nf 6 7 8\r\nf 8 7 2\r\nf 8 2 1\r\n" +
	"f 2 7 5\r\nf 2 5 3\r\nf 6 8 1\r\nf 6 1 4\r\n"

func TestParseOBJ(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantVerts int
		wantFaces [][3]int
	}{
		{
			name:      "cube crlf",
			src:       cubeOBJ,
			wantVerts: 8,
		},
		{
			name:      "triangle",
			src:       "v 0 0 0\nv 0 1 0\nv 1 0 0\nf 1 2 3\n",
			wantVerts: 3,
			wantFaces: [][3]int{{1, 2, 3}},
		},
		{
			name:      "slash indices",
			src:       "v 0 0 0\nv 0 1 0\nv 1 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 3//1\n",
			wantVerts: 3,
			wantFaces: [][3]int{{1, 2, 3}},
		},
		{
			name:      "quad fan",
			src:       "v 0 0 0\nv 0 1 0\nv 1 1 0\nv 1 0 0\nf 1 2 3 4\n",
			wantVerts: 4,
			wantFaces: [][3]int{{1, 2, 3}, {1, 3, 4}},
		},
		{
			name:      "relative indices",
			src:       "v 0 0 0\nv 0 1 0\nv 1 0 0\nf -3 -2 -1\n",
			wantVerts: 3,
			wantFaces: [][3]int{{1, 2, 3}},
		},
		{
			name:      "malformed lines skipped",
			src:       "v 1 2\nv a b c\nv 0 0 0\nv 0 1 0\nv 1 0 0\nf 1 2\nf 1 x 3\no thing\ns off\nf 1 2 3\n",
			wantVerts: 3,
			wantFaces: [][3]int{{1, 2, 3}},
		},
		{
			name:      "homogeneous w ignored",
			src:       "v 1 2 3 1\n",
			wantVerts: 1,
		},
		{
			name: "empty",
			src:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts, faces, err := ParseOBJ(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("ParseOBJ: %v", err)
			}
			if len(verts) != tt.wantVerts {
				t.Errorf("got %d vertices, want %d", len(verts), tt.wantVerts)
			}
			if tt.wantFaces != nil {
				if len(faces) != len(tt.wantFaces) {
					t.Fatalf("got faces %v, want %v", faces, tt.wantFaces)
				}
				for i := range faces {
					if faces[i] != tt.wantFaces[i] {
						t.Errorf("face %d = %v, want %v", i, faces[i], tt.wantFaces[i])
					}
				}
			}
		})
	}
}

func TestParseOBJValues(t *testing.T) {
	verts, faces, err := ParseOBJ(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatal(err)
	}
	if len(faces) != 12 {
		t.Fatalf("got %d faces, want 12", len(faces))
	}
	if verts[4] != math3d.V3(1, 1, 1) {
		t.Errorf("v5 = %+v", verts[4])
	}
	if faces[11] != [3]int{6, 1, 4} {
		t.Errorf("last face = %v", faces[11])
	}
}

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "cube.obj")
	if err := os.WriteFile(good, []byte(cubeOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	mesh, err := LoadOBJ(good)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.Name != "cube" || mesh.TriangleCount() != 12 || mesh.VertexCount() != 8 {
		t.Errorf("mesh = %s, %d tris, %d verts", mesh.Name, mesh.TriangleCount(), mesh.VertexCount())
	}
	if mesh.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("faces should be zero-based, got %v", mesh.Faces[0])
	}
	if mesh.Size() != math3d.V3(1, 1, 1) {
		t.Errorf("Size = %+v", mesh.Size())
	}

	bad := filepath.Join(dir, "bad.obj")
	if err := os.WriteFile(bad, []byte("v 0 0 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOBJ(bad); !errors.Is(err, ErrFaceIndex) {
		t.Errorf("LoadOBJ(bad) err = %v, want ErrFaceIndex", err)
	}

	if _, err := LoadOBJ(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}

func BenchmarkParseOBJ(b *testing.B) {
	src := strings.Repeat(cubeOBJ, 64)

	for b.Loop() {
		_, _, _ = ParseOBJ(strings.NewReader(src))
	}
}
