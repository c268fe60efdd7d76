package models

import (
	"errors"
	"image/color"
	"testing"

	"github.com/taigrr/flatshade/pkg/math3d"
)

func TestBuildTriangles(t *testing.T) {
	verts := []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(0, 1, 0),
		math3d.V3(1, 1, 0),
		math3d.V3(1, 0, 0),
	}

	tests := []struct {
		name    string
		faces   [][3]int
		want    int
		wantErr bool
	}{
		{"empty", nil, 0, false},
		{"quad", [][3]int{{1, 2, 3}, {1, 3, 4}}, 2, false},
		{"zero index", [][3]int{{0, 1, 2}}, 0, true},
		{"past end", [][3]int{{1, 2, 5}}, 0, true},
		{"negative", [][3]int{{1, -2, 3}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris, err := BuildTriangles(verts, tt.faces)
			if tt.wantErr {
				if !errors.Is(err, ErrFaceIndex) {
					t.Fatalf("err = %v, want ErrFaceIndex", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tris) != tt.want {
				t.Fatalf("got %d triangles, want %d", len(tris), tt.want)
			}
		})
	}

	tris, _ := BuildTriangles(verts, [][3]int{{1, 2, 3}})
	want := Triangle{verts[0], verts[1], verts[2]}
	if tris[0] != want {
		t.Errorf("triangle = %+v, want %+v", tris[0], want)
	}
}

func TestNewObject(t *testing.T) {
	tris := []Triangle{{math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math3d.V3(1, 0, 0)}}
	tr := Transform{Position: math3d.V3(3, 3, 3), Rotation: math3d.V3(45, 45, 45)}
	albedo := color.RGBA{42, 170, 255, 255}

	obj := NewObject("cube", tris, tr, albedo)
	if obj.Name != "cube" || len(obj.Triangles) != 1 || obj.Albedo != albedo {
		t.Errorf("NewObject = %+v", obj)
	}
	if obj.Transform.Matrix() != math3d.ModelMatrix(tr.Position, tr.Rotation) {
		t.Error("Transform.Matrix disagrees with ModelMatrix")
	}
}

func TestNewObjectFromMesh(t *testing.T) {
	obj := NewObjectFromMesh(quadMesh(), Transform{}, color.RGBA{1, 2, 3, 255})
	if obj.Name != "quad" || len(obj.Triangles) != 2 {
		t.Errorf("NewObjectFromMesh = %+v", obj)
	}
}
