package render

import (
	"testing"
)

func triAtDepth(z1, z2, z3 float32) ProcessedTriangle {
	return ProcessedTriangle{Points: [3]Point{{Z: z1}, {Z: z2}, {Z: z3}}}
}

func TestDepthKey(t *testing.T) {
	if k := DepthKey(triAtDepth(0.25, 0.25, 0.5)); k != 1000000 {
		t.Errorf("DepthKey = %d, want 1000000", k)
	}
	if k := DepthKey(triAtDepth(-0.5, 0, 0)); k != -500000 {
		t.Errorf("negative DepthKey = %d", k)
	}
}

func TestSortBackToFront(t *testing.T) {
	tris := []ProcessedTriangle{
		triAtDepth(0.1, 0.1, 0.1),
		triAtDepth(0.9, 0.9, 0.9),
		triAtDepth(0.5, 0.5, 0.5),
		triAtDepth(0.95, 0.2, 0.3),
	}
	SortBackToFront(tris)

	want := []float32{0.9, 0.5, 0.95, 0.1}
	for i, w := range want {
		if tris[i].Points[0].Z != w {
			t.Errorf("position %d has first depth %v, want %v", i, tris[i].Points[0].Z, w)
		}
	}
	for i := 1; i < len(tris); i++ {
		if DepthKey(tris[i-1]) < DepthKey(tris[i]) {
			t.Errorf("keys not descending at %d", i)
		}
	}

	SortBackToFront(nil)
}
