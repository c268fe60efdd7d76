package render

import (
	"math"
	"slices"
	"sort"
)

// depthScale spreads summed depths over the integer key range.
const depthScale = 1e6

// DepthKey returns the painter's sort key: the sum of the three screen depths
// scaled and truncated to an integer.
func DepthKey(t ProcessedTriangle) int64 {
	sum := float64(t.Points[0].Z+t.Points[1].Z+t.Points[2].Z) * depthScale
	switch {
	case math.IsNaN(sum):
		return 0
	case sum >= math.MaxInt64:
		return math.MaxInt64
	case sum <= math.MinInt64:
		return math.MinInt64
	}
	return int64(sum)
}

// SortBackToFront orders triangles farthest first. Triangles with equal keys
// keep no particular order.
func SortBackToFront(tris []ProcessedTriangle) {
	sort.Slice(tris, func(i, j int) bool {
		return DepthKey(tris[i]) < DepthKey(tris[j])
	})
	slices.Reverse(tris)
}
