package render

// FillTriangle scan-converts a solid triangle. The triangle is split at the
// middle vertex's row into a flat-bottom half above and a flat-top half
// below; the split row belongs to the upper half.
func (fb *Framebuffer) FillTriangle(p1, p2, p3 Point, c Color) {
	top, mid, bottom := sortByYDesc(p1, p2, p3)
	if top.Y == bottom.Y {
		return
	}

	x4 := SplitX(top, mid, bottom)
	fb.fillFlatBottom(top, mid, x4, c)
	fb.fillFlatTop(bottom, mid, x4, c)
}

// SplitX returns the x where the long edge top→bottom crosses mid's row.
// A vertical long edge returns top.X exactly. top and bottom must be on
// different rows.
func SplitX(top, mid, bottom Point) float32 {
	if top.X == bottom.X {
		return float32(top.X)
	}
	slope := float32(top.Y-bottom.Y) / float32(top.X-bottom.X)
	intercept := float32(top.Y) - slope*float32(top.X)
	return (float32(mid.Y) - intercept) / slope
}

func sortByYDesc(a, b, c Point) (Point, Point, Point) {
	if a.Y < b.Y {
		a, b = b, a
	}
	if b.Y < c.Y {
		b, c = c, b
	}
	if a.Y < b.Y {
		a, b = b, a
	}
	return a, b, c
}

// fillFlatBottom draws rows mid.Y through top.Y. The base runs from mid to
// the split point at x4.
func (fb *Framebuffer) fillFlatBottom(top, mid Point, x4 float32, c Color) {
	height := top.Y - mid.Y
	if height == 0 {
		fb.DrawHorizontalLine(mid.X, toPixel(x4), mid.Y, c)
		return
	}

	first, last := max(mid.Y, 0), min(top.Y, fb.Height-1)
	if first > last {
		return
	}

	inv1 := float32(top.X-mid.X) / float32(height)
	inv2 := (float32(top.X) - x4) / float32(height)
	xa := float32(mid.X) + inv1*float32(first-mid.Y)
	xb := x4 + inv2*float32(first-mid.Y)
	for y := first; y <= last; y++ {
		fb.DrawHorizontalLine(toPixel(xa), toPixel(xb), y, c)
		xa += inv1
		xb += inv2
	}
}

// fillFlatTop draws rows bottom.Y up to, but not including, mid.Y.
func (fb *Framebuffer) fillFlatTop(bottom, mid Point, x4 float32, c Color) {
	height := mid.Y - bottom.Y
	if height == 0 {
		return
	}

	first, last := max(bottom.Y, 0), min(mid.Y-1, fb.Height-1)
	if first > last {
		return
	}

	inv1 := float32(mid.X-bottom.X) / float32(height)
	inv2 := (x4 - float32(bottom.X)) / float32(height)
	xa := float32(bottom.X) + inv1*float32(first-bottom.Y)
	xb := float32(bottom.X) + inv2*float32(first-bottom.Y)
	for y := first; y <= last; y++ {
		fb.DrawHorizontalLine(toPixel(xa), toPixel(xb), y, c)
		xa += inv1
		xb += inv2
	}
}

// DrawTriangleOutline draws the three edges of a triangle.
func (fb *Framebuffer) DrawTriangleOutline(p1, p2, p3 Point, c Color) {
	fb.DrawLine(p1.X, p1.Y, p2.X, p2.Y, c)
	fb.DrawLine(p2.X, p2.Y, p3.X, p3.Y, c)
	fb.DrawLine(p3.X, p3.Y, p1.X, p1.Y, c)
}
