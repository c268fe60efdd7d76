package math3d

import (
	"math"

	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 matrix indexed [row][col].
//
// Points are row vectors multiplied on the left, so a transform matrix looks
// like:
//
//	| Xx Xy Xz 0 |   X,Y,Z = basis vectors (rotation)
//	| Yx Yy Yz 0 |   T = translation
//	| Zx Zy Zz 0 |
//	| Tx Ty Tz 1 |
//
// Composition reads left to right: v * A.Mul(B) applies A first, then B.
type Mat4 [4][4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{x, y, z, 1},
	}
}

// RotateX creates a rotation matrix around the X axis. The angle is in degrees.
func RotateX(deg float32) Mat4 {
	s, c := math32.Sincos(Radians(deg))
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation matrix around the Y axis. The angle is in degrees.
func RotateY(deg float32) Mat4 {
	s, c := math32.Sincos(Radians(deg))
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation matrix around the Z axis. The angle is in degrees.
func RotateZ(deg float32) Mat4 {
	s, c := math32.Sincos(Radians(deg))
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// ModelMatrix composes the object-to-world transform: rotate about Z, then Y,
// then X, then translate.
func ModelMatrix(position, rotation Vec3) Mat4 {
	return RotateZ(rotation.Z).
		Mul(RotateY(rotation.Y)).
		Mul(RotateX(rotation.X)).
		Mul(Translate(position.X, position.Y, position.Z))
}

// Perspective creates a left-handed perspective projection matrix.
// aspect is height/width, fovDeg is the field of view in degrees.
// The view-space z is copied into w' for the perspective divide. The tangent
// is taken in float64 and rounded once so the entries are correctly rounded.
func Perspective(aspect, fovDeg, near, far float32) Mat4 {
	fovScale := 1 / float32(math.Tan(float64(Radians(fovDeg*0.5))))
	q := far / (far - near)
	return Mat4{
		{aspect * fovScale, 0, 0, 0},
		{0, fovScale, 0, 0},
		{0, 0, q, 1},
		{0, 0, -q * near, 0},
	}
}

// PointAt builds the camera-to-world matrix for a camera at pos looking at
// target. The rows are the right, up and forward axes followed by pos.
func PointAt(pos, target, up Vec3) Mat4 {
	forward := target.Sub(pos).Normalize()
	newUp := up.Sub(forward.Scale(up.Dot(forward))).Normalize()
	right := newUp.Cross(forward)
	return Mat4{
		{right.X, right.Y, right.Z, 0},
		{newUp.X, newUp.Y, newUp.Z, 0},
		{forward.X, forward.Y, forward.Z, 0},
		{pos.X, pos.Y, pos.Z, 1},
	}
}

// LookAtYaw returns the world-to-view matrix for a camera at pos rotated
// yawDeg degrees about the world Y axis.
func LookAtYaw(pos Vec3, yawDeg float32) Mat4 {
	dir := RotateY(yawDeg).MulVec3(Forward())
	return PointAt(pos, pos.Add(dir), WorldUp()).RigidInverse()
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[row][k] * b[k][col]
			}
			m[row][col] = sum
		}
	}
	return m
}

// MulVec4 transforms a homogeneous row vector: v * m.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + v.W*m[3][0],
		v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + v.W*m[3][1],
		v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + v.W*m[3][2],
		v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + v.W*m[3][3],
	}
}

// MulVec3 transforms a point (w=1) and divides by the resulting w.
// When w is exactly zero the undivided components are returned.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(v.Point()).PerspectiveDivide()
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[row][col] = m[col][row]
		}
	}
	return t
}

// RigidInverse inverts a matrix made only of rotation and translation by
// transposing the rotation block and re-deriving the translation. The result
// is wrong for matrices carrying scale, shear or projection.
func (m Mat4) RigidInverse() Mat4 {
	inv := m.Transpose()
	inv[0][3], inv[1][3], inv[2][3] = 0, 0, 0
	t := m.Translation().Negate()
	for col := range 3 {
		inv[3][col] = t.X*inv[0][col] + t.Y*inv[1][col] + t.Z*inv[2][col]
	}
	inv[3][3] = 1
	return inv
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3][0], m[3][1], m[3][2]}
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
func (a Mat4) ApproxEqual(b Mat4, eps float32) bool {
	for row := range 4 {
		for col := range 4 {
			if math32.Abs(a[row][col]-b[row][col]) > eps {
				return false
			}
		}
	}
	return true
}
