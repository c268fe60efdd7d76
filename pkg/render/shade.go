package render

import "github.com/taigrr/flatshade/pkg/math3d"

// MinIntensity keeps faces turned away from the light from going fully black.
const MinIntensity = 0.01

// Intensity returns the Lambert term for a unit normal, floored at
// MinIntensity.
func Intensity(lightDir, normal math3d.Vec3) float32 {
	i := lightDir.Normalize().Dot(normal)
	// the negated test also catches NaN from a zero light vector
	if !(i >= MinIntensity) {
		return MinIntensity
	}
	return i
}

// Shade returns the albedo lit by a single directional light.
func Shade(lightDir, normal math3d.Vec3, albedo Color) Color {
	return ScaleColor(albedo, Intensity(lightDir, normal))
}
