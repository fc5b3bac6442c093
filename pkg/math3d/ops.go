package math3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// AngleBetween returns the angle between a and b in degrees.
// It returns NaN when either vector has zero length; the angle is undefined
// there and callers are expected to check with math.IsNaN.
func AngleBetween(a, b Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return math.NaN()
	}
	cos := a.Dot(b) / (la * lb)
	cos = Clamp(cos, -1, 1)
	return Degrees(math.Acos(cos))
}

// TriangleArea returns the area of the triangle spanned by a and b,
// half the magnitude of their cross product.
func TriangleArea(a, b Vec3) float64 {
	return a.Cross(b).Len() / 2
}

// Parallel reports whether a and b point along the same line. Zero vectors
// are parallel to everything.
func Parallel(a, b Vec3) bool {
	const eps = 1e-9
	return a.Cross(b).LenSq() <= eps*a.LenSq()*b.LenSq()
}

// GL converts the vector to the float32 layout graphics programs take.
func (a Vec3) GL() mgl32.Vec3 {
	return mgl32.Vec3{float32(a.X), float32(a.Y), float32(a.Z)}
}

// GL converts the vector to the float32 layout graphics programs take.
func (v Vec4) GL() mgl32.Vec4 {
	return mgl32.Vec4{float32(v.X), float32(v.Y), float32(v.Z), float32(v.W)}
}

// GL converts the matrix to float32. Both types are column-major so the
// element order is preserved.
func (m Mat4) GL() mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// FromGL converts a float32 matrix back to Mat4.
func FromGL(m mgl32.Mat4) Mat4 {
	var out Mat4
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}
