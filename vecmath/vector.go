// Package vecmath provides the fixed-size 3D vector primitives and scalar
// helpers shared by every other package in this module. It has no I/O and no
// failure modes: degenerate inputs (a zero-length vector normalized) produce
// a documented fallback rather than an error.
package vecmath

import "github.com/go-gl/mathgl/mgl32"

// Epsilon is the length below which a vector is treated as degenerate.
const Epsilon = 1e-6

// Vector3 is an ordered triple of finite 32-bit floats.
type Vector3 = mgl32.Vec3

// Zero is the additive identity.
func Zero() Vector3 { return Vector3{0, 0, 0} }

// New builds a vector from its three components.
func New(x, y, z float32) Vector3 { return Vector3{x, y, z} }

// Add returns a+b.
func Add(a, b Vector3) Vector3 { return a.Add(b) }

// Sub returns a-b.
func Sub(a, b Vector3) Vector3 { return a.Sub(b) }

// Scale returns v*k.
func Scale(v Vector3, k float32) Vector3 { return v.Mul(k) }

// Negate returns -v.
func Negate(v Vector3) Vector3 { return v.Mul(-1) }

// Dot returns the scalar dot product.
func Dot(a, b Vector3) float32 { return a.Dot(b) }

// Cross returns the right-handed cross product
// (a_y*b_z - a_z*b_y, a_z*b_x - a_x*b_z, a_x*b_y - a_y*b_x).
func Cross(a, b Vector3) Vector3 { return a.Cross(b) }

// LengthSq returns |v|^2.
func LengthSq(v Vector3) float32 { return v.Dot(v) }

// Length returns |v|.
func Length(v Vector3) float32 { return v.Len() }

// Normalize returns v scaled to unit length, or the zero vector if
// |v| < Epsilon. This is a documented degenerate sentinel, not an error.
func Normalize(v Vector3) Vector3 {
	l := Length(v)
	if l < Epsilon {
		return Zero()
	}
	return v.Mul(1 / l)
}

// Distance returns |b-a|.
func Distance(a, b Vector3) float32 {
	return Length(Sub(b, a))
}

// ApproxEqual reports whether a and b are within tolerance on every axis.
func ApproxEqual(a, b Vector3, tolerance float32) bool {
	return abs(a.X()-b.X()) <= tolerance &&
		abs(a.Y()-b.Y()) <= tolerance &&
		abs(a.Z()-b.Z()) <= tolerance
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
