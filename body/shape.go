package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/rohitwtbs/charvak/vecmath"
)

// ShapeType tags the three collision-primitive variants a RigidBody may own.
type ShapeType int

const (
	// ShapeNone is the zero value: a body with no shape assigned yet.
	ShapeNone ShapeType = iota
	ShapeSphere
	ShapeBox
	ShapePlane
)

// AABB is an axis-aligned world-space bounding box, described by its min and
// max corners. Used for broad-phase culling of every shape variant.
type AABB struct {
	Min, Max vecmath.Vector3
}

// Overlaps reports whether two AABBs intersect on all three axes (closed
// intervals, so exactly-touching boxes do overlap at the AABB level — the
// narrow phase applies the strict inequality spec.md requires).
func (a AABB) Overlaps(o AABB) bool {
	return a.Max.X() >= o.Min.X() && a.Min.X() <= o.Max.X() &&
		a.Max.Y() >= o.Min.Y() && a.Min.Y() <= o.Max.Y() &&
		a.Max.Z() >= o.Min.Z() && a.Min.Z() <= o.Max.Z()
}

// infinite is used as the world-AABB for a plane: conceptually unbounded.
const infinite = math.MaxFloat32

// WorldAABB computes the broad-phase AABB for a shape centered at position.
func WorldAABB(shapeType ShapeType, sphereRadius float32, boxHalfExtents vecmath.Vector3, position vecmath.Vector3) AABB {
	switch shapeType {
	case ShapeSphere:
		r := vecmath.New(sphereRadius, sphereRadius, sphereRadius)
		return AABB{Min: vecmath.Sub(position, r), Max: vecmath.Add(position, r)}
	case ShapeBox:
		return AABB{Min: vecmath.Sub(position, boxHalfExtents), Max: vecmath.Add(position, boxHalfExtents)}
	case ShapePlane:
		inf := vecmath.New(infinite, infinite, infinite)
		return AABB{Min: vecmath.Negate(inf), Max: inf}
	default:
		return AABB{}
	}
}

// sphereInertia returns the local inertia tensor of a solid sphere,
// I = (2/5) m r^2 on every axis — spec.md §9 option (b): a real inertia
// tensor rather than the scalar inverse-mass proxy the source used.
func sphereInertia(mass, radius float32) mgl32.Mat3 {
	i := (2.0 / 5.0) * mass * radius * radius
	return mgl32.Mat3{i, 0, 0, 0, i, 0, 0, 0, i}
}

// boxInertia returns the local inertia tensor of a solid box with the given
// half-extents: I = (m/12) * (d1^2 + d2^2) per axis pair.
func boxInertia(mass float32, halfExtents vecmath.Vector3) mgl32.Mat3 {
	x, y, z := halfExtents.X()*2, halfExtents.Y()*2, halfExtents.Z()*2
	f := mass / 12.0
	ix := f * (y*y + z*z)
	iy := f * (x*x + z*z)
	iz := f * (x*x + y*y)
	return mgl32.Mat3{ix, 0, 0, 0, iy, 0, 0, 0, iz}
}
