package collide

import (
	"math"

	"github.com/rohitwtbs/charvak/body"
	"github.com/rohitwtbs/charvak/vecmath"
)

// Contact is a single point-of-approximation between two colliding bodies:
// a normal (pointing from A to B), a penetration depth, and a witness point.
type Contact struct {
	HasCollision bool
	A, B         *body.RigidBody
	Normal       vecmath.Vector3
	Penetration  float32
	Point        vecmath.Vector3
}

// NarrowPhase dispatches on the unordered pair of shape tags and runs the
// matching dedicated test from spec.md §4.4's table. The dispatch table is
// normalized so the implementation needs exactly six routines; whichever
// order the two bodies arrive in, the returned contact's Normal always
// points from A (as passed in) to B.
func NarrowPhase(a, b *body.RigidBody) Contact {
	ta, tb := a.ShapeType(), b.ShapeType()

	switch {
	case ta == body.ShapeSphere && tb == body.ShapeSphere:
		return sphereSphere(a, b)
	case ta == body.ShapeSphere && tb == body.ShapeBox:
		return sphereBox(a, b)
	case ta == body.ShapeBox && tb == body.ShapeSphere:
		return flip(sphereBox(b, a))
	case ta == body.ShapeBox && tb == body.ShapeBox:
		return boxBox(a, b)
	case ta == body.ShapeSphere && tb == body.ShapePlane:
		return spherePlane(a, b)
	case ta == body.ShapePlane && tb == body.ShapeSphere:
		return flip(spherePlane(b, a))
	case ta == body.ShapeBox && tb == body.ShapePlane:
		return boxPlane(a, b)
	case ta == body.ShapePlane && tb == body.ShapeBox:
		return flip(boxPlane(b, a))
	default:
		// plane-plane (and anything with an unset shape): never tested.
		return Contact{A: a, B: b}
	}
}

// flip swaps A/B back to the caller's original order and negates the
// normal so it still points from (the caller's) A to B.
func flip(c Contact) Contact {
	c.A, c.B = c.B, c.A
	c.Normal = vecmath.Negate(c.Normal)
	return c
}

func sphereSphere(a, b *body.RigidBody) Contact {
	ra, rb := a.SphereRadius(), b.SphereRadius()
	delta := vecmath.Sub(b.Position, a.Position)
	d := vecmath.Length(delta)
	if !(d < ra+rb) {
		return Contact{A: a, B: b}
	}

	penetration := ra + rb - d
	var normal vecmath.Vector3
	if d > vecmath.Epsilon {
		normal = vecmath.Scale(delta, 1/d)
	} else {
		normal = vecmath.New(1, 0, 0)
	}
	point := vecmath.Add(a.Position, vecmath.Scale(normal, ra-0.5*penetration))

	return Contact{HasCollision: true, A: a, B: b, Normal: normal, Penetration: penetration, Point: point}
}

func sphereBox(sphere, box *body.RigidBody) Contact {
	r := sphere.SphereRadius()
	he := box.BoxHalfExtents()
	boxMin := vecmath.Sub(box.Position, he)
	boxMax := vecmath.Add(box.Position, he)

	clamped := vecmath.New(
		clamp(sphere.Position.X(), boxMin.X(), boxMax.X()),
		clamp(sphere.Position.Y(), boxMin.Y(), boxMax.Y()),
		clamp(sphere.Position.Z(), boxMin.Z(), boxMax.Z()),
	)

	delta := vecmath.Sub(sphere.Position, clamped)
	d := vecmath.Length(delta)
	if !(d < r) {
		return Contact{A: sphere, B: box}
	}

	penetration := r - d
	var normal vecmath.Vector3
	if d > vecmath.Epsilon {
		normal = vecmath.Scale(delta, 1/d)
	} else {
		// Center inside the box: normal is the axis of minimum penetration,
		// and the depth is the radius plus the gap to that face.
		rel := vecmath.Sub(sphere.Position, box.Position)
		bestAxis, bestGap := 0, he.X()-abs32(rel.X())
		if g := he.Y() - abs32(rel.Y()); g < bestGap {
			bestAxis, bestGap = 1, g
		}
		if g := he.Z() - abs32(rel.Z()); g < bestGap {
			bestAxis, bestGap = 2, g
		}
		normal = axisVector(bestAxis, rel)
		penetration = r + bestGap
	}
	// The normal so far points from the box toward the sphere; negate it so
	// it points from A (the sphere) to B (the box).
	normal = vecmath.Negate(normal)
	point := clamped

	return Contact{HasCollision: true, A: sphere, B: box, Normal: normal, Penetration: penetration, Point: point}
}

func axisVector(axis int, rel vecmath.Vector3) vecmath.Vector3 {
	sign := float32(1)
	switch axis {
	case 0:
		if rel.X() < 0 {
			sign = -1
		}
		return vecmath.New(sign, 0, 0)
	case 1:
		if rel.Y() < 0 {
			sign = -1
		}
		return vecmath.New(0, sign, 0)
	default:
		if rel.Z() < 0 {
			sign = -1
		}
		return vecmath.New(0, 0, sign)
	}
}

func boxBox(a, b *body.RigidBody) Contact {
	aHe, bHe := a.BoxHalfExtents(), b.BoxHalfExtents()
	aMin, aMax := vecmath.Sub(a.Position, aHe), vecmath.Add(a.Position, aHe)
	bMin, bMax := vecmath.Sub(b.Position, bHe), vecmath.Add(b.Position, bHe)

	overlapX := math32min(aMax.X()-bMin.X(), bMax.X()-aMin.X())
	overlapY := math32min(aMax.Y()-bMin.Y(), bMax.Y()-aMin.Y())
	overlapZ := math32min(aMax.Z()-bMin.Z(), bMax.Z()-aMin.Z())
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return Contact{A: a, B: b}
	}

	axis, penetration := 0, overlapX
	if overlapY < penetration {
		axis, penetration = 1, overlapY
	}
	if overlapZ < penetration {
		axis, penetration = 2, overlapZ
	}

	// Normal points from A to B (spec.md §9: the rewrite picks this
	// convention rather than the source's inverted sign).
	normal := vecmath.Zero()
	switch axis {
	case 0:
		normal = signedAxis(0, a.Position.X() < b.Position.X())
	case 1:
		normal = signedAxis(1, a.Position.Y() < b.Position.Y())
	default:
		normal = signedAxis(2, a.Position.Z() < b.Position.Z())
	}

	point := vecmath.New(
		0.5*(math32max(aMin.X(), bMin.X())+math32min(aMax.X(), bMax.X())),
		0.5*(math32max(aMin.Y(), bMin.Y())+math32min(aMax.Y(), bMax.Y())),
		0.5*(math32max(aMin.Z(), bMin.Z())+math32min(aMax.Z(), bMax.Z())),
	)

	return Contact{HasCollision: true, A: a, B: b, Normal: normal, Penetration: penetration, Point: point}
}

func signedAxis(axis int, positive bool) vecmath.Vector3 {
	s := float32(-1)
	if positive {
		s = 1
	}
	switch axis {
	case 0:
		return vecmath.New(s, 0, 0)
	case 1:
		return vecmath.New(0, s, 0)
	default:
		return vecmath.New(0, 0, s)
	}
}

func spherePlane(sphere, plane *body.RigidBody) Contact {
	n := plane.PlaneNormal()
	d := plane.PlaneDistance()
	r := sphere.SphereRadius()

	s := vecmath.Dot(n, sphere.Position) - d
	if !(s < r) {
		return Contact{A: sphere, B: plane}
	}

	penetration := r - s
	point := vecmath.Sub(sphere.Position, vecmath.Scale(n, r))

	// n points from the plane toward the sphere; the contact normal points
	// from A (the sphere) to B (the plane), so it is -n.
	return Contact{HasCollision: true, A: sphere, B: plane, Normal: vecmath.Negate(n), Penetration: penetration, Point: point}
}

func boxPlane(box, plane *body.RigidBody) Contact {
	n := plane.PlaneNormal()
	d := plane.PlaneDistance()
	he := box.BoxHalfExtents()

	e := abs32(he.X()*n.X()) + abs32(he.Y()*n.Y()) + abs32(he.Z()*n.Z())
	s := vecmath.Dot(n, box.Position) - d
	if !(s < e) {
		return Contact{A: box, B: plane}
	}

	penetration := e - s
	point := vecmath.Sub(box.Position, vecmath.Scale(n, s))

	// As in spherePlane: the A-to-B normal (box to plane) is -n.
	return Contact{HasCollision: true, A: box, B: plane, Normal: vecmath.Negate(n), Penetration: penetration, Point: point}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func math32min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func math32max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
