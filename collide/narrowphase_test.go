package collide

import (
	"testing"

	"github.com/rohitwtbs/charvak/body"
	"github.com/rohitwtbs/charvak/vecmath"
)

func sphereAt(pos vecmath.Vector3, radius float32) *body.RigidBody {
	b := body.New()
	b.InitSphere(pos, radius, 1)
	return b
}

func boxAt(pos, half vecmath.Vector3) *body.RigidBody {
	b := body.New()
	b.InitAABB(pos, half, 1)
	return b
}

func planeAt(normal vecmath.Vector3, d float32) *body.RigidBody {
	b := body.New()
	b.InitPlane(normal, d)
	return b
}

func TestSphereSphereOverlap(t *testing.T) {
	a := sphereAt(vecmath.New(0, 0, 0), 1)
	b := sphereAt(vecmath.New(1.5, 0, 0), 1)

	c := NarrowPhase(a, b)
	if !c.HasCollision {
		t.Fatal("expected collision")
	}
	if got, want := c.Penetration, float32(0.5); abs32(got-want) > 1e-5 {
		t.Errorf("penetration = %v, want %v", got, want)
	}
	if !vecmath.ApproxEqual(c.Normal, vecmath.New(1, 0, 0), 1e-5) {
		t.Errorf("normal = %v, want (1,0,0)", c.Normal)
	}
}

func TestSphereSphereExactlyTouchingDoesNotCollide(t *testing.T) {
	a := sphereAt(vecmath.New(0, 0, 0), 1)
	b := sphereAt(vecmath.New(2, 0, 0), 1)

	c := NarrowPhase(a, b)
	if c.HasCollision {
		t.Error("exactly touching spheres must not collide (strict <)")
	}
}

func TestSphereSphereCoincidentArbitraryNormal(t *testing.T) {
	a := sphereAt(vecmath.New(0, 0, 0), 1)
	b := sphereAt(vecmath.New(0, 0, 0), 1)

	c := NarrowPhase(a, b)
	if !c.HasCollision {
		t.Fatal("expected collision for coincident spheres")
	}
	if !vecmath.ApproxEqual(c.Normal, vecmath.New(1, 0, 0), 1e-5) {
		t.Errorf("normal = %v, want arbitrary (1,0,0)", c.Normal)
	}
}

func TestSphereInsideBoxDegenerate(t *testing.T) {
	box := boxAt(vecmath.New(0, 0, 0), vecmath.New(2, 2, 2))
	sphere := sphereAt(vecmath.New(0, 0, 0), 0.5)

	c := NarrowPhase(sphere, box)
	if !c.HasCollision {
		t.Fatal("expected collision")
	}
	if got, want := c.Penetration, float32(2.5); abs32(got-want) > 1e-5 {
		t.Errorf("penetration = %v, want %v", got, want)
	}
	// Normal must be a unit axis vector (±X, ±Y, or ±Z).
	n := c.Normal
	axesHit := 0
	for _, v := range []float32{n.X(), n.Y(), n.Z()} {
		if abs32(abs32(v)-1) < 1e-5 {
			axesHit++
		} else if abs32(v) > 1e-5 {
			t.Errorf("normal %v is not axis-aligned", n)
		}
	}
	if axesHit != 1 {
		t.Errorf("normal %v should have exactly one unit axis", n)
	}
}

func TestAABBPlaneExactlyTouchingDoesNotCollide(t *testing.T) {
	plane := planeAt(vecmath.New(0, 1, 0), 0)
	box := boxAt(vecmath.New(0, 1, 0), vecmath.New(1, 1, 1))

	c := NarrowPhase(box, plane)
	if c.HasCollision {
		t.Error("box exactly resting on plane (s == e) must not collide")
	}
}

func TestSpherePlaneCollides(t *testing.T) {
	plane := planeAt(vecmath.New(0, 1, 0), 0)
	sphere := sphereAt(vecmath.New(0, 0.5, 0), 1)

	c := NarrowPhase(sphere, plane)
	if !c.HasCollision {
		t.Fatal("expected collision")
	}
	if got, want := c.Penetration, float32(0.5); abs32(got-want) > 1e-5 {
		t.Errorf("penetration = %v, want %v", got, want)
	}
}

func TestPlanePlaneNeverCollides(t *testing.T) {
	a := planeAt(vecmath.New(0, 1, 0), 0)
	b := planeAt(vecmath.New(1, 0, 0), 0)

	c := NarrowPhase(a, b)
	if c.HasCollision {
		t.Error("plane-plane must never report a collision")
	}
}

func TestBoxBoxNormalPointsFromAToB(t *testing.T) {
	a := boxAt(vecmath.New(0, 0, 0), vecmath.New(1, 1, 1))
	b := boxAt(vecmath.New(1.5, 0, 0), vecmath.New(1, 1, 1))

	c := NarrowPhase(a, b)
	if !c.HasCollision {
		t.Fatal("expected collision")
	}
	if c.Normal.X() <= 0 {
		t.Errorf("normal = %v, want positive X (A is left of B)", c.Normal)
	}
}

func TestDispatchOrderIndependence(t *testing.T) {
	sphere := sphereAt(vecmath.New(0, 0.5, 0), 1)
	plane := planeAt(vecmath.New(0, 1, 0), 0)

	c1 := NarrowPhase(sphere, plane)
	c2 := NarrowPhase(plane, sphere)

	if c1.HasCollision != c2.HasCollision {
		t.Fatal("dispatch order changed collision result")
	}
	if !vecmath.ApproxEqual(c1.Normal, vecmath.Negate(c2.Normal), 1e-5) {
		t.Errorf("normal should flip with argument order: %v vs %v", c1.Normal, c2.Normal)
	}
}
