package respond

import (
	"testing"

	"github.com/rohitwtbs/charvak/body"
	"github.com/rohitwtbs/charvak/collide"
	"github.com/rohitwtbs/charvak/vecmath"
)

func TestResolveSkipsWhenBothStatic(t *testing.T) {
	a := body.New()
	a.InitPlane(vecmath.New(0, 1, 0), 0)
	b := body.New()
	b.InitPlane(vecmath.New(1, 0, 0), 0)

	c := collide.Contact{HasCollision: true, A: a, B: b, Normal: vecmath.New(0, 1, 0), Penetration: 1}
	Resolve(c) // must not panic or mutate either (both static, w==0)
}

func TestResolveElasticHeadOnCollision(t *testing.T) {
	a := body.New()
	a.InitSphere(vecmath.New(-0.75, 0, 0), 1, 1)
	a.SetRestitution(1)
	a.SetFriction(0)
	a.SetVelocity(vecmath.New(5, 0, 0))

	b := body.New()
	b.InitSphere(vecmath.New(0.75, 0, 0), 1, 1)
	b.SetRestitution(1)
	b.SetFriction(0)
	b.SetVelocity(vecmath.New(-5, 0, 0))

	c := collide.NarrowPhase(a, b)
	if !c.HasCollision {
		t.Fatal("expected collision")
	}
	Resolve(c)

	// Equal mass, perfectly elastic, head-on: velocities swap sign.
	if !vecmath.ApproxEqual(a.Velocity, vecmath.New(-5, 0, 0), 0.3) {
		t.Errorf("a.Velocity = %v, want ~(-5,0,0)", a.Velocity)
	}
	if !vecmath.ApproxEqual(b.Velocity, vecmath.New(5, 0, 0), 0.3) {
		t.Errorf("b.Velocity = %v, want ~(5,0,0)", b.Velocity)
	}
}

func TestResolveRestingContactAgainstStaticPlane(t *testing.T) {
	plane := body.New()
	plane.InitPlane(vecmath.New(0, 1, 0), 0)

	sphere := body.New()
	sphere.InitSphere(vecmath.New(0, 0.5, 0), 1, 1)
	sphere.SetRestitution(0)
	sphere.SetFriction(0)
	sphere.SetVelocity(vecmath.New(0, -2, 0))

	c := collide.NarrowPhase(sphere, plane)
	if !c.HasCollision {
		t.Fatal("expected collision")
	}
	Resolve(c)

	if plane.Position != vecmath.Zero() {
		t.Errorf("static plane moved: %v", plane.Position)
	}
	if sphere.Velocity.Y() > 1e-4 {
		t.Errorf("sphere velocity.Y = %v, want <= 0 (inelastic, no rebound)", sphere.Velocity.Y())
	}
}

func TestResolveFrictionReferenceUsesPostImpulseVelocity(t *testing.T) {
	a := body.New()
	a.InitSphere(vecmath.New(0, 1, 0), 1, 1)
	a.SetRestitution(0)
	a.SetFriction(1)
	a.SetVelocity(vecmath.New(5, 3, 0)) // 5 tangential, 3 closing along -n

	b := body.New()
	b.InitPlane(vecmath.New(0, 1, 0), 0)
	b.SetFriction(1)

	c := collide.Contact{HasCollision: true, A: a, B: b, Normal: vecmath.New(0, 1, 0), Penetration: 0.1}
	Resolve(c)

	// The normal impulse alone already zeroes the post-resolve normal
	// velocity component for a restitution=0 contact, so the friction
	// clamp's reference impulse (recomputed from that post-impulse
	// velocity) is ~0: friction must not touch the tangential component.
	if !vecmath.ApproxEqual(vecmath.New(a.Velocity.X(), 0, 0), vecmath.New(5, 0, 0), 1e-3) {
		t.Errorf("a.Velocity.X = %v, want ~5 (friction reference must use post-impulse velocity, not stale pre-impulse relVel)", a.Velocity.X())
	}
}

func TestResolveSeparatingContactsSkipNormalImpulse(t *testing.T) {
	a := body.New()
	a.InitSphere(vecmath.New(-0.5, 0, 0), 1, 1)
	a.SetVelocity(vecmath.New(-5, 0, 0)) // moving away from b

	b := body.New()
	b.InitSphere(vecmath.New(0.5, 0, 0), 1, 1)
	b.SetVelocity(vecmath.New(5, 0, 0)) // moving away from a

	c := collide.NarrowPhase(a, b)
	if !c.HasCollision {
		t.Fatal("expected collision")
	}
	velABefore, velBBefore := a.Velocity, b.Velocity
	Resolve(c)

	if a.Velocity != velABefore || b.Velocity != velBBefore {
		t.Errorf("normal impulse applied to separating contact: a=%v b=%v", a.Velocity, b.Velocity)
	}
}
