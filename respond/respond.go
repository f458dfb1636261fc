// Package respond implements the impulse-based collision resolver described
// in spec.md §4.5: positional separation, normal impulse with restitution,
// Coulomb friction, and Baumgarte position correction — run in that order
// for every recorded contact.
//
// This replaces the teacher's XPBD/compliance-based ContactConstraint
// solver (constraint/contact.go's soft-constraint math) with the classical
// sequential-impulse algorithm spec.md mandates; see SPEC_FULL.md §6 for the
// grounding note on what's kept from the teacher's shape versus its math.
package respond

import (
	"math"

	"github.com/rohitwtbs/charvak/collide"
	"github.com/rohitwtbs/charvak/vecmath"
)

// Baumgarte percentage and slop, per spec.md §4.5 step 4.
const (
	baumgarteBeta = 0.8
	baumgarteSlop = 0.01
)

// Resolve applies the four-step response algorithm to a single contact.
func Resolve(c collide.Contact) {
	if !c.HasCollision {
		return
	}
	a, b := c.A, c.B
	n := c.Normal

	w := a.InverseMass() + b.InverseMass()
	if w == 0 {
		return
	}

	// 1. Positional separation.
	a.Translate(vecmath.Scale(n, -(a.InverseMass() / w) * c.Penetration))
	b.Translate(vecmath.Scale(n, (b.InverseMass()/w)*c.Penetration))

	// 2. Normal impulse with restitution.
	relVel := vecmath.Dot(vecmath.Sub(b.Velocity, a.Velocity), n)
	restitution := minF(a.Restitution(), b.Restitution())

	if relVel <= 0 {
		j := -(1 + restitution) * relVel / w
		a.AddImpulse(vecmath.Scale(n, -j))
		b.AddImpulse(vecmath.Scale(n, j))
	}

	// 3. Coulomb friction.
	relVelAfter := vecmath.Sub(b.Velocity, a.Velocity)
	tangentVec := vecmath.Sub(relVelAfter, vecmath.Scale(n, vecmath.Dot(relVelAfter, n)))
	tangentLen := vecmath.Length(tangentVec)
	if tangentLen >= vecmath.Epsilon {
		t := vecmath.Scale(tangentVec, 1/tangentLen)
		mu := float32(math.Sqrt(float64(a.Friction() * b.Friction())))

		jt := -vecmath.Dot(relVelAfter, t) / w
		jRef := -vecmath.Dot(relVelAfter, n) / w // reference normal impulse using e=0, post-impulse velocity
		maxFriction := mu * absF(jRef)
		if absF(jt) > maxFriction {
			jt = copysignF(maxFriction, jt)
		}

		a.AddImpulse(vecmath.Scale(t, -jt))
		b.AddImpulse(vecmath.Scale(t, jt))
	}

	// 4. Baumgarte position correction.
	corrected := maxF(c.Penetration-baumgarteSlop, 0) * baumgarteBeta / w
	a.Translate(vecmath.Scale(n, -(a.InverseMass() / w) * corrected))
	b.Translate(vecmath.Scale(n, (b.InverseMass()/w)*corrected))
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func copysignF(mag, sign float32) float32 {
	if sign < 0 {
		return -mag
	}
	return mag
}
