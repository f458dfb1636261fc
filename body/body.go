// Package body implements the rigid-body state model: per-body kinematic and
// dynamic state, shape assignment, mass/inertia bookkeeping, and force
// accumulation. Setters and force/impulse operations are no-ops on a nil body
// or when forbidden by the body's static state; the read accessors expect a
// non-nil body. There is no error return anywhere in this
// package, matching spec.md §7's no-error-channel failure taxonomy.
package body

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/rohitwtbs/charvak/vecmath"
)

// nextID is the process-wide monotonic id counter (spec.md §3: "process-wide
// monotonically assigned at creation"). A rewrite localizing this counter to
// a World was considered and rejected — see SPEC_FULL.md §9.
var nextID int64

// RigidBody is a single dynamic or static body in the simulation.
type RigidBody struct {
	id int

	// Linear motion.
	Position     vecmath.Vector3
	Velocity     vecmath.Vector3
	Acceleration vecmath.Vector3

	// Angular motion. Orientation is a quaternion (spec.md §9 option: avoid
	// the non-composable Euler-triple update the source used).
	Rotation            mgl32.Quat
	AngularVelocity     vecmath.Vector3
	AngularAcceleration vecmath.Vector3

	mass        float32
	invMass     float32
	restitution float32
	friction    float32

	rotInertia      mgl32.Mat3 // local-space inertia tensor
	invRotInertia   mgl32.Mat3 // local-space inverse inertia tensor
	invInertiaWorld mgl32.Mat3 // world-space inverse inertia tensor, refreshed after integration

	// Accumulators, cleared after each integration of this body.
	Force  vecmath.Vector3
	Torque vecmath.Vector3

	shapeType      ShapeType
	sphereRadius   float32
	boxHalfExtents vecmath.Vector3
	planeNormal    vecmath.Vector3
	planeDistance  float32
	aabb           AABB

	isSleeping bool

	// IsTrigger marks a body whose contacts are still detected and reported
	// as events but never perturb velocity or position (SPEC_FULL.md §5.2).
	IsTrigger bool
}

// New creates a body with the documented defaults: mass=1, restitution=0.5,
// friction=0.3, no shape assigned yet. Call one of InitSphere/InitAABB/
// InitPlane before using it in a World.
func New() *RigidBody {
	b := &RigidBody{
		Rotation:    mgl32.QuatIdent(),
		mass:        1,
		invMass:     1,
		restitution: 0.5,
		friction:    0.3,
	}
	b.id = int(atomic.AddInt64(&nextID, 1))
	return b
}

// ID returns the body's unique positive integer identity.
func (b *RigidBody) ID() int {
	if b == nil {
		return 0
	}
	return b.id
}

// InitSphere assigns a sphere shape, sets mass and derives inverse mass and
// local inertia tensor. radius <= 0 is a no-op.
func (b *RigidBody) InitSphere(pos vecmath.Vector3, radius, mass float32) {
	if b == nil || radius <= 0 {
		return
	}
	b.Position = pos
	b.shapeType = ShapeSphere
	b.sphereRadius = radius
	b.SetMass(mass)
	b.rotInertia = sphereInertia(b.effectiveInertiaMass(), radius)
	b.refreshInertia()
	b.refreshAABB()
}

// InitAABB assigns a box shape centered at the body's position (no rotation
// applied to the collision shape, per spec.md §3), sets mass and derives
// inverse mass and local inertia tensor. A negative half-extent is clamped
// to zero; it is never a no-op, matching the source's permissive box setup.
func (b *RigidBody) InitAABB(pos, halfExtents vecmath.Vector3, mass float32) {
	if b == nil {
		return
	}
	he := vecmath.New(nonNegative(halfExtents.X()), nonNegative(halfExtents.Y()), nonNegative(halfExtents.Z()))
	b.Position = pos
	b.shapeType = ShapeBox
	b.boxHalfExtents = he
	b.SetMass(mass)
	b.rotInertia = boxInertia(b.effectiveInertiaMass(), he)
	b.refreshInertia()
	b.refreshAABB()
}

// InitPlane assigns a plane shape: normalizes normal, forces the body
// static (infinite mass), and pins its position at the origin per spec.md
// §3 ("its 'position' is the zero vector").
func (b *RigidBody) InitPlane(normal vecmath.Vector3, distance float32) {
	if b == nil {
		return
	}
	n := vecmath.Normalize(normal)
	if n == vecmath.Zero() {
		n = vecmath.New(0, 1, 0)
	}
	b.Position = vecmath.Zero()
	b.shapeType = ShapePlane
	b.planeNormal = n
	b.planeDistance = distance
	b.setStaticMass()
	b.refreshAABB()
}

func nonNegative(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}

// ShapeType reports which shape variant this body owns.
func (b *RigidBody) ShapeType() ShapeType { return b.shapeType }

// SphereRadius returns the sphere radius (only meaningful when ShapeType is
// ShapeSphere).
func (b *RigidBody) SphereRadius() float32 { return b.sphereRadius }

// BoxHalfExtents returns the box half-extents (only meaningful when
// ShapeType is ShapeBox).
func (b *RigidBody) BoxHalfExtents() vecmath.Vector3 { return b.boxHalfExtents }

// PlaneNormal returns the plane's unit normal (only meaningful when
// ShapeType is ShapePlane).
func (b *RigidBody) PlaneNormal() vecmath.Vector3 { return b.planeNormal }

// PlaneDistance returns the plane's signed distance from the origin along
// its normal (only meaningful when ShapeType is ShapePlane).
func (b *RigidBody) PlaneDistance() float32 { return b.planeDistance }

// AABB returns the body's cached world-space bounding box.
func (b *RigidBody) AABB() AABB { return b.aabb }

func (b *RigidBody) refreshAABB() {
	b.aabb = WorldAABB(b.shapeType, b.sphereRadius, b.boxHalfExtents, b.Position)
}

// Mass returns the body's mass (may be +Inf for a static body).
func (b *RigidBody) Mass() float32 { return b.mass }

// InverseMass returns the cached inverse mass; 0 iff the body is static
// (mass is +Inf). This is the single source of truth for "is this body
// immovable" — spec.md §9's static/infinite-mass collapse.
func (b *RigidBody) InverseMass() float32 { return b.invMass }

// IsStatic reports whether the body is immovable.
func (b *RigidBody) IsStatic() bool { return b.invMass == 0 }

// IsSleeping reports whether the body is currently asleep.
func (b *RigidBody) IsSleeping() bool { return b.isSleeping }

// SetSleeping directly sets the sleep flag and, when putting the body to
// sleep, zeros its velocities (spec.md §8 invariant 5).
func (b *RigidBody) SetSleeping(sleeping bool) {
	if b == nil {
		return
	}
	b.isSleeping = sleeping
	if sleeping {
		b.Velocity = vecmath.Zero()
		b.AngularVelocity = vecmath.Zero()
	}
}

// Translate shifts the body's position by delta without touching velocity.
// Used by the collision resolver for positional separation and Baumgarte
// correction. No-op if the body is static.
func (b *RigidBody) Translate(delta vecmath.Vector3) {
	if b == nil || b.IsStatic() {
		return
	}
	b.Position = vecmath.Add(b.Position, delta)
	b.refreshAABB()
}

// Restitution returns the body's restitution coefficient, in [0,1].
func (b *RigidBody) Restitution() float32 { return b.restitution }

// Friction returns the body's friction coefficient, in [0,∞).
func (b *RigidBody) Friction() float32 { return b.friction }

// SetPosition is a no-op if the body is static.
func (b *RigidBody) SetPosition(pos vecmath.Vector3) {
	if b == nil || b.IsStatic() {
		return
	}
	b.Position = pos
	b.refreshAABB()
}

// SetVelocity is a no-op if the body is static.
func (b *RigidBody) SetVelocity(v vecmath.Vector3) {
	if b == nil || b.IsStatic() {
		return
	}
	b.Velocity = v
}

// SetMass sets the body's mass. mass <= 0 makes the body static (mass=+Inf,
// inverse mass=0); so does a body that is already static (shape-pinned by
// plane, or previously static via SetStatic(true)) — spec.md §4.2.
func (b *RigidBody) SetMass(mass float32) {
	if b == nil {
		return
	}
	if mass <= 0 || b.shapeType == ShapePlane || b.IsStatic() {
		b.setStaticMass()
		return
	}
	b.mass = mass
	b.invMass = 1 / mass
	b.rescaleInertiaFor(mass)
}

func (b *RigidBody) setStaticMass() {
	b.mass = float32(math.Inf(1))
	b.invMass = 0
	b.Velocity = vecmath.Zero()
	b.AngularVelocity = vecmath.Zero()
	b.rotInertia = mgl32.Mat3{}
	b.invRotInertia = mgl32.Mat3{}
	b.invInertiaWorld = mgl32.Mat3{}
}

// effectiveInertiaMass returns the finite mass to use when deriving the
// local inertia tensor (never +Inf, since a tensor of Inf*stuff is useless).
func (b *RigidBody) effectiveInertiaMass() float32 {
	if b.invMass == 0 {
		return 0
	}
	return b.mass
}

func (b *RigidBody) rescaleInertiaFor(mass float32) {
	switch b.shapeType {
	case ShapeSphere:
		b.rotInertia = sphereInertia(mass, b.sphereRadius)
	case ShapeBox:
		b.rotInertia = boxInertia(mass, b.boxHalfExtents)
	default:
		return
	}
	b.refreshInertia()
}

func (b *RigidBody) refreshInertia() {
	if b.rotInertia == (mgl32.Mat3{}) {
		b.invRotInertia = mgl32.Mat3{}
	} else {
		b.invRotInertia = b.rotInertia.Inv()
	}
	b.UpdateInertiaWorld()
}

// UpdateInertiaWorld recomputes the world-space inverse inertia tensor
// (I_world^-1 = R * I_local^-1 * R^T). Called after integration rotates the
// body and whenever the local tensor changes.
func (b *RigidBody) UpdateInertiaWorld() {
	if b.IsStatic() {
		b.invInertiaWorld = mgl32.Mat3{}
		return
	}
	r := b.Rotation.Mat4().Mat3()
	b.invInertiaWorld = r.Mul3(b.invRotInertia).Mul3(r.Transpose())
}

// InverseInertiaWorld returns the cached world-space inverse inertia tensor.
func (b *RigidBody) InverseInertiaWorld() mgl32.Mat3 { return b.invInertiaWorld }

// SetRestitution clamps to [0,1].
func (b *RigidBody) SetRestitution(e float32) {
	if b == nil {
		return
	}
	switch {
	case e < 0:
		e = 0
	case e > 1:
		e = 1
	}
	b.restitution = e
}

// SetFriction clamps to [0,∞).
func (b *RigidBody) SetFriction(f float32) {
	if b == nil {
		return
	}
	if f < 0 {
		f = 0
	}
	b.friction = f
}

// SetStatic(true) zeros velocities and inverse mass. SetStatic(false)
// re-derives inverse mass from the body's current mass value (restoring it
// to 1 if the mass had been blown away to +Inf by a prior SetStatic(true)).
func (b *RigidBody) SetStatic(static bool) {
	if b == nil {
		return
	}
	if static {
		b.setStaticMass()
		return
	}
	if math.IsInf(float64(b.mass), 1) {
		b.mass = 1
	}
	b.invMass = 1 / b.mass
	b.rescaleInertiaFor(b.mass)
}

// AddForce accumulates a world-space force. No-op if static.
func (b *RigidBody) AddForce(f vecmath.Vector3) {
	if b == nil || b.IsStatic() {
		return
	}
	b.Force = vecmath.Add(b.Force, f)
}

// AddTorque accumulates a world-space torque. No-op if static.
func (b *RigidBody) AddTorque(t vecmath.Vector3) {
	if b == nil || b.IsStatic() {
		return
	}
	b.Torque = vecmath.Add(b.Torque, t)
}

// AddForceAtPoint accumulates F into force and (P-position)×F into torque.
func (b *RigidBody) AddForceAtPoint(f, p vecmath.Vector3) {
	if b == nil || b.IsStatic() {
		return
	}
	b.Force = vecmath.Add(b.Force, f)
	r := vecmath.Sub(p, b.Position)
	b.Torque = vecmath.Add(b.Torque, vecmath.Cross(r, f))
}

// AddImpulse applies an instantaneous velocity change velocity += J*invMass.
// No-op if static.
func (b *RigidBody) AddImpulse(j vecmath.Vector3) {
	if b == nil || b.IsStatic() {
		return
	}
	b.Velocity = vecmath.Add(b.Velocity, vecmath.Scale(j, b.invMass))
}

// AddAngularImpulse applies an instantaneous angular velocity change
// angularVelocity += invInertiaWorld * L. No-op if static.
func (b *RigidBody) AddAngularImpulse(l vecmath.Vector3) {
	if b == nil || b.IsStatic() {
		return
	}
	b.AngularVelocity = vecmath.Add(b.AngularVelocity, b.invInertiaWorld.Mul3x1(l))
}

// ClearForces zeros both accumulators.
func (b *RigidBody) ClearForces() {
	if b == nil {
		return
	}
	b.Force = vecmath.Zero()
	b.Torque = vecmath.Zero()
}

// PointVelocity returns the world velocity of the point P on this body:
// velocity + angularVelocity × (P - position).
func (b *RigidBody) PointVelocity(p vecmath.Vector3) vecmath.Vector3 {
	if b == nil {
		return vecmath.Zero()
	}
	r := vecmath.Sub(p, b.Position)
	return vecmath.Add(b.Velocity, vecmath.Cross(b.AngularVelocity, r))
}

// KineticEnergy returns 0.5*mass*|velocity|^2. The angular term is omitted
// by design, matching spec.md §4.2.
func (b *RigidBody) KineticEnergy() float32 {
	if b == nil || b.IsStatic() {
		return 0
	}
	return 0.5 * b.mass * vecmath.LengthSq(b.Velocity)
}
