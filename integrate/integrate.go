// Package integrate provides the three time-stepping schemes that map a
// body's accumulated force/torque to a new position, velocity and
// orientation: semi-implicit Euler, velocity Verlet, and classical RK4.
// All three skip static and sleeping bodies and clear the body's force and
// torque accumulators once they're done with them.
package integrate

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/rohitwtbs/charvak/body"
	"github.com/rohitwtbs/charvak/vecmath"
)

// Method selects a time-stepping scheme.
type Method int

const (
	Euler Method = iota
	Verlet
	RK4
)

// Integrator runs one of the three schemes across a population of bodies.
// It keeps the small amount of per-body state Verlet needs (the previous
// step's acceleration) keyed by body id — the same shape the pack's
// alexanderi96-go-space-engine integrator uses with a uuid-keyed map.
type Integrator struct {
	prevAccel        map[int]vecmath.Vector3
	prevAngularAccel map[int]vecmath.Vector3
}

// New returns a ready-to-use Integrator.
func New() *Integrator {
	return &Integrator{
		prevAccel:        make(map[int]vecmath.Vector3),
		prevAngularAccel: make(map[int]vecmath.Vector3),
	}
}

// Body advances b forward by dt using method. dt <= 0 or a nil/static/
// sleeping body is a no-op. An unrecognized method falls back to Verlet.
func (in *Integrator) Body(b *body.RigidBody, dt float32, method Method) {
	if b == nil || dt <= 0 || b.IsStatic() || b.IsSleeping() {
		return
	}

	a, alpha := acceleration(b)

	switch method {
	case Euler:
		in.stepEuler(b, dt, a, alpha)
	case RK4:
		in.stepRK4(b, dt, a, alpha)
	default:
		in.stepVerlet(b, dt, a, alpha)
	}

	b.UpdateInertiaWorld()
	b.ClearForces()
}

// acceleration computes a = F * invMass, alpha = invInertiaWorld * torque.
func acceleration(b *body.RigidBody) (a, alpha vecmath.Vector3) {
	a = vecmath.Scale(b.Force, b.InverseMass())
	alpha = b.InverseInertiaWorld().Mul3x1(b.Torque)
	return
}

func (in *Integrator) stepEuler(b *body.RigidBody, dt float32, a, alpha vecmath.Vector3) {
	b.Velocity = vecmath.Add(b.Velocity, vecmath.Scale(a, dt))
	b.AngularVelocity = vecmath.Add(b.AngularVelocity, vecmath.Scale(alpha, dt))

	b.Position = vecmath.Add(b.Position, vecmath.Scale(b.Velocity, dt))
	integrateRotation(b, dt)

	in.prevAccel[b.ID()] = a
	in.prevAngularAccel[b.ID()] = alpha
}

func (in *Integrator) stepVerlet(b *body.RigidBody, dt float32, a, alpha vecmath.Vector3) {
	id := b.ID()
	prevA, ok := in.prevAccel[id]
	if !ok {
		prevA = a
	}
	prevAlpha, ok := in.prevAngularAccel[id]
	if !ok {
		prevAlpha = alpha
	}

	half := 0.5 * dt * dt
	b.Position = vecmath.Add(b.Position, vecmath.Add(vecmath.Scale(b.Velocity, dt), vecmath.Scale(a, half)))
	theta := vecmath.Add(vecmath.Scale(b.AngularVelocity, dt), vecmath.Scale(alpha, half))
	rotateByAngle(b, theta)

	b.Velocity = vecmath.Add(b.Velocity, vecmath.Scale(vecmath.Add(prevA, a), 0.5*dt))
	b.AngularVelocity = vecmath.Add(b.AngularVelocity, vecmath.Scale(vecmath.Add(prevAlpha, alpha), 0.5*dt))

	in.prevAccel[id] = a
	in.prevAngularAccel[id] = alpha
}

// stepRK4 runs the classic four-sample evaluation of the coupled (x,v) and
// (theta,omega) systems with weights (1,2,2,1)/6. The acceleration in this
// model depends only on accumulated force/torque, not on the intermediate
// velocity samples, so each stage re-uses the same a/alpha — the same
// simplification the pack's RK4Integrator (go-space-engine) documents.
func (in *Integrator) stepRK4(b *body.RigidBody, dt float32, a, alpha vecmath.Vector3) {
	v0, w0 := b.Velocity, b.AngularVelocity

	k1v, k1x := vecmath.Scale(a, dt), vecmath.Scale(v0, dt)
	k1w, k1t := vecmath.Scale(alpha, dt), vecmath.Scale(w0, dt)

	v1 := vecmath.Add(v0, vecmath.Scale(k1v, 0.5))
	w1 := vecmath.Add(w0, vecmath.Scale(k1w, 0.5))
	k2v, k2x := vecmath.Scale(a, dt), vecmath.Scale(v1, dt)
	k2w, k2t := vecmath.Scale(alpha, dt), vecmath.Scale(w1, dt)

	v2 := vecmath.Add(v0, vecmath.Scale(k2v, 0.5))
	w2 := vecmath.Add(w0, vecmath.Scale(k2w, 0.5))
	k3v, k3x := vecmath.Scale(a, dt), vecmath.Scale(v2, dt)
	k3w, k3t := vecmath.Scale(alpha, dt), vecmath.Scale(w2, dt)

	v3 := vecmath.Add(v0, k3v)
	w3 := vecmath.Add(w0, k3w)
	k4v, k4x := vecmath.Scale(a, dt), vecmath.Scale(v3, dt)
	k4w, k4t := vecmath.Scale(alpha, dt), vecmath.Scale(w3, dt)

	sixth := float32(1.0 / 6.0)
	dv := vecmath.Scale(sum4(k1v, k2v, k3v, k4v), sixth)
	dx := vecmath.Scale(sum4(k1x, k2x, k3x, k4x), sixth)
	dw := vecmath.Scale(sum4(k1w, k2w, k3w, k4w), sixth)
	dtheta := vecmath.Scale(sum4(k1t, k2t, k3t, k4t), sixth)

	b.Velocity = vecmath.Add(v0, dv)
	b.Position = vecmath.Add(b.Position, dx)
	b.AngularVelocity = vecmath.Add(w0, dw)
	rotateByAngle(b, dtheta)

	in.prevAccel[b.ID()] = a
	in.prevAngularAccel[b.ID()] = alpha
}

func sum4(a, b, c, d vecmath.Vector3) vecmath.Vector3 {
	return vecmath.Add(vecmath.Add(a, b), vecmath.Add(c, d))
}

// integrateRotation advances b.Rotation by the current angular velocity
// over dt using the standard quaternion derivative q_dot = 0.5*omega*q.
func integrateRotation(b *body.RigidBody, dt float32) {
	rotateByAngle(b, vecmath.Scale(b.AngularVelocity, dt))
}

// rotateByAngle composes b.Rotation with the small-angle quaternion
// corresponding to the rotation vector theta.
func rotateByAngle(b *body.RigidBody, theta vecmath.Vector3) {
	if theta == vecmath.Zero() {
		return
	}
	omega := mgl32.Quat{W: 0, V: theta}
	dq := omega.Mul(b.Rotation).Scale(0.5)
	b.Rotation = b.Rotation.Add(dq).Normalize()
}
