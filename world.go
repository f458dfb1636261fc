// Package charvak is the top-level package of this module. World owns the
// bodies and contact buffer and orchestrates the per-substep pipeline —
// wake, forces, integrate, detect, resolve, damp — described in spec.md
// §4.6. Everything beneath it (vecmath, body, integrate, collide, respond)
// is a leaf or near-leaf package with no knowledge of World.
package charvak

import (
	"log/slog"

	"github.com/rohitwtbs/charvak/body"
	"github.com/rohitwtbs/charvak/collide"
	"github.com/rohitwtbs/charvak/integrate"
	"github.com/rohitwtbs/charvak/respond"
	"github.com/rohitwtbs/charvak/vecmath"
)

// Capacity and tuning constants, per spec.md §6.
const (
	MaxBodies     = 1000
	MaxCollisions = 2000
	VectorEpsilon = vecmath.Epsilon

	wakeSpeedSq  = 0.1  // spec.md §4.6: |v|^2 at or above this can wake sleepers nearby.
	wakeRadius   = 5.0  // spec.md §4.6: Euclidean wake radius.
	sleepSpeedSq = 0.01 // spec.md §4.3: both |v|^2 and |w|^2 below this puts a body to sleep.
)

// Method is the integration scheme selector, re-exported from integrate
// under the names spec.md §6 enumerates.
type Method = integrate.Method

const (
	Euler  = integrate.Euler
	Verlet = integrate.Verlet
	RK4    = integrate.RK4
)

// World is a bounded population of rigid bodies advanced through gravity,
// integration, collision detection and response, damping and sleeping.
type World struct {
	bodies   []*body.RigidBody
	contacts []collide.Contact

	Gravity           vecmath.Vector3
	IntegrationMethod Method
	Paused            bool
	SubIterations     int

	timestep       float32
	linearDamping  float32
	angularDamping float32
	timeScale      float32

	Events Events

	collisionCount  int
	checksAttempted int

	integrator *integrate.Integrator
	log        *slog.Logger
}

// New returns a World configured with spec.md §3's documented defaults.
func New() *World {
	return &World{
		bodies:            make([]*body.RigidBody, 0, MaxBodies),
		contacts:          make([]collide.Contact, 0, MaxCollisions),
		Gravity:           vecmath.New(0, -9.81, 0),
		timestep:          1.0 / 60.0,
		IntegrationMethod: Verlet,
		linearDamping:     0.01,
		angularDamping:    0.05,
		timeScale:         1,
		SubIterations:     1,
		Events:            newEvents(),
		integrator:        integrate.New(),
		log:               slog.Default(),
	}
}

// AddBody inserts b and returns its id, or -1 if the world is already at
// MaxBodies capacity.
func (w *World) AddBody(b *body.RigidBody) int {
	if b == nil {
		return -1
	}
	if len(w.bodies) >= MaxBodies {
		w.log.Warn("charvak: body capacity exceeded", "max", MaxBodies)
		return -1
	}
	w.bodies = append(w.bodies, b)
	return b.ID()
}

// RemoveBody removes the body with the given id, compacting the array in
// place, and reports whether a body was found.
func (w *World) RemoveBody(id int) bool {
	for i, b := range w.bodies {
		if b.ID() == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			w.Events.forget(b)
			return true
		}
	}
	return false
}

// GetBody returns the body with the given id, or nil if none matches.
// Lookup is a linear scan, per spec.md §4.6.
func (w *World) GetBody(id int) *body.RigidBody {
	for _, b := range w.bodies {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// Clear empties the world of all bodies and contacts.
func (w *World) Clear() {
	w.bodies = w.bodies[:0]
	w.contacts = w.contacts[:0]
	w.collisionCount = 0
	w.checksAttempted = 0
}

// Timestep returns the world's configured fixed timestep, in seconds.
func (w *World) Timestep() float32 { return w.timestep }

// SetTimestep sets the fixed timestep Step() advances by. A non-positive dt
// is rejected and leaves the previous timestep in place, per spec.md §3.
func (w *World) SetTimestep(dt float32) {
	if dt <= 0 {
		return
	}
	w.timestep = dt
}

// LinearDamping returns the world's linear damping factor, in [0,1].
func (w *World) LinearDamping() float32 { return w.linearDamping }

// AngularDamping returns the world's angular damping factor, in [0,1].
func (w *World) AngularDamping() float32 { return w.angularDamping }

// SetDamping sets the linear and angular damping factors applied every
// substep, each clamped to [0,1] per spec.md §3.
func (w *World) SetDamping(linear, angular float32) {
	w.linearDamping = clamp01(linear)
	w.angularDamping = clamp01(angular)
}

// TimeScale returns the world's time-scale multiplier.
func (w *World) TimeScale() float32 { return w.timeScale }

// SetTimeScale sets the multiplier applied to dt before it's split into
// substeps. A negative scale is rejected and leaves the previous value in
// place, per spec.md §3.
func (w *World) SetTimeScale(scale float32) {
	if scale < 0 {
		return
	}
	w.timeScale = scale
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// BodyCount returns the number of bodies currently in the world.
func (w *World) BodyCount() int { return len(w.bodies) }

// CollisionCount returns the number of contacts recorded in the most
// recently completed substep.
func (w *World) CollisionCount() int { return w.collisionCount }

// ChecksAttempted returns the number of narrow-phase tests attempted in the
// most recently completed substep.
func (w *World) ChecksAttempted() int { return w.checksAttempted }

// TotalKineticEnergy sums every body's linear kinetic energy.
func (w *World) TotalKineticEnergy() float32 {
	var total float32
	for _, b := range w.bodies {
		total += b.KineticEnergy()
	}
	return total
}

// Step advances the world by its configured fixed timestep.
func (w *World) Step() {
	w.StepWithDT(w.timestep)
}

// StepWithDT advances the world by dt seconds, split into SubIterations
// equal substeps. A no-op if the world is paused or dt <= 0.
func (w *World) StepWithDT(dt float32) {
	if w.Paused || dt <= 0 {
		return
	}

	scaledDT := dt * w.timeScale
	subIterations := w.SubIterations
	if subIterations < 1 {
		subIterations = 1
	}
	subDT := scaledDT / float32(subIterations)

	for i := 0; i < subIterations; i++ {
		w.wake()
		w.applyForces()
		w.integrateBodies(subDT)
		w.detectCollisions()
		w.resolveCollisions()
		w.dampAndSleep()
	}

	w.Events.flush(w.bodies)
}

// wake wakes every sleeping body within wakeRadius of a moving, awake,
// non-static body (spec.md §4.6 step 1).
func (w *World) wake() {
	for _, mover := range w.bodies {
		if mover.IsStatic() || mover.IsSleeping() {
			continue
		}
		if vecmath.LengthSq(mover.Velocity) < wakeSpeedSq {
			continue
		}
		for _, sleeper := range w.bodies {
			if !sleeper.IsSleeping() {
				continue
			}
			if vecmath.Distance(mover.Position, sleeper.Position) < wakeRadius {
				sleeper.SetSleeping(false)
			}
		}
	}
}

// applyForces accumulates gravity into every non-static, non-sleeping body.
func (w *World) applyForces() {
	for _, b := range w.bodies {
		if b.IsStatic() || b.IsSleeping() {
			continue
		}
		b.AddForce(vecmath.Scale(w.Gravity, b.Mass()))
	}
}

// integrateBodies applies the configured integration method to every
// non-static body; the integrator itself skips sleeping bodies.
func (w *World) integrateBodies(dt float32) {
	for _, b := range w.bodies {
		if b.IsStatic() {
			continue
		}
		w.integrator.Body(b, dt, w.IntegrationMethod)
	}
}

// detectCollisions runs broad then narrow phase over every candidate pair,
// recording hits into the bounded contact buffer. Contacts beyond
// MaxCollisions are dropped, per spec.md §7; both bodies of a live contact
// have their sleeping flag cleared regardless of whether they end up
// resolved (trigger pairs still wake and still raise events).
func (w *World) detectCollisions() {
	w.collisionCount = 0
	w.checksAttempted = 0
	w.contacts = w.contacts[:0]

	for _, pair := range collide.BroadPhase(w.bodies) {
		w.checksAttempted++
		c := collide.NarrowPhase(pair.A, pair.B)
		if !c.HasCollision {
			continue
		}

		pair.A.SetSleeping(false)
		pair.B.SetSleeping(false)
		w.Events.recordActive(pair.A, pair.B)

		if len(w.contacts) >= MaxCollisions {
			w.log.Warn("charvak: contact buffer overflow, dropping contact", "max", MaxCollisions)
			continue
		}
		w.contacts = append(w.contacts, c)
		w.collisionCount++
	}
}

// resolveCollisions runs the response algorithm over every recorded
// contact, in insertion order. Trigger contacts are excluded from physical
// resolution (SPEC_FULL.md §5.2) though they were already recorded as
// events by detectCollisions.
func (w *World) resolveCollisions() {
	for _, c := range w.contacts {
		if c.A.IsTrigger || c.B.IsTrigger {
			continue
		}
		respond.Resolve(c)
	}
}

// dampAndSleep applies linear/angular damping and the sleep check to every
// awake, non-static body (spec.md §4.3).
func (w *World) dampAndSleep() {
	for _, b := range w.bodies {
		if b.IsStatic() || b.IsSleeping() {
			continue
		}
		b.Velocity = vecmath.Scale(b.Velocity, 1-w.linearDamping)
		b.AngularVelocity = vecmath.Scale(b.AngularVelocity, 1-w.angularDamping)

		if vecmath.LengthSq(b.Velocity) < sleepSpeedSq && vecmath.LengthSq(b.AngularVelocity) < sleepSpeedSq {
			b.SetSleeping(true)
		}
	}
}
