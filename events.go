package charvak

import (
	"unsafe"

	"github.com/rohitwtbs/charvak/body"
)

// EventType identifies one of the eight events World can emit. Grounded on
// the teacher's trigger.go; adapted here for trigger bodies and sleep/wake
// transitions (SPEC_FULL.md §5.1/§5.2, a supplemented feature — spec.md is
// silent on eventing, and this does not remove anything spec.md names).
type EventType uint8

const (
	TriggerEnter EventType = iota
	CollisionEnter
	TriggerStay
	CollisionStay
	TriggerExit
	CollisionExit
	OnSleep
	OnWake
)

// Event is implemented by every concrete event struct below.
type Event interface {
	Type() EventType
}

type TriggerEnterEvent struct{ BodyA, BodyB *body.RigidBody }

func (e TriggerEnterEvent) Type() EventType { return TriggerEnter }

type TriggerStayEvent struct{ BodyA, BodyB *body.RigidBody }

func (e TriggerStayEvent) Type() EventType { return TriggerStay }

type TriggerExitEvent struct{ BodyA, BodyB *body.RigidBody }

func (e TriggerExitEvent) Type() EventType { return TriggerExit }

type CollisionEnterEvent struct{ BodyA, BodyB *body.RigidBody }

func (e CollisionEnterEvent) Type() EventType { return CollisionEnter }

type CollisionStayEvent struct{ BodyA, BodyB *body.RigidBody }

func (e CollisionStayEvent) Type() EventType { return CollisionStay }

type CollisionExitEvent struct{ BodyA, BodyB *body.RigidBody }

func (e CollisionExitEvent) Type() EventType { return CollisionExit }

type SleepEvent struct{ Body *body.RigidBody }

func (e SleepEvent) Type() EventType { return OnSleep }

type WakeEvent struct{ Body *body.RigidBody }

func (e WakeEvent) Type() EventType { return OnWake }

// EventListener is a callback registered with Events.Subscribe.
type EventListener func(event Event)

type pairKey struct {
	bodyA, bodyB *body.RigidBody
}

// makePairKey normalizes (a, b) so the pair compares equal regardless of
// dispatch order, by ordering on pointer identity.
func makePairKey(a, b *body.RigidBody) pairKey {
	if uintptr(unsafe.Pointer(b)) < uintptr(unsafe.Pointer(a)) {
		a, b = b, a
	}
	return pairKey{bodyA: a, bodyB: b}
}

// Events tracks active contact pairs and sleep state across steps to derive
// Enter/Stay/Exit and Sleep/Wake transitions, and dispatches them to
// subscribed listeners on flush.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
	sleepStates         map[*body.RigidBody]bool
}

func newEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
		sleepStates:         make(map[*body.RigidBody]bool),
	}
}

// Subscribe registers listener to be called whenever an event of the given
// type is flushed.
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordActive marks (a, b) as an active contact pair for this step. Called
// by World.detectCollisions for every narrow-phase hit, trigger or not.
func (e *Events) recordActive(a, b *body.RigidBody) {
	e.currentActivePairs[makePairKey(a, b)] = true
}

// forget drops every trace of b, called from World.RemoveBody so a removed
// body can't leak a stale Exit/Wake event next flush.
func (e *Events) forget(b *body.RigidBody) {
	delete(e.sleepStates, b)
	for pair := range e.previousActivePairs {
		if pair.bodyA == b || pair.bodyB == b {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.bodyA == b || pair.bodyB == b {
			delete(e.currentActivePairs, pair)
		}
	}
}

func (e *Events) processCollisionEvents() {
	for pair := range e.currentActivePairs {
		if pair.bodyA.IsSleeping() && pair.bodyB.IsSleeping() {
			continue
		}
		isTrigger := pair.bodyA.IsTrigger || pair.bodyB.IsTrigger

		if e.previousActivePairs[pair] {
			if isTrigger {
				e.buffer = append(e.buffer, TriggerStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			}
		} else {
			if isTrigger {
				e.buffer = append(e.buffer, TriggerEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			}
		}
	}

	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			isTrigger := pair.bodyA.IsTrigger || pair.bodyB.IsTrigger
			if isTrigger {
				e.buffer = append(e.buffer, TriggerExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			}
		}
	}

	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

func (e *Events) processSleepEvents(bodies []*body.RigidBody) {
	for _, b := range bodies {
		trackedState, exists := e.sleepStates[b]
		if !exists {
			e.sleepStates[b] = b.IsSleeping()
			continue
		}

		if !trackedState && b.IsSleeping() {
			e.buffer = append(e.buffer, SleepEvent{Body: b})
			e.sleepStates[b] = true
		} else if trackedState && !b.IsSleeping() {
			e.buffer = append(e.buffer, WakeEvent{Body: b})
			e.sleepStates[b] = false
		}
	}
}

// flush derives this step's Enter/Stay/Exit and Sleep/Wake events and
// dispatches everything buffered to subscribed listeners.
func (e *Events) flush(bodies []*body.RigidBody) {
	e.processSleepEvents(bodies)
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
