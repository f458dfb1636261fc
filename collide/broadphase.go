// Package collide implements the broad-phase AABB culling and narrow-phase
// contact generation for sphere/AABB/plane pairs described in spec.md §4.4.
//
// There is deliberately no spatial acceleration structure here (spec.md §1
// Non-goals: "No spatial acceleration structure beyond brute O(n²) broad-
// phase using axis-aligned bounding boxes") — the teacher's SpatialGrid is
// not carried into this package; see DESIGN.md.
package collide

import "github.com/rohitwtbs/charvak/body"

// Pair is an unordered pair of bodies whose AABBs overlap.
type Pair struct {
	A, B *body.RigidBody
}

// BroadPhase returns every pair (i<j) of bodies whose AABBs overlap,
// skipping pairs that are both static or both sleeping. O(n²), matching
// spec.md §4.4 and the teacher's collision.go BroadPhase.
func BroadPhase(bodies []*body.RigidBody) []Pair {
	pairs := make([]Pair, 0)
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if a.IsStatic() && b.IsStatic() {
				continue
			}
			if a.IsSleeping() && b.IsSleeping() {
				continue
			}
			if a.AABB().Overlaps(b.AABB()) {
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
	}
	return pairs
}
