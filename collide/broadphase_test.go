package collide

import (
	"testing"

	"github.com/rohitwtbs/charvak/body"
	"github.com/rohitwtbs/charvak/vecmath"
)

func TestBroadPhaseSkipsBothStatic(t *testing.T) {
	a := planeAt(vecmath.New(0, 1, 0), 0)
	b := planeAt(vecmath.New(1, 0, 0), 0)

	pairs := BroadPhase([]*body.RigidBody{a, b})
	if len(pairs) != 0 {
		t.Errorf("got %d pairs, want 0 (both static)", len(pairs))
	}
}

func TestBroadPhaseSkipsBothSleeping(t *testing.T) {
	a := sphereAt(vecmath.New(0, 0, 0), 1)
	b := sphereAt(vecmath.New(0.5, 0, 0), 1)
	a.SetSleeping(true)
	b.SetSleeping(true)

	pairs := BroadPhase([]*body.RigidBody{a, b})
	if len(pairs) != 0 {
		t.Errorf("got %d pairs, want 0 (both sleeping)", len(pairs))
	}
}

func TestBroadPhaseFindsOverlap(t *testing.T) {
	a := sphereAt(vecmath.New(0, 0, 0), 1)
	b := sphereAt(vecmath.New(1.5, 0, 0), 1)
	c := sphereAt(vecmath.New(100, 0, 0), 1)

	pairs := BroadPhase([]*body.RigidBody{a, b, c})
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].A != a || pairs[0].B != b {
		t.Errorf("got pair %v/%v, want a/b", pairs[0].A.ID(), pairs[0].B.ID())
	}
}
