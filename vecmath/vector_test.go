package vecmath

import "testing"

func TestNormalizeDegenerate(t *testing.T) {
	got := Normalize(New(0, 0, 0))
	if got != Zero() {
		t.Errorf("Normalize(zero) = %v, want zero vector", got)
	}

	tiny := New(1e-8, 0, 0)
	if got := Normalize(tiny); got != Zero() {
		t.Errorf("Normalize(tiny) = %v, want zero vector", got)
	}
}

func TestNormalizeScaleInvariant(t *testing.T) {
	v := New(3, 4, 0)
	for _, k := range []float32{1, 2, 0.5, 100} {
		a := Normalize(v)
		b := Normalize(Scale(v, k))
		if !ApproxEqual(a, b, 1e-5) {
			t.Errorf("Normalize(scale(v,%v)) = %v, want %v", k, b, a)
		}
	}
}

func TestCrossAnticommutative(t *testing.T) {
	a := New(1, 0, 0)
	b := New(0, 1, 0)
	c := Cross(a, b)
	d := Cross(b, a)
	if !ApproxEqual(c, Negate(d), 1e-6) {
		t.Errorf("cross(a,b) = %v, want -cross(b,a) = %v", c, Negate(d))
	}
	if !ApproxEqual(c, New(0, 0, 1), 1e-6) {
		t.Errorf("cross(x,y) = %v, want (0,0,1)", c)
	}
}

func TestDotCommutative(t *testing.T) {
	a := New(1, 2, 3)
	b := New(-4, 5, 0.5)
	if Dot(a, b) != Dot(b, a) {
		t.Errorf("dot(a,b) != dot(b,a)")
	}
}

func TestDistance(t *testing.T) {
	a := New(0, 0, 0)
	b := New(3, 4, 0)
	if got := Distance(a, b); abs(got-5) > 1e-6 {
		t.Errorf("Distance = %v, want 5", got)
	}
}
