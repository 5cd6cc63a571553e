package vmath

import (
	"math"
	"testing"
)

func TestV3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(-1, 0.5, 2)

	if got := V3Add(a, b); got != V3(0, 2.5, 5) {
		t.Errorf("V3Add = %v", got)
	}
	if got := V3Sub(a, b); got != V3(2, 1.5, 1) {
		t.Errorf("V3Sub = %v", got)
	}
	if got := V3Scale(a, 2); got != V3(2, 4, 6) {
		t.Errorf("V3Scale = %v", got)
	}
	if got := V3AddScaled(a, b, 2); got != V3(-1, 3, 7) {
		t.Errorf("V3AddScaled = %v", got)
	}
	if got := V3Dot(a, b); got != 6 {
		t.Errorf("V3Dot = %v, want 6", got)
	}
}

func TestV3Magnitude(t *testing.T) {
	v := V3(3, 4, 12)
	if got := V3Mag(v); got != 13 {
		t.Errorf("V3Mag = %v, want 13", got)
	}
	if got := V3Dist(V3(1, 1, 1), V3(1, 1, 3)); got != 2 {
		t.Errorf("V3Dist = %v, want 2", got)
	}
}

func TestV3Normalize(t *testing.T) {
	n := V3Normalize(V3(0, 5, 0))
	if n != V3(0, 1, 0) {
		t.Errorf("V3Normalize = %v", n)
	}

	if z := V3Normalize(Vec3{}); !z.IsZero() {
		t.Errorf("zero vector normalized to %v", z)
	}

	n = V3Normalize(V3(1, 2, 3))
	if math.Abs(V3Mag(n)-1) > 1e-12 {
		t.Errorf("normalized magnitude = %v", V3Mag(n))
	}
}

func TestV3ApproxEqual(t *testing.T) {
	if !V3ApproxEqual(V3(1, 2, 3), V3(1.0000001, 2, 2.9999999), 1e-6) {
		t.Error("expected vectors within eps to compare equal")
	}
	if V3ApproxEqual(V3(1, 2, 3), V3(1, 2, 3.1), 1e-6) {
		t.Error("expected vectors outside eps to differ")
	}
}
