package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Sub(t *testing.T) {
	got := Vec2{5, 7}.Sub(Vec2{2, 3})
	want := Vec2{3, 4}
	if got != want {
		t.Errorf("Vec2.Sub() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
	if got := v.LengthSq(); got != 25 {
		t.Errorf("Vec2.LengthSq() = %v, want 25", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec2{}).Normalize(); z != (Vec2{}) {
		t.Errorf("zero Normalize() = %v, want zero", z)
	}
}

func TestVec2Perp(t *testing.T) {
	v := Vec2{1, 0}
	if got := v.Perp(); got != (Vec2{0, 1}) {
		t.Errorf("Vec2.Perp() = %v, want (0, 1)", got)
	}
	if d := v.Dot(v.Perp()); d != 0 {
		t.Errorf("Perp not orthogonal: dot = %v", d)
	}
}

func TestVec2Rotate(t *testing.T) {
	got := Vec2{1, 0}.Rotate(math.Pi / 2)
	if abs(got.X) > 1e-12 || abs(got.Y-1) > 1e-12 {
		t.Errorf("Rotate(pi/2) = %v, want (0, 1)", got)
	}

	u := FromAngle(math.Pi / 6)
	if abs(u.Length()-1) > 1e-12 {
		t.Errorf("FromAngle length = %v, want 1", u.Length())
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
