package geom

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/galaxyquad/pkg/math"
)

func box(cx, cy, hw, hh float64) AABB {
	return AABB{Center: math.Vec2{X: cx, Y: cy}, Half: math.Vec2{X: hw, Y: hh}}
}

func TestNewAABBRejectsBadExtents(t *testing.T) {
	tests := []struct {
		name   string
		hw, hh float64
	}{
		{"zero width", 0, 1},
		{"negative height", 1, -1},
		{"nan", gomath.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAABB(0, 0, tt.hw, tt.hh); !errors.Is(err, ErrInvalidExtent) {
				t.Errorf("NewAABB() error = %v, want ErrInvalidExtent", err)
			}
			if _, err := NewOBB(0, 0, tt.hw, tt.hh, 0); !errors.Is(err, ErrInvalidExtent) {
				t.Errorf("NewOBB() error = %v, want ErrInvalidExtent", err)
			}
		})
	}
}

func TestQuadrantsPartition(t *testing.T) {
	parents := []AABB{
		box(0, 0, 512, 512),
		box(-3.5, 7.25, 10, 4),
		box(100, -100, 0.125, 64),
	}
	for _, p := range parents {
		qs := p.Quadrants()

		var area float64
		for i, q := range qs {
			area += q.Area()
			if q.Half != p.Half.Scale(0.5) {
				t.Errorf("quadrant %d half = %v, want %v", i, q.Half, p.Half.Scale(0.5))
			}
			if !p.ContainsBox(q) {
				t.Errorf("quadrant %d %v escapes parent %v", i, q, p)
			}
		}
		if area != p.Area() {
			t.Errorf("quadrant area sum = %v, want %v", area, p.Area())
		}

		// Interiors are disjoint: shrink each child a little and check pairwise overlap.
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				a := AABB{Center: qs[i].Center, Half: qs[i].Half.Scale(0.999)}
				b := AABB{Center: qs[j].Center, Half: qs[j].Half.Scale(0.999)}
				if a.Overlaps(b) {
					t.Errorf("quadrants %d and %d overlap", i, j)
				}
			}
		}
	}
}

func TestQuadrantOrder(t *testing.T) {
	qs := box(0, 0, 4, 4).Quadrants()
	want := [4]math.Vec2{
		NW: {X: -2, Y: 2},
		NE: {X: 2, Y: 2},
		SW: {X: -2, Y: -2},
		SE: {X: 2, Y: -2},
	}
	for i := range qs {
		if qs[i].Center != want[i] {
			t.Errorf("quadrant %d center = %v, want %v", i, qs[i].Center, want[i])
		}
		// bit 0 is the x sign, bit 1 the y sign
		if (i&1 == 1) != (qs[i].Center.X > 0) {
			t.Errorf("quadrant %d: x sign does not match bit 0", i)
		}
		if (i>>1&1 == 1) != (qs[i].Center.Y < 0) {
			t.Errorf("quadrant %d: y sign does not match bit 1", i)
		}
	}
}

func TestAABBCorners(t *testing.T) {
	got := box(1, 2, 3, 4).Corners()
	want := [4]math.Vec2{{X: -2, Y: -2}, {X: -2, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: -2}}
	if got != want {
		t.Errorf("Corners() = %v, want %v", got, want)
	}
}

func TestOBBAxisAlignedAgreesWithAABB(t *testing.T) {
	view := box(3, -2, 5, 3)
	obb := OBB{Center: view.Center, Half: view.Half}

	for x := -12.0; x <= 12; x += 0.5 {
		for y := -10.0; y <= 10; y += 0.5 {
			for _, h := range []float64{0.25, 1, 2.5} {
				b := box(x, y, h, h)
				if got, want := obb.IntersectsAABB(b), view.Overlaps(b); got != want {
					t.Fatalf("IntersectsAABB(%v) = %v, want %v", b, got, want)
				}
				if got, want := obb.ContainsAABB(b), view.ContainsBox(b); got != want {
					t.Fatalf("ContainsAABB(%v) = %v, want %v", b, got, want)
				}
			}
		}
	}
}

func TestOBBRotatedSquare(t *testing.T) {
	const h = 10.0
	diamond := OBB{Half: math.Vec2{X: h, Y: h}, Theta: gomath.Pi / 4}

	tests := []struct {
		d    float64
		want bool
	}{
		{h * gomath.Sqrt2 * 1.05, false},
		{20, false},
		{h / gomath.Sqrt2 * 0.95, true},
		{0, true},
	}
	for _, tt := range tests {
		small := box(tt.d, 0, 0.01, 0.01)
		if got := diamond.IntersectsAABB(small); got != tt.want {
			t.Errorf("IntersectsAABB(d=%v) = %v, want %v", tt.d, got, tt.want)
		}
		if got := diamond.IntersectsAABB(box(-tt.d, 0, 0.01, 0.01)); got != tt.want {
			t.Errorf("IntersectsAABB(d=-%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestOBBRotatedCornerGap(t *testing.T) {
	// A box sitting in the notch next to a diamond tip overlaps the diamond's bounds but not the diamond.
	diamond := OBB{Half: math.Vec2{X: 10, Y: 10}, Theta: gomath.Pi / 4}
	b := box(11, 11, 2, 2)
	if !diamond.Bounds().Overlaps(b) {
		t.Fatal("expected bounds overlap")
	}
	if diamond.IntersectsAABB(b) {
		t.Error("IntersectsAABB() = true, want false for box in the corner gap")
	}
}

func TestOBBLocalWorldRoundTrip(t *testing.T) {
	o := OBB{Center: math.Vec2{X: 10, Y: 96}, Half: math.Vec2{X: 90, Y: 160}, Theta: 30 * gomath.Pi / 180}
	points := []math.Vec2{{X: 0, Y: 0}, {X: 10, Y: 96}, {X: -300, Y: 42}, {X: 512, Y: -512}}
	for _, p := range points {
		back := o.ToWorld(o.ToLocal(p))
		if p.Distance(back) > 1e-9 {
			t.Errorf("round trip %v -> %v", p, back)
		}
	}

	// Corners land on the local extents.
	for i, c := range o.Corners() {
		l := o.ToLocal(c)
		if gomath.Abs(gomath.Abs(l.X)-90) > 1e-9 || gomath.Abs(gomath.Abs(l.Y)-160) > 1e-9 {
			t.Errorf("corner %d local = %v, want (+-90, +-160)", i, l)
		}
		if !o.Bounds().ContainsPoint(c) {
			t.Errorf("corner %d outside Bounds()", i)
		}
	}
}

func TestOBBContainsPoint(t *testing.T) {
	o := OBB{Half: math.Vec2{X: 4, Y: 1}, Theta: gomath.Pi / 2}
	if !o.ContainsPoint(math.Vec2{X: 0, Y: 3.5}) {
		t.Error("point along rotated long axis should be inside")
	}
	if o.ContainsPoint(math.Vec2{X: 3.5, Y: 0}) {
		t.Error("point along rotated short axis should be outside")
	}
}
