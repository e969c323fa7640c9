// Package geom provides the axis-aligned cells and the oriented viewport used by the quadtree.
package geom

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/galaxyquad/pkg/math"
)

// ErrInvalidExtent is returned when a box has a non-positive half-extent.
var ErrInvalidExtent = errors.New("half-extents must be positive")

// Quadrant indices. Bit 0 selects +X, bit 1 selects -Y.
const (
	NW = iota
	NE
	SW
	SE
)

// AABB is an axis-aligned box given by its center and half-extents.
type AABB struct {
	Center math.Vec2
	Half   math.Vec2
}

// NewAABB creates a box centered at (cx, cy) with half-extents (hw, hh).
func NewAABB(cx, cy, hw, hh float64) (AABB, error) {
	if !(hw > 0) || !(hh > 0) {
		return AABB{}, fmt.Errorf("aabb (%g, %g): %w", hw, hh, ErrInvalidExtent)
	}
	return AABB{Center: math.Vec2{X: cx, Y: cy}, Half: math.Vec2{X: hw, Y: hh}}, nil
}

// Min returns the lower-left corner.
func (b AABB) Min() math.Vec2 { return b.Center.Sub(b.Half) }

// Max returns the upper-right corner.
func (b AABB) Max() math.Vec2 { return b.Center.Add(b.Half) }

// Width returns the full width.
func (b AABB) Width() float64 { return 2 * b.Half.X }

// Height returns the full height.
func (b AABB) Height() float64 { return 2 * b.Half.Y }

// Area returns width * height.
func (b AABB) Area() float64 { return b.Width() * b.Height() }

// Corners returns the four corners starting at the minimum, clockwise in a y-up frame.
func (b AABB) Corners() [4]math.Vec2 {
	lo, hi := b.Min(), b.Max()
	return [4]math.Vec2{
		{X: lo.X, Y: lo.Y},
		{X: lo.X, Y: hi.Y},
		{X: hi.X, Y: hi.Y},
		{X: hi.X, Y: lo.Y},
	}
}

// Quadrants splits the box into NW, NE, SW, SE children, in that order.
func (b AABB) Quadrants() [4]AABB {
	q := b.Half.Scale(0.5)
	cx, cy := b.Center.X, b.Center.Y
	return [4]AABB{
		NW: {Center: math.Vec2{X: cx - q.X, Y: cy + q.Y}, Half: q},
		NE: {Center: math.Vec2{X: cx + q.X, Y: cy + q.Y}, Half: q},
		SW: {Center: math.Vec2{X: cx - q.X, Y: cy - q.Y}, Half: q},
		SE: {Center: math.Vec2{X: cx + q.X, Y: cy - q.Y}, Half: q},
	}
}

// ContainsPoint reports whether p lies inside the box, edges included.
func (b AABB) ContainsPoint(p math.Vec2) bool {
	return gomath.Abs(p.X-b.Center.X) <= b.Half.X &&
		gomath.Abs(p.Y-b.Center.Y) <= b.Half.Y
}

// Overlaps reports whether the closed boxes share at least one point.
func (b AABB) Overlaps(other AABB) bool {
	lo, hi := b.Min(), b.Max()
	olo, ohi := other.Min(), other.Max()
	return !(hi.X < olo.X || ohi.X < lo.X || hi.Y < olo.Y || ohi.Y < lo.Y)
}

// ContainsBox reports whether other lies entirely inside b.
func (b AABB) ContainsBox(other AABB) bool {
	lo, hi := b.Min(), b.Max()
	olo, ohi := other.Min(), other.Max()
	return olo.X >= lo.X && ohi.X <= hi.X && olo.Y >= lo.Y && ohi.Y <= hi.Y
}
