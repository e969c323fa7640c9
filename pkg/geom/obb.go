package geom

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/galaxyquad/pkg/math"
)

// OBB is a rectangle rotated counter-clockwise by Theta radians about its center.
// The quadtree uses it as the viewport.
type OBB struct {
	Center math.Vec2
	Half   math.Vec2
	Theta  float64
}

// NewOBB creates an oriented box. Degenerate viewports can still be built as literals.
func NewOBB(cx, cy, hw, hh, theta float64) (OBB, error) {
	if !(hw > 0) || !(hh > 0) {
		return OBB{}, fmt.Errorf("obb (%g, %g): %w", hw, hh, ErrInvalidExtent)
	}
	return OBB{Center: math.Vec2{X: cx, Y: cy}, Half: math.Vec2{X: hw, Y: hh}, Theta: theta}, nil
}

// Axes returns the local +X (u) and +Y (v) unit vectors in world space.
func (o OBB) Axes() (u, v math.Vec2) {
	c, s := gomath.Cos(o.Theta), gomath.Sin(o.Theta)
	return math.Vec2{X: c, Y: s}, math.Vec2{X: -s, Y: c}
}

// Corners returns c-u-v, c-u+v, c+u+v, c+u-v where u and v are the scaled axes.
func (o OBB) Corners() [4]math.Vec2 {
	u, v := o.Axes()
	du := u.Scale(o.Half.X)
	dv := v.Scale(o.Half.Y)
	c := o.Center
	return [4]math.Vec2{
		c.Sub(du).Sub(dv),
		c.Sub(du).Add(dv),
		c.Add(du).Add(dv),
		c.Add(du).Sub(dv),
	}
}

// ToLocal maps a world point into the box frame: translate, then rotate by -Theta.
func (o OBB) ToLocal(p math.Vec2) math.Vec2 {
	d := p.Sub(o.Center)
	c, s := gomath.Cos(o.Theta), gomath.Sin(o.Theta)
	return math.Vec2{
		X: c*d.X + s*d.Y,
		Y: -s*d.X + c*d.Y,
	}
}

// ToWorld is the inverse of ToLocal.
func (o OBB) ToWorld(l math.Vec2) math.Vec2 {
	c, s := gomath.Cos(o.Theta), gomath.Sin(o.Theta)
	return math.Vec2{
		X: c*l.X - s*l.Y + o.Center.X,
		Y: s*l.X + c*l.Y + o.Center.Y,
	}
}

// Bounds returns the axis-aligned box enclosing the rotated rectangle.
func (o OBB) Bounds() AABB {
	cs := o.Corners()
	lo, hi := cs[0], cs[0]
	for _, p := range cs[1:] {
		lo.X = gomath.Min(lo.X, p.X)
		lo.Y = gomath.Min(lo.Y, p.Y)
		hi.X = gomath.Max(hi.X, p.X)
		hi.Y = gomath.Max(hi.Y, p.Y)
	}
	return AABB{
		Center: math.Vec2{X: 0.5 * (lo.X + hi.X), Y: 0.5 * (lo.Y + hi.Y)},
		Half:   math.Vec2{X: 0.5 * (hi.X - lo.X), Y: 0.5 * (hi.Y - lo.Y)},
	}
}

// ContainsPoint projects p onto the local axes and checks both extents, edges included.
func (o OBB) ContainsPoint(p math.Vec2) bool {
	u, v := o.Axes()
	d := p.Sub(o.Center)
	return gomath.Abs(d.Dot(u)) <= o.Half.X && gomath.Abs(d.Dot(v)) <= o.Half.Y
}

// ContainsAABB reports whether all four corners of b are inside o.
func (o OBB) ContainsAABB(b AABB) bool {
	for _, p := range b.Corners() {
		if !o.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// IntersectsAABB runs the separating axis test on the two world axes and the two box axes.
// Touching shapes count as intersecting.
func (o OBB) IntersectsAABB(b AABB) bool {
	u, v := o.Axes()
	axes := [4]math.Vec2{{X: 1, Y: 0}, {X: 0, Y: 1}, u, v}
	for _, axis := range axes {
		ac := b.Center.Dot(axis)
		ar := b.Half.X*gomath.Abs(axis.X) + b.Half.Y*gomath.Abs(axis.Y)

		oc := o.Center.Dot(axis)
		or := o.Half.X*gomath.Abs(u.Dot(axis)) + o.Half.Y*gomath.Abs(v.Dot(axis))

		if ac+ar < oc-or || oc+or < ac-ar {
			return false
		}
	}
	return true
}
