// Package camera turns pan, zoom and rotate input into quadtree viewports.
package camera

import (
	gomath "math"

	"github.com/Faultbox/galaxyquad/pkg/geom"
	"github.com/Faultbox/galaxyquad/pkg/math"
)

// Camera is a 2D camera looking down on the world plane.
type Camera struct {
	Center   math.Vec2
	Rotation float64 // Counter-clockwise, radians
	Zoom     float64 // 2 shows half as much world as 1

	// Half-size of the view in world units at zoom 1
	HalfWidth  float64
	HalfHeight float64

	// Constraints
	MinZoom float64
	MaxZoom float64

	// Sensitivity
	ZoomSensitivity   float64
	RotateSensitivity float64
	PanSensitivity    float64
}

// New creates a camera with the given view half-size at zoom 1.
func New(halfWidth, halfHeight float64) *Camera {
	return &Camera{
		Zoom:              1,
		HalfWidth:         halfWidth,
		HalfHeight:        halfHeight,
		MinZoom:           1e-3,
		MaxZoom:           1e9,
		ZoomSensitivity:   0.1,
		RotateSensitivity: 0.005,
		PanSensitivity:    0.01,
	}
}

// Viewport returns the oriented rectangle the camera currently sees.
func (c *Camera) Viewport() geom.OBB {
	return geom.OBB{
		Center: c.Center,
		Half:   math.Vec2{X: c.HalfWidth / c.Zoom, Y: c.HalfHeight / c.Zoom},
		Theta:  c.Rotation,
	}
}

// HandleZoom scales the zoom multiplicatively; positive delta zooms in.
func (c *Camera) HandleZoom(delta float64) {
	c.SetZoom(c.Zoom * gomath.Exp(delta*c.ZoomSensitivity))
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(z float64) {
	c.Zoom = gomath.Min(c.MaxZoom, gomath.Max(c.MinZoom, z))
}

// HandleRotate rotates the view based on a drag delta.
func (c *Camera) HandleRotate(deltaX float64) {
	c.Rotation -= deltaX * c.RotateSensitivity
}

// HandleMovement pans along the camera's own axes. Speed scales with the visible area.
func (c *Camera) HandleMovement(forward, right float64) {
	speed := gomath.Min(c.HalfWidth, c.HalfHeight) / c.Zoom * c.PanSensitivity
	u, v := c.Viewport().Axes()
	c.Center = c.Center.Add(u.Scale(right * speed)).Add(v.Scale(forward * speed))
}

// SetCenter sets the camera's center point.
func (c *Camera) SetCenter(x, y float64) {
	c.Center = math.Vec2{X: x, Y: y}
}

// ToWorld maps a viewport-local point (origin at the view center) to world space.
func (c *Camera) ToWorld(local math.Vec2) math.Vec2 {
	return c.Viewport().ToWorld(local)
}

// ToView maps a world point into the viewport-local frame.
func (c *Camera) ToView(world math.Vec2) math.Vec2 {
	return c.Viewport().ToLocal(world)
}

// FitToBounds centers on b and zooms so the whole box is visible at the current rotation.
func (c *Camera) FitToBounds(b geom.AABB) {
	c.Center = b.Center
	// Half-extents of b measured along the camera axes.
	u, v := c.Viewport().Axes()
	ex := b.Half.X*gomath.Abs(u.X) + b.Half.Y*gomath.Abs(u.Y)
	ey := b.Half.X*gomath.Abs(v.X) + b.Half.Y*gomath.Abs(v.Y)
	c.SetZoom(gomath.Min(c.HalfWidth/ex, c.HalfHeight/ey))
}

// ZoomSchedule returns frames zoom levels that ease from start to end and back,
// interpolating in log space along a cosine.
func ZoomSchedule(start, end float64, frames int) []float64 {
	if frames <= 0 {
		return nil
	}
	out := make([]float64, frames)
	logStart, logEnd := gomath.Log10(start), gomath.Log10(end)
	for i := range out {
		var t float64
		if frames > 1 {
			t = 2 * gomath.Pi * float64(i) / float64(frames-1)
		}
		out[i] = gomath.Pow(10, logStart+0.5*(1-gomath.Cos(t))*(logEnd-logStart))
	}
	return out
}

// Flythrough returns one viewport per zoom level, keeping center and rotation fixed.
func (c *Camera) Flythrough(zooms []float64) []geom.OBB {
	saved := c.Zoom
	defer func() { c.Zoom = saved }()

	out := make([]geom.OBB, len(zooms))
	for i, z := range zooms {
		c.SetZoom(z)
		out[i] = c.Viewport()
	}
	return out
}
