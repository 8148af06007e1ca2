// SPDX-License-Identifier: Unlicense OR MIT

// Package geom implements the float64 point arithmetic and screen-projection
// helpers the touch-planning core treats as external collaborators: in_screen,
// recalc_pos and distance_of.
//
// It deliberately mirrors gioui.org/f32's Point shape rather than importing
// it: the core needs float64 throughout (mixing float32 points with the line
// model's float64 would violate the single/double precision rule), and f32.Point is
// float32 by design for GPU vertex buffers.
package geom

import "math"

// Point is a two-dimensional screen coordinate. The origin is the top-left
// corner with axes extending right and down, matching gio's f32.Point.
type Point struct {
	X, Y float64
}

// Pt is a shorthand constructor.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Bounds is the visible screen rectangle notes are projected into.
type Bounds struct {
	Width, Height float64
}

// DefaultBounds matches a common portrait device canvas; callers normally
// load the real device size from config.
var DefaultBounds = Bounds{Width: 1080, Height: 2340}

// InScreen reports whether p falls within b, inclusive of the edges.
func (b Bounds) InScreen(p Point) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// RecalcPos projects p onto the visible screen by clamping each axis
// independently. sa and ca (sin/cos of the judgment line's angle) are
// accepted for parity with the original projection hook, in case a future,
// richer implementation slides the point along the line's tangent instead
// of clamping, but are unused by the clamp-based projection.
func (b Bounds) RecalcPos(p Point, sa, ca float64) Point {
	_, _ = sa, ca
	out := p
	switch {
	case out.X < 0:
		out.X = 0
	case out.X > b.Width:
		out.X = b.Width
	}
	switch {
	case out.Y < 0:
		out.Y = 0
	case out.Y > b.Height:
		out.Y = b.Height
	}
	return out
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
