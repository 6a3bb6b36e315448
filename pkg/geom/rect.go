package geom

import "math"

// Point is a position in canvas pixel space.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in canvas pixel space, described by
// its top-left corner and size. Resolved layer geometry is expressed as
// a Rect.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// MaxX returns the right edge coordinate.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge coordinate.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Union returns the smallest rectangle containing both r and o.
// An empty rectangle contributes nothing: the union of an empty and a
// non-empty rectangle is the non-empty one. Group geometry is computed
// this way from member rectangles.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: math.Max(r.MaxX(), o.MaxX()) - x,
		H: math.Max(r.MaxY(), o.MaxY()) - y,
	}
}

// Scale multiplies all four components by ratio.
func (r Rect) Scale(ratio float64) Rect {
	return Rect{X: r.X * ratio, Y: r.Y * ratio, W: r.W * ratio, H: r.H * ratio}
}
