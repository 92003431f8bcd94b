package bspline

import "math"

// Rect is an axis-aligned rectangle. Containment tests include all four
// edges, so a rectangle built around a single point still contains it.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromCenter returns the square of half-width r centered on center.
func NewRectFromCenter(center Point, r float64) Rect {
	return Rect{
		X0: center.X - r,
		Y0: center.Y - r,
		X1: center.X + r,
		Y1: center.Y + r,
	}
}

// BoundingRect returns the smallest rectangle enclosing pts. The zero Rect is
// returned for an empty slice.
func BoundingRect(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{
		X0: math.Inf(1),
		Y0: math.Inf(1),
		X1: math.Inf(-1),
		Y1: math.Inf(-1),
	}
	for _, pt := range pts {
		r = r.UnionPoint(pt)
	}
	return r
}

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's height, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X0 &&
		pt.X <= r.X1 &&
		pt.Y >= r.Y0 &&
		pt.Y <= r.Y1
}

// UnionPoint computes the union with one point.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

func (r Rect) IsNaN() bool {
	return math.IsNaN(r.X0) || math.IsNaN(r.Y0) || math.IsNaN(r.X1) || math.IsNaN(r.Y1)
}
