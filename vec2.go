package bspline

import (
	"fmt"
	"math"
)

// Vec2 is a displacement in curve space, as opposed to a position.
type Vec2 struct {
	X float64
	Y float64
}

// Vec returns the vector ⟨x, y⟩.
func Vec(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Hypot returns the length of the vector.
func (v Vec2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}
