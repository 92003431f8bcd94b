package bspline

import (
	"errors"
	"math"
	"testing"
)

func TestNewCurve(t *testing.T) {
	points := scenarioPoints()
	c, err := NewCurve(points, 3)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, KnotVector{0, 0, 0, 1.0 / 3, 2.0 / 3, 1, 1, 1}, c.Knots, approx)

	// The curve owns its points.
	points[0] = Pt(9, 9)
	if c.Points[0] == points[0] {
		t.Error("curve shares its points with the caller")
	}

	if _, err := NewCurve(points[:2], 3); !errors.Is(err, ErrInfeasible) {
		t.Errorf("got %v, want ErrInfeasible", err)
	}
}

func TestCurveDomain(t *testing.T) {
	c, _ := NewCurve(scenarioPoints(), 3)
	if lo, hi := c.Domain(); lo != 0 || hi != 1 {
		t.Errorf("got domain [%g, %g], want [0, 1]", lo, hi)
	}
	for _, tt := range []struct{ u, want float64 }{
		{-0.05, 0},
		{0.4, 0.4},
		{1.05, 1},
	} {
		if got := c.ClampParameter(tt.u); got != tt.want {
			t.Errorf("ClampParameter(%g) = %g, want %g", tt.u, got, tt.want)
		}
	}

	stale := c.Clone()
	stale.Points = append(stale.Points, Pt(1, 1))
	if lo, hi := stale.Domain(); lo != 0 || hi != 0 {
		t.Errorf("got domain [%g, %g] for a stale curve, want [0, 0]", lo, hi)
	}
}

func TestCurveSample(t *testing.T) {
	c, _ := NewCurve(scenarioPoints(), 3)
	pts, err := c.Sample(0.25)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 5 {
		t.Fatalf("got %d samples, want 5", len(pts))
	}
	if pts[0] != c.Points[0] || pts[4] != c.Points[4] {
		t.Errorf("samples run from %v to %v, want %v to %v", pts[0], pts[4], c.Points[0], c.Points[4])
	}
	mid, _ := c.Evaluate(0.5)
	diff(t, mid, pts[2], approx)

	if pts, _ := c.Sample(0); len(pts) != 1001 {
		t.Errorf("got %d samples with the default step, want 1001", len(pts))
	}
	if pts, _ := c.Sample(10); len(pts) != 2 {
		t.Errorf("got %d samples with a huge step, want 2", len(pts))
	}
	for _, step := range []float64{1e-9, 1e-300, math.SmallestNonzeroFloat64} {
		if pts, err := c.Sample(step); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("got %d samples and error %v for step %g, want ErrInvalidParameter", len(pts), err, step)
		}
	}
}

func TestCurveKnotPoints(t *testing.T) {
	c, _ := NewCurve(scenarioPoints(), 3)
	pts, err := c.KnotPoints()
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != len(c.Knots) {
		t.Fatalf("got %d knot points, want %d", len(pts), len(c.Knots))
	}
	for i := 0; i < 3; i++ {
		if pts[i] != c.Points[0] {
			t.Errorf("knot %d is at %v, want the first control point", i, pts[i])
		}
		if j := len(pts) - 1 - i; pts[j] != c.Points[4] {
			t.Errorf("knot %d is at %v, want the last control point", j, pts[j])
		}
	}
	// Uniform quadratic: interior knots sit at the midpoints of the inner legs.
	diff(t, midpoint(c.Points[1], c.Points[2]), pts[3], approx)
	diff(t, midpoint(c.Points[2], c.Points[3]), pts[4], approx)
}

func TestCurveBoundsAndClone(t *testing.T) {
	c, _ := NewCurve(scenarioPoints(), 3)
	diff(t, Rect{-0.5, -0.25, 0.5, 0.25}, c.Bounds())

	d := c.Clone()
	d.Points[0] = Pt(5, 5)
	d.Knots[3] = 0.1
	if c.Points[0] == d.Points[0] || c.Knots[3] == d.Knots[3] {
		t.Error("clone shares memory with the original")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
