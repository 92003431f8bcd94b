package bspline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-12)

func midpoint(a, b Point) Point {
	return Pt(0.5*(a.X+b.X), 0.5*(a.Y+b.Y))
}

func distance(a, b Point) float64 {
	return b.Sub(a).Hypot()
}

// scenarioPoints is the control polygon of the editor's start-up curve.
func scenarioPoints() []Point {
	return []Point{
		Pt(-0.5, -0.25),
		Pt(0, -0.25),
		Pt(0.25, 0),
		Pt(0, 0.25),
		Pt(0.5, 0.25),
	}
}
