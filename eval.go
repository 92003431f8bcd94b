package bspline

import (
	"fmt"
	"math"
)

// FindSpan returns the index i of the knot span [knots[i], knots[i+1])
// containing u, for a curve with n control points of the given order, along
// with u clamped to the curve's domain.
//
// Parameters at or beyond the upper end of the domain map to the last span,
// n−1; parameters below the lower end map to the first span, order−1. Both
// are zero-based, so the window of control points used for the span is
// points[span−order+1 : span+1].
func FindSpan(u float64, knots KnotVector, order, n int) (span int, clamped float64, err error) {
	const op = "find span"
	if math.IsNaN(u) {
		return 0, u, fmt.Errorf("%w: NaN", ErrInvalidParameter)
	}
	if order < 1 || n < order || len(knots) <= n {
		return 0, u, inconsistent(op, "%d knots cannot describe %d control points of order %d", len(knots), n, order)
	}

	lo, hi := knots.Domain(n, order)
	switch {
	case u >= hi:
		return n - 1, hi, nil
	case u < lo:
		return order - 1, lo, nil
	}
	for i := 0; i+1 < len(knots); i++ {
		if knots[i] <= u && u < knots[i+1] {
			if i < order-1 || i > n-1 {
				return 0, u, inconsistent(op, "span %d for u=%g lies outside the domain", i, u)
			}
			return i, u, nil
		}
	}
	return 0, u, inconsistent(op, "no knot span contains u=%g", u)
}

// Evaluate returns the position at u of the B-spline defined by points, knots
// and order. u is clamped to the curve's domain.
func Evaluate(u float64, points []Point, knots KnotVector, order int) (Point, error) {
	if err := knots.Validate(len(points), order); err != nil {
		return Point{}, err
	}
	return evaluate(u, points, knots, order, nil)
}

// ConstructionTrace returns every intermediate point computed while evaluating
// the curve at u, in the order they are computed. For order k there are
// k(k−1)/2 points; the last one is the curve position. Neither points nor knots
// are modified.
func ConstructionTrace(u float64, points []Point, knots KnotVector, order int) ([]Point, error) {
	if err := knots.Validate(len(points), order); err != nil {
		return nil, err
	}
	trace := make([]Point, 0, order*(order-1)/2)
	_, err := evaluate(u, points, knots, order, func(_ Line, pt Point) {
		trace = append(trace, pt)
	})
	if err != nil {
		return nil, err
	}
	return trace, nil
}

// ConstructionSegments returns, for every blending step of the evaluation at
// u, the segment that was cut. The blended point of each step lies on its
// segment.
func ConstructionSegments(u float64, points []Point, knots KnotVector, order int) ([]Line, error) {
	if err := knots.Validate(len(points), order); err != nil {
		return nil, err
	}
	segs := make([]Line, 0, order*(order-1)/2)
	_, err := evaluate(u, points, knots, order, func(seg Line, _ Point) {
		segs = append(segs, seg)
	})
	if err != nil {
		return nil, err
	}
	return segs, nil
}

// evaluate runs the corner-cutting recurrence over the order control points
// ending at the span of u. knots must have been validated. If step is not nil,
// it is called after every update with the segment that was cut and the
// resulting point.
func evaluate(u float64, points []Point, knots KnotVector, order int, step func(seg Line, pt Point)) (Point, error) {
	delta, u, err := FindSpan(u, knots, order, len(points))
	if err != nil {
		return Point{}, err
	}

	// w[i] holds points[delta-i]; each pass of r shrinks the live window by one.
	w := make([]Point, order)
	for i := range w {
		w[i] = points[delta-i]
	}
	for r := order; r >= 2; r-- {
		i := delta
		for s := 0; s <= r-2; s++ {
			omega := blendWeight(u, knots[i], knots[i+r-1])
			seg := Line{P0: w[s], P1: w[s+1]}
			w[s] = w[s].Blend(w[s+1], omega)
			if step != nil {
				step(seg, w[s])
			}
			i--
		}
	}
	return w[0], nil
}

// blendWeight returns the weight of the upper point when blending at u across
// the knot interval [lo, hi].
func blendWeight(u, lo, hi float64) float64 {
	d := hi - lo
	if d == 0 {
		// A knot of full multiplicity: the blend is undefined, so the point
		// whose support contains u is kept as is.
		Logger().Debug("degenerate blend", "u", u, "knot", lo)
		if u >= lo {
			return 1
		}
		return 0
	}
	return (u - lo) / d
}
