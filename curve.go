package bspline

import (
	"fmt"
	"math"
)

// DefaultSampleStep is the parameter increment used by [Curve.Sample] when
// none is given.
const DefaultSampleStep = 0.001

// Curve is a clamped B-spline: a control polygon, an order, and a knot vector.
//
// A Curve is a plain value. The methods do not modify it, and a Curve obtained
// from [Session.Snapshot] shares no memory with the session.
type Curve struct {
	Points []Point
	Order  int
	Knots  KnotVector
}

// NewCurve returns the curve of the given order over a copy of points, with a
// clamped uniform knot vector.
func NewCurve(points []Point, order int) (Curve, error) {
	knots, err := UniformKnots(len(points), order)
	if err != nil {
		return Curve{}, err
	}
	return Curve{
		Points: append([]Point(nil), points...),
		Order:  order,
		Knots:  knots,
	}, nil
}

// Clone returns a deep copy of c.
func (c Curve) Clone() Curve {
	return Curve{
		Points: append([]Point(nil), c.Points...),
		Order:  c.Order,
		Knots:  c.Knots.Clone(),
	}
}

// Validate checks that the knot vector agrees with the control points and the
// order.
func (c Curve) Validate() error {
	return c.Knots.Validate(len(c.Points), c.Order)
}

// Domain returns the range of parameters that map to distinct curve positions.
// It returns (0, 0) for an invalid curve.
func (c Curve) Domain() (lo, hi float64) {
	if c.Validate() != nil {
		return 0, 0
	}
	return c.Knots.Domain(len(c.Points), c.Order)
}

// ClampParameter clamps u to the domain of c.
func (c Curve) ClampParameter(u float64) float64 {
	lo, hi := c.Domain()
	return min(max(u, lo), hi)
}

func (c Curve) Evaluate(u float64) (Point, error) {
	return Evaluate(u, c.Points, c.Knots, c.Order)
}

func (c Curve) ConstructionTrace(u float64) ([]Point, error) {
	return ConstructionTrace(u, c.Points, c.Knots, c.Order)
}

func (c Curve) ConstructionSegments(u float64) ([]Line, error) {
	return ConstructionSegments(u, c.Points, c.Knots, c.Order)
}

// Sample evaluates the curve at evenly spaced parameters covering the whole
// domain, both ends included. The spacing is at most step; a step that isn't
// positive selects [DefaultSampleStep].
func (c Curve) Sample(step float64) ([]Point, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !(step > 0) {
		step = DefaultSampleStep
	}
	lo, hi := c.Knots.Domain(len(c.Points), c.Order)
	// Check in floating point; tiny steps overflow int.
	f := math.Ceil((hi - lo) / step)
	if f > maxSamples || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("%w: step %g yields more than %d samples", ErrInvalidParameter, step, maxSamples)
	}
	m := max(int(f), 1)

	out := make([]Point, 0, m+1)
	for j := 0; j <= m; j++ {
		u := lo + (hi-lo)*float64(j)/float64(m)
		pt, err := evaluate(u, c.Points, c.Knots, c.Order, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, nil
}

const maxSamples = 1 << 20

// KnotPoints returns the curve position at every knot, in knot order. Repeated
// knots yield repeated positions.
func (c Curve) KnotPoints() ([]Point, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(c.Knots))
	for _, k := range c.Knots {
		pt, err := evaluate(k, c.Points, c.Knots, c.Order, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, nil
}

// Bounds returns the bounding box of the control polygon, which also encloses
// the curve.
func (c Curve) Bounds() Rect {
	return BoundingRect(c.Points)
}
