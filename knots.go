package bspline

import (
	"fmt"
	"log/slog"
)

// MinOrder is the smallest supported order. An order-2 curve is the control
// polygon itself.
const MinOrder = 2

// KnotVector is a non-decreasing sequence of parameter breakpoints.
//
// The vectors produced by this package are clamped and uniform: for n control
// points and order k there are n+k knots, the first k are 0, the last k are 1,
// and the n−k interior knots split (0, 1) into equal steps.
type KnotVector []float64

// Clone returns a copy of kv that shares no memory with it.
func (kv KnotVector) Clone() KnotVector {
	return append(KnotVector(nil), kv...)
}

// UniformKnots returns the clamped uniform knot vector for n control points of
// the given order.
func UniformKnots(n, order int) (KnotVector, error) {
	if err := checkFeasible("uniform knots", n, order); err != nil {
		return nil, err
	}
	seed := make(KnotVector, 2*order)
	for i := order; i < len(seed); i++ {
		seed[i] = 1
	}
	return seed.Rebuild(n, order)
}

// RebuildKnots is shorthand for prev.Rebuild(n, order).
func RebuildKnots(n, order int, prev KnotVector) (KnotVector, error) {
	return prev.Rebuild(n, order)
}

// Rebuild derives the knot vector for n control points of the given order from
// kv, the vector of the previous configuration.
//
// kv must already be clamped for order: the clamped head is kept, the interior
// is re-walked in uniform steps from the last leading zero, and whatever
// interior the previous configuration had is dropped. Callers changing the
// order apply [KnotVector.GrowOrder] or [KnotVector.ShrinkOrder] first.
//
// kv is not modified. The rebuild is logged at debug level to the package
// logger.
func (kv KnotVector) Rebuild(n, order int) (KnotVector, error) {
	return kv.rebuild(n, order, Logger())
}

func (kv KnotVector) rebuild(n, order int, log *slog.Logger) (KnotVector, error) {
	const op = "rebuild knots"
	if err := checkFeasible(op, n, order); err != nil {
		return nil, err
	}
	if !kv.hasClampedEnds(order) {
		return nil, inconsistent(op, "previous knots %v are not clamped for order %d", []float64(kv), order)
	}

	step := 1 / float64(n-order+1)
	out := make(KnotVector, 0, n+order)
	out = append(out, kv[:order]...)
	for i := order; i < n; i++ {
		out = append(out, out[i-1]+step)
	}
	// The walk would reach 1 at index n; the clamped tail supplies it exactly.
	out = append(out, kv[len(kv)-order:]...)

	log.Debug("rebuilt knots", "points", n, "order", order, "knots", []float64(out))
	return out, nil
}

// GrowOrder widens the clamped ends by one knot each, ready for a rebuild at
// order+1.
func (kv KnotVector) GrowOrder() KnotVector {
	out := make(KnotVector, 0, len(kv)+2)
	out = append(out, 0)
	out = append(out, kv...)
	return append(out, 1)
}

// ShrinkOrder narrows the clamped ends by one knot each, ready for a rebuild
// at order−1.
func (kv KnotVector) ShrinkOrder() KnotVector {
	if len(kv) < 2 {
		return KnotVector{}
	}
	return kv[1 : len(kv)-1].Clone()
}

// Domain returns the valid parameter range for n control points of the given
// order.
func (kv KnotVector) Domain(n, order int) (lo, hi float64) {
	return kv[order-1], kv[n]
}

// IsNonDecreasing reports whether every knot is at least as large as its
// predecessor.
func (kv KnotVector) IsNonDecreasing() bool {
	for i := 1; i < len(kv); i++ {
		if !(kv[i-1] <= kv[i]) {
			return false
		}
	}
	return true
}

// IsClamped reports whether kv starts with order zeros, ends with order ones,
// and is non-decreasing.
func (kv KnotVector) IsClamped(order int) bool {
	return kv.hasClampedEnds(order) && kv.IsNonDecreasing()
}

func (kv KnotVector) hasClampedEnds(order int) bool {
	if order < 1 || len(kv) < 2*order {
		return false
	}
	for _, k := range kv[:order] {
		if k != 0 {
			return false
		}
	}
	for _, k := range kv[len(kv)-order:] {
		if k != 1 {
			return false
		}
	}
	return true
}

// Validate checks kv against n control points and the given order. It returns
// a [*ConsistencyError] describing the first violated invariant.
func (kv KnotVector) Validate(n, order int) error {
	const op = "validate knots"
	switch {
	case order < MinOrder || n < order:
		return inconsistent(op, "order %d is not feasible for %d control points", order, n)
	case len(kv) != n+order:
		return inconsistent(op, "have %d knots, want %d", len(kv), n+order)
	case !kv.hasClampedEnds(order):
		return inconsistent(op, "knots %v are not clamped for order %d", []float64(kv), order)
	case !kv.IsNonDecreasing():
		return inconsistent(op, "knots %v are decreasing", []float64(kv))
	}
	return nil
}

func (kv KnotVector) String() string {
	return fmt.Sprint([]float64(kv))
}

func checkFeasible(op string, n, order int) error {
	switch {
	case order < MinOrder:
		return &InfeasibleError{Op: op, Order: order, Points: n, Reason: fmt.Sprintf("order must be at least %d", MinOrder)}
	case n < order:
		return &InfeasibleError{Op: op, Order: order, Points: n, Reason: "too few control points for the order"}
	}
	return nil
}

// CheckGrowOrder reports whether a curve with n control points can go from
// order to order+1.
func CheckGrowOrder(n, order int) error {
	if order+1 > n {
		return &InfeasibleError{
			Op:     "increase order",
			Order:  order,
			Points: n,
			Reason: "the order of the curve is too big for the number of control points",
		}
	}
	return nil
}

// CheckShrinkOrder reports whether order can be lowered by one.
func CheckShrinkOrder(n, order int) error {
	if order <= MinOrder {
		return &InfeasibleError{
			Op:     "decrease order",
			Order:  order,
			Points: n,
			Reason: fmt.Sprintf("the order of the curve must be at least %d", MinOrder),
		}
	}
	return nil
}

// CheckDeletePoint reports whether one of n control points can be removed
// from a curve of the given order.
func CheckDeletePoint(n, order int) error {
	if n-1 < order || n-1 < MinOrder {
		return &InfeasibleError{
			Op:     "delete control point",
			Order:  order,
			Points: n,
			Reason: "too few control points for the current order of the curve",
		}
	}
	return nil
}
