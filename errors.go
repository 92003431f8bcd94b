package bspline

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasible is matched by every [InfeasibleError]. The rejected edit
	// has not been applied.
	ErrInfeasible = errors.New("bspline: infeasible configuration")

	// ErrInconsistent is matched by every [ConsistencyError]. It means the
	// knot vector no longer agrees with the control points and order, which
	// only happens when a rebuild was skipped or the vector was built by hand.
	ErrInconsistent = errors.New("bspline: internal consistency violated")

	ErrIndexOutOfRange  = errors.New("bspline: control point index out of range")
	ErrInvalidParameter = errors.New("bspline: invalid curve parameter")
	ErrInvalidPoint     = errors.New("bspline: invalid control point")
)

// InfeasibleError reports a combination of order and control point count
// that cannot form a clamped B-spline.
type InfeasibleError struct {
	Op     string
	Order  int
	Points int
	Reason string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("bspline: %s: %s (order %d, %d control points)", e.Op, e.Reason, e.Order, e.Points)
}

func (e *InfeasibleError) Is(target error) bool { return target == ErrInfeasible }

// ConsistencyError reports a broken knot vector invariant or a failed span
// lookup.
type ConsistencyError struct {
	Op     string
	Detail string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("bspline: %s: %s", e.Op, e.Detail)
}

func (e *ConsistencyError) Is(target error) bool { return target == ErrInconsistent }

func inconsistent(op, format string, args ...any) error {
	return &ConsistencyError{Op: op, Detail: fmt.Sprintf(format, args...)}
}
