// Package bspline evaluates and edits clamped uniform B-spline curves in the
// plane. It was written as the kernel of an interactive curve editor: the
// editor owns the window and the input devices and calls into this package
// for everything that involves the curve itself.
//
// # Curves
//
// A [Curve] consists of n control points, an order k (the polynomial degree
// plus one) and a [KnotVector] of n+k knots. Knot vectors are clamped, with k
// zeros at the start and k ones at the end, so the curve starts at the first
// control point and ends at the last one. The interior knots are spaced
// uniformly. The order may not exceed the number of control points.
//
// Positions are computed by [Evaluate], which locates the knot span of the
// parameter with [FindSpan] and then repeatedly cuts the corners of the k
// control points that influence that span until a single point is left. The
// points produced along the way can be retrieved with [ConstructionTrace], and
// the segments they were cut from with [ConstructionSegments], which is what an
// editor draws to visualize the construction.
//
// # Knot maintenance
//
// Whenever the number of control points or the order changes, the knot vector
// has to be rebuilt with [KnotVector.Rebuild]. Changes of order first widen or
// narrow the clamped ends with [KnotVector.GrowOrder] and
// [KnotVector.ShrinkOrder]. [CheckGrowOrder], [CheckShrinkOrder] and
// [CheckDeletePoint] tell whether an edit would leave a feasible curve.
//
// # Sessions
//
// [Session] bundles the above for an editor. It owns one curve, applies
// structural edits together with the matching knot rebuild under a single
// lock, and rejects infeasible edits with an error matching [ErrInfeasible]
// without changing anything. Evaluating against a knot vector that doesn't
// match its curve yields an error matching [ErrInconsistent] instead of
// garbage geometry.
//
// # Logging
//
// The package is silent by default. [SetLogger] and [WithLogger] route edit and
// rebuild events to a [log/slog] logger.
package bspline
