package bspline

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// ParameterStep is the increment an editor applies per key press when walking
// the evaluation parameter along the curve.
const ParameterStep = 0.05

// Session owns one editable curve. Every structural edit validates first,
// then replaces the control points and the rebuilt knot vector in one critical
// section; rejected edits change nothing. Queries never observe a half-applied
// edit.
//
// A Session is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	curve Curve
	opts  sessionOptions
}

// Stats summarizes a session's configuration.
type Stats struct {
	Order  int
	Points int
	Knots  int
}

// NewSession returns a session editing a copy of points at the given order.
func NewSession(points []Point, order int, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	for i, pt := range points {
		if err := checkPosition(pt); err != nil {
			return nil, fmt.Errorf("control point %d: %w", i, err)
		}
	}
	c, err := NewCurve(points, order)
	if err != nil {
		return nil, err
	}
	return &Session{curve: c, opts: o}, nil
}

func (s *Session) logger() *slog.Logger {
	if s.opts.logger != nil {
		return s.opts.logger
	}
	return Logger()
}

// InsertPoint inserts pt before the control point at index at. An index equal
// to the number of control points appends.
func (s *Session) InsertPoint(pt Point, at int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(pt, at)
}

// AppendPoint adds pt after the last control point.
func (s *Session) AppendPoint(pt Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(pt, len(s.curve.Points))
}

func (s *Session) insert(pt Point, at int) error {
	if err := checkPosition(pt); err != nil {
		return err
	}
	n := len(s.curve.Points)
	if at < 0 || at > n {
		return fmt.Errorf("%w: insert at %d with %d control points", ErrIndexOutOfRange, at, n)
	}
	points := slices.Insert(slices.Clone(s.curve.Points), at, pt)
	return s.commit("insert control point", points, s.curve.Order, s.curve.Knots)
}

// DeletePoint removes the control point at index i. It fails with an error
// matching [ErrInfeasible] when the remaining points could not carry the
// current order.
func (s *Session) DeletePoint(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.curve.Points)
	if i < 0 || i >= n {
		return fmt.Errorf("%w: delete %d of %d control points", ErrIndexOutOfRange, i, n)
	}
	if err := CheckDeletePoint(n, s.curve.Order); err != nil {
		s.reject(err)
		return err
	}
	points := slices.Delete(slices.Clone(s.curve.Points), i, i+1)
	return s.commit("delete control point", points, s.curve.Order, s.curve.Knots)
}

// MovePoint replaces the position of the control point at index i. The knot
// vector depends only on the number of points, so it is left alone.
func (s *Session) MovePoint(i int, pt Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkPosition(pt); err != nil {
		return err
	}
	n := len(s.curve.Points)
	if i < 0 || i >= n {
		return fmt.Errorf("%w: move %d of %d control points", ErrIndexOutOfRange, i, n)
	}
	s.curve.Points[i] = pt
	return nil
}

// SetOrder changes the order of the curve, one unit at a time, widening or
// narrowing the clamped ends of the knot vector before each rebuild. If any
// step is infeasible the session keeps its previous order and knots.
func (s *Session) SetOrder(order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setOrder(order)
}

// IncreaseOrder raises the order by one.
func (s *Session) IncreaseOrder() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setOrder(s.curve.Order + 1)
}

// DecreaseOrder lowers the order by one.
func (s *Session) DecreaseOrder() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setOrder(s.curve.Order - 1)
}

func (s *Session) setOrder(order int) error {
	n := len(s.curve.Points)
	cur, knots := s.curve.Order, s.curve.Knots
	for cur != order {
		var err error
		if cur < order {
			if err = CheckGrowOrder(n, cur); err == nil {
				knots, err = knots.GrowOrder().rebuild(n, cur+1, s.logger())
				cur++
			}
		} else {
			if err = CheckShrinkOrder(n, cur); err == nil {
				knots, err = knots.ShrinkOrder().rebuild(n, cur-1, s.logger())
				cur--
			}
		}
		if err != nil {
			s.reject(err)
			return err
		}
	}
	if cur == s.curve.Order {
		return nil
	}
	s.curve.Order = cur
	s.curve.Knots = knots
	s.logger().Info("changed order", "order", cur, "points", n)
	return nil
}

// commit rebuilds the knots for points and order and installs the result.
// Nothing is installed if the rebuild fails.
func (s *Session) commit(op string, points []Point, order int, prev KnotVector) error {
	knots, err := prev.rebuild(len(points), order, s.logger())
	if err != nil {
		s.reject(err)
		return err
	}
	s.curve = Curve{Points: points, Order: order, Knots: knots}
	s.logger().Info(op, "points", len(points), "order", order)
	return nil
}

func (s *Session) reject(err error) {
	s.logger().Warn("rejected edit", "err", err)
}

// Evaluate returns the curve position at u, clamped to the domain.
func (s *Session) Evaluate(u float64) (Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve.Evaluate(u)
}

// ConstructionTrace returns the intermediate points of the evaluation at u.
// See [ConstructionTrace].
func (s *Session) ConstructionTrace(u float64) ([]Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve.ConstructionTrace(u)
}

// ConstructionSegments returns the segments cut during the evaluation at u.
// See [ConstructionSegments].
func (s *Session) ConstructionSegments(u float64) ([]Line, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve.ConstructionSegments(u)
}

// Domain returns the valid parameter range, (knots[order−1], knots[n]).
func (s *Session) Domain() (uMin, uMax float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve.Domain()
}

// StepParameter advances u by du and clamps the result to the domain.
func (s *Session) StepParameter(u, du float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve.ClampParameter(u + du)
}

// Sample returns points along the curve, spaced by the session's sample step.
// See [Curve.Sample].
func (s *Session) Sample() ([]Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve.Sample(s.opts.sampleStep)
}

// Snapshot returns a copy of the current curve.
func (s *Session) Snapshot() Curve {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve.Clone()
}

// Order returns the current order.
func (s *Session) Order() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve.Order
}

// Len returns the number of control points.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.curve.Points)
}

// Knots returns a copy of the current knot vector.
func (s *Session) Knots() KnotVector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.curve.Knots.Clone()
}

// Stats returns the current order and the number of control points and knots.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Order:  s.curve.Order,
		Points: len(s.curve.Points),
		Knots:  len(s.curve.Knots),
	}
}

// Pick returns the index of the control point whose pick square contains pt.
// When squares overlap, the point latest in polygon order wins.
func (s *Session) Pick(pt Point) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel := -1
	for i, p := range s.curve.Points {
		if NewRectFromCenter(p, s.opts.pickRadius).Contains(pt) {
			sel = i
		}
	}
	return sel, sel >= 0
}

func checkPosition(pt Point) error {
	if pt.IsNaN() || pt.IsInf() {
		return fmt.Errorf("%w: control point %v", ErrInvalidPoint, pt)
	}
	return nil
}
