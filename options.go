package bspline

import "log/slog"

// DefaultPickRadius is the half-width of the square around a control point
// within which [Session.Pick] selects it.
const DefaultPickRadius = 0.01

// Option configures a Session during creation.
//
// Example:
//
//	s, err := bspline.NewSession(points, 3,
//		bspline.WithLogger(slog.Default()),
//		bspline.WithPickRadius(0.02))
type Option func(*sessionOptions)

type sessionOptions struct {
	logger     *slog.Logger
	pickRadius float64
	sampleStep float64
}

func defaultOptions() sessionOptions {
	return sessionOptions{
		logger:     nil, // falls back to the package logger
		pickRadius: DefaultPickRadius,
		sampleStep: DefaultSampleStep,
	}
}

// WithLogger sets the logger the session reports edits and knot rebuilds to.
// Without it the session uses the package logger, see [SetLogger].
// Degenerate blends found while evaluating are always reported to the package
// logger, since evaluation works on plain [Curve] values.
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = l
	}
}

// WithPickRadius sets the selection radius used by [Session.Pick]. Values
// that aren't positive are ignored.
func WithPickRadius(r float64) Option {
	return func(o *sessionOptions) {
		if r > 0 {
			o.pickRadius = r
		}
	}
}

// WithSampleStep sets the parameter increment used by [Session.Sample].
// Values that aren't positive are ignored.
func WithSampleStep(step float64) Option {
	return func(o *sessionOptions) {
		if step > 0 {
			o.sampleStep = step
		}
	}
}
