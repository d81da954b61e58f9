package geometry

import "log/slog"

// Visibility decides whether a point exactly on a face's plane sees it.
type Visibility int

const (
	// VisibilityInclusive treats on-plane points as visible, so a coplanar
	// point splits the faces it touches.
	VisibilityInclusive Visibility = iota
	// VisibilityStrict requires the point to be more than epsilon in front
	// of the plane; coplanar points are absorbed.
	VisibilityStrict
)

func (v Visibility) String() string {
	switch v {
	case VisibilityInclusive:
		return "inclusive"
	case VisibilityStrict:
		return "strict"
	}
	return "unknown"
}

type Options struct {
	Epsilon    float64
	Visibility Visibility
	Logger     *slog.Logger
}

type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Epsilon:    DefaultEpsilon,
		Visibility: VisibilityInclusive,
	}
}

// WithEpsilon sets the coplanarity tolerance of the seed step, and of the
// visibility test under VisibilityStrict.
func WithEpsilon(eps float64) Option {
	if eps < 0 {
		panic("WithEpsilon: eps must be non-negative")
	}
	return func(o *Options) {
		o.Epsilon = eps
	}
}

func WithVisibility(v Visibility) Option {
	return func(o *Options) {
		o.Visibility = v
	}
}

// WithLogger overrides the package logger for one computer.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}
