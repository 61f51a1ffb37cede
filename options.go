package splat

import (
	"log/slog"

	"github.com/gogpu/splat/sh"
)

// Backend selects how tiles are executed.
type Backend int

const (
	// BackendParallel renders tiles on a fixed-size worker pool.
	BackendParallel Backend = iota

	// BackendSerial renders tiles in row-major order on the caller's
	// goroutine.
	BackendSerial
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendParallel:
		return "parallel"
	case BackendSerial:
		return "serial"
	default:
		return "unknown"
	}
}

// Option configures a Renderer during creation.
//
// Example:
//
//	r := splat.NewRenderer(
//	    splat.WithWorkers(8),
//	    splat.WithAuxiliaryBuffers(true),
//	)
//	defer r.Close()
type Option func(*options)

// options holds the Renderer configuration.
type options struct {
	backend       Backend
	workers       int
	evaluator     ColorEvaluator
	scaleModifier float64
	auxiliary     bool
	logger        *slog.Logger
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		backend:       BackendParallel,
		workers:       0, // GOMAXPROCS
		evaluator:     sh.Evaluator{},
		scaleModifier: 1,
	}
}

// WithBackend selects the tile execution backend.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithWorkers sets the worker pool size of BackendParallel.
// n <= 0 selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithColorEvaluator replaces the spherical harmonics color evaluator.
// A nil evaluator is ignored.
func WithColorEvaluator(ev ColorEvaluator) Option {
	return func(o *options) {
		if ev != nil {
			o.evaluator = ev
		}
	}
}

// WithScaleModifier multiplies every primitive scale by f before the
// covariance is built. Non-positive values are ignored.
func WithScaleModifier(f float64) Option {
	return func(o *options) {
		if f > 0 {
			o.scaleModifier = f
		}
	}
}

// WithAuxiliaryBuffers makes Render also produce per-pixel accumulated
// alpha and expected depth.
func WithAuxiliaryBuffers(enabled bool) Option {
	return func(o *options) {
		o.auxiliary = enabled
	}
}

// WithLogger sets a renderer-specific logger. Without it the package
// logger (see SetLogger) is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// RenderOptions are the per-frame inputs besides camera and scene.
type RenderOptions struct {
	// Background fills pixels not fully covered by primitives.
	Background RGB

	// OverrideColors, when non-nil, replaces the evaluated color of each
	// primitive. Its length must equal the primitive count.
	OverrideColors []RGB
}
