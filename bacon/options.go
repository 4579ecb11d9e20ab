// SPDX-License-Identifier: MIT

// Package bacon: functional configuration of Fit. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strict validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Notes:
//   - Options only steer the algorithm (cutoff level, budgets, subset size)
//     and its execution (logging, parallelism). Tracing and worker counts
//     never change a computed value.
package bacon

import (
	"math"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/wbacon/linalg"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultAlpha is the significance level of the Student-t cutoff used by
	// the reweighting phase.
	DefaultAlpha = 0.05

	// DefaultMaxIter bounds the number of reweighting iterations.
	DefaultMaxIter = 50

	// DefaultCollect sets the size of the grown subset to collect·p.
	DefaultCollect = 4

	// DefaultVerbose disables progress tracing.
	DefaultVerbose = false

	// DefaultWorkers selects runtime.GOMAXPROCS(0) workers for the parallel
	// kernels (which only engage above the parallel threshold).
	DefaultWorkers = 0

	// DefaultParallelThreshold is the n·p from which kernels go parallel.
	DefaultParallelThreshold = linalg.DefaultParallelThreshold
)

// ---------- Internal panic messages ----------

const (
	panicAlphaInvalid     = "bacon: WithAlpha: alpha must lie in (0, 1)"
	panicMaxIterInvalid   = "bacon: WithMaxIter: maxIter must be positive"
	panicCollectInvalid   = "bacon: WithCollect: collect must be ≥ 1"
	panicSigmaInvalid     = "bacon: WithSigma: sigma must be finite and positive"
	panicWorkersInvalid   = "bacon: WithWorkers: workers must be non-negative"
	panicThresholdInvalid = "bacon: WithParallelThreshold: threshold must be non-negative"
)

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; Fit resolves them through gatherOptions.
type Options struct {
	alpha   float64 // (0,1); DefaultAlpha
	maxIter int     // > 0; DefaultMaxIter
	collect int     // ≥ 1; DefaultCollect

	sigma    float64 // > 0 when supplied
	hasSigma bool

	verbose bool
	logger  logr.Logger

	workers   int
	threshold int
}

// WithAlpha sets the significance level of the reweighting cutoff. The cutoff
// for a subset of size m is the upper alpha/(2(m+1)) quantile of Student's t
// with m−p degrees of freedom; smaller alpha admits more observations.
//
// Errors:
//   - Panics when alpha ∉ (0, 1).
func WithAlpha(alpha float64) Option {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		panic(panicAlphaInvalid)
	}

	return func(o *Options) { o.alpha = alpha }
}

// WithMaxIter sets the reweighting iteration budget.
//
// Errors:
//   - Panics when maxIter ≤ 0.
func WithMaxIter(maxIter int) Option {
	if maxIter <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = maxIter }
}

// WithCollect sets the multiplier of the grown subset: the growth phase stops
// at collect·p observations (clamped to [p+1, n]).
//
// Errors:
//   - Panics when collect < 1.
func WithCollect(collect int) Option {
	if collect < 1 {
		panic(panicCollectInvalid)
	}

	return func(o *Options) { o.collect = collect }
}

// WithSigma supplies the residual scale used in every discrepancy. Without it
// the scale is estimated once from the initial fit.
//
// Errors:
//   - Panics when sigma is not finite or ≤ 0.
func WithSigma(sigma float64) Option {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma <= 0 {
		panic(panicSigmaInvalid)
	}

	return func(o *Options) {
		o.sigma = sigma
		o.hasSigma = true
	}
}

// WithVerbose enables progress tracing through the configured logger.
func WithVerbose() Option {
	return func(o *Options) { o.verbose = true }
}

// WithLogger sets the logger used for progress tracing. A logger without a
// sink is replaced by logr.Discard().
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithWorkers bounds the goroutines used by the parallel kernels; 0 selects
// runtime.GOMAXPROCS(0), 1 forces sequential execution. Results are
// bit-identical for every value.
//
// Errors:
//   - Panics when workers < 0.
func WithWorkers(workers int) Option {
	if workers < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = workers }
}

// WithParallelThreshold sets the problem size n·p from which the kernels
// spread work over goroutines.
//
// Errors:
//   - Panics when threshold < 0.
func WithParallelThreshold(threshold int) Option {
	if threshold < 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = threshold }
}

// gatherOptions applies user-provided Option setters on top of defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		alpha:     DefaultAlpha,
		maxIter:   DefaultMaxIter,
		collect:   DefaultCollect,
		verbose:   DefaultVerbose,
		logger:    logr.Discard(),
		workers:   DefaultWorkers,
		threshold: DefaultParallelThreshold,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins
	}

	return o
}
