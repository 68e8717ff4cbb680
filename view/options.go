// SPDX-License-Identifier: MIT

package view

import (
	"math"

	"github.com/katalvlaran/dpmix/logging"
	"github.com/katalvlaran/dpmix/numerics"
	"github.com/katalvlaran/dpmix/rng"
)

// Defaults (single source of truth for zero-value behaviour).
const (
	// DefaultAlpha is the initial CRP concentration.
	DefaultAlpha = 1.0

	// DefaultGridSize is the number of α candidates in the default grid.
	DefaultGridSize = 31

	// DefaultAlphaGridMin and DefaultAlphaGridMax bound the default log-spaced α grid.
	DefaultAlphaGridMin = 0.1
	DefaultAlphaGridMax = 100.0

	// DefaultTolerance is the relative tolerance CheckConsistency allows between
	// the incrementally cached score and a from-scratch recomputation.
	DefaultTolerance = 1e-6
)

// ---------- Internal panic messages ----------

const (
	panicAlphaInvalid = "view: WithAlpha: alpha must be finite and > 0"
	panicGridInvalid  = "view: WithAlphaGrid: grid must be non-empty with finite values > 0"
	panicPriorInvalid = "view: WithAlphaPrior: shape and rate must be finite and > 0"
	panicRandNil      = "view: WithRand: source must be non-nil"
	panicLoggerNil    = "view: WithLogger: logger must be non-nil"
	panicTolInvalid   = "view: WithTolerance: tolerance must be finite and >= 0"
	panicGridSize     = "view: WithGridSize: size must be >= 1"
)

// Option configures a View at construction. Constructors panic only on
// nonsensical values (programmer error).
type Option func(*options)

type options struct {
	src        rng.Source
	alpha      float64
	alphaGrid  []float64
	alphaPrior numerics.GammaPrior
	gridSize   int
	log        *logging.Logger
	tol        float64
}

func defaultOptions() options {
	return options{
		alpha:    DefaultAlpha,
		gridSize: DefaultGridSize,
		log:      logging.NoopLogger(),
		tol:      DefaultTolerance,
	}
}

// WithRand injects the random source the kernels draw from.
func WithRand(src rng.Source) Option {
	if src == nil {
		panic(panicRandNil)
	}
	return func(o *options) { o.src = src }
}

// WithSeed uses a fresh rng.Rand with the given seed (0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(o *options) { o.src = rng.New(seed) }
}

// WithAlpha sets the initial CRP concentration.
func WithAlpha(alpha float64) Option {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha <= 0 {
		panic(panicAlphaInvalid)
	}
	return func(o *options) { o.alpha = alpha }
}

// WithAlphaGrid sets the candidate values TransitionCRPAlpha draws from.
// The grid is copied.
func WithAlphaGrid(grid []float64) Option {
	if len(grid) == 0 {
		panic(panicGridInvalid)
	}
	for _, a := range grid {
		if math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 {
			panic(panicGridInvalid)
		}
	}
	cp := append([]float64(nil), grid...)
	return func(o *options) { o.alphaGrid = cp }
}

// WithGridSize sets the size of the default log-spaced α grid on
// [DefaultAlphaGridMin, DefaultAlphaGridMax]. Ignored when WithAlphaGrid is given.
func WithGridSize(n int) Option {
	if n < 1 {
		panic(panicGridSize)
	}
	return func(o *options) { o.gridSize = n }
}

// WithAlphaPrior places a Gamma(shape, rate) prior on α. Without it the grid
// points are weighted by the CRP likelihood alone.
func WithAlphaPrior(shape, rate float64) Option {
	if !(shape > 0) || !(rate > 0) || math.IsInf(shape, 0) || math.IsInf(rate, 0) {
		panic(panicPriorInvalid)
	}
	return func(o *options) { o.alphaPrior = numerics.GammaPrior{Shape: shape, Rate: rate} }
}

// WithLogger sets the logger; kernels log at Debug level.
func WithLogger(l *logging.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}
	return func(o *options) { o.log = l }
}

// WithTolerance sets the relative score tolerance used by CheckConsistency.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTolInvalid)
	}
	return func(o *options) { o.tol = tol }
}

// AlphaGridFor returns the log-spaced grid [1, numRows] of n candidates used
// for a view that will hold numRows rows.
func AlphaGridFor(numRows, n int) ([]float64, error) {
	hi := float64(numRows)
	if hi < 1 {
		hi = 1
	}

	return numerics.LogLinspace(1, hi, n)
}
