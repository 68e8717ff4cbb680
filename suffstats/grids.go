// SPDX-License-Identifier: MIT

package suffstats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/dpmix/numerics"
)

// DefaultGridSize is the number of candidates per hyperparameter grid.
const DefaultGridSize = 31

// Summary is the column-level statistics hyper grids are derived from.
type Summary struct {
	N        int
	Mean     float64
	SumSqDev float64 // Σ (x − mean)²
	Min, Max float64
}

// Variance returns the sample variance (0 for fewer than two values).
func (s Summary) Variance() float64 {
	if s.N < 2 {
		return 0
	}

	return s.SumSqDev / float64(s.N-1)
}

// Summarize computes a Summary over values.
// An empty input yields the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean, variance := stat.MeanVariance(values, nil)
	ssd := 0.0
	if len(values) > 1 {
		ssd = variance * float64(len(values)-1)
	}

	return Summary{
		N:        len(values),
		Mean:     mean,
		SumSqDev: ssd,
		Min:      floats.Min(values),
		Max:      floats.Max(values),
	}
}

// ContinuousSpec builds a Continuous Spec whose hypers and grids are derived
// from the column summary:
//
//   - r, nu: log-spaced over [1/N, N] and [1, N]; start at 1.
//   - s:     log-spaced over [SS/N², SS], SS = max(Σ(x−mean)², 1e-2); starts at SS/N.
//   - mu:    linearly spaced over [min, max] (widened by 1 when degenerate); starts at the mean.
//
// Errors: ErrBadSpec for n < 1.
func ContinuousSpec(sum Summary, n int) (Spec, error) {
	if n < 1 {
		return Spec{}, fmt.Errorf("ContinuousSpec(n=%d): %w", n, ErrBadSpec)
	}
	count := math.Max(float64(sum.N), 2)
	ss := math.Max(sum.SumSqDev, 1e-2)
	lo, hi := sum.Min, sum.Max
	if !(hi > lo) {
		lo, hi = sum.Mean-1, sum.Mean+1
	}

	rGrid, err := numerics.LogLinspace(1/count, count, n)
	if err != nil {
		return Spec{}, fmt.Errorf("ContinuousSpec: %w", err)
	}
	nuGrid, err := numerics.LogLinspace(1, count, n)
	if err != nil {
		return Spec{}, fmt.Errorf("ContinuousSpec: %w", err)
	}
	sGrid, err := numerics.LogLinspace(ss/(count*count), ss, n)
	if err != nil {
		return Spec{}, fmt.Errorf("ContinuousSpec: %w", err)
	}
	muGrid, err := numerics.Linspace(lo, hi, n)
	if err != nil {
		return Spec{}, fmt.Errorf("ContinuousSpec: %w", err)
	}

	return Spec{
		Kind: Continuous,
		Hypers: Hypers{
			HyperR:  1,
			HyperNu: 1,
			HyperS:  ss / count,
			HyperMu: sum.Mean,
		},
		Grids: Grids{
			HyperR:  rGrid,
			HyperNu: nuGrid,
			HyperS:  sGrid,
			HyperMu: muGrid,
		},
	}, nil
}

// MultinomialSpec builds a Multinomial Spec over k categories for a column of
// numRows values: alpha is log-spaced over [1/N, N] and starts at 1.
func MultinomialSpec(k, numRows, n int) (Spec, error) {
	if k < 1 || n < 1 {
		return Spec{}, fmt.Errorf("MultinomialSpec(k=%d, n=%d): %w", k, n, ErrBadSpec)
	}
	count := math.Max(float64(numRows), 2)
	grid, err := numerics.LogLinspace(1/count, count, n)
	if err != nil {
		return Spec{}, fmt.Errorf("MultinomialSpec: %w", err)
	}

	return Spec{
		Kind:   Multinomial,
		K:      k,
		Hypers: Hypers{HyperAlpha: 1},
		Grids:  Grids{HyperAlpha: grid},
	}, nil
}

// SpecFor builds a data-driven Spec of the given kind from raw column values.
// For Multinomial, K is max(value)+1.
func SpecFor(kind Kind, values []float64, n int) (Spec, error) {
	switch kind {
	case Continuous:
		return ContinuousSpec(Summarize(values), n)
	case Multinomial:
		k := 1
		for _, v := range values {
			if !finite(v) || v < 0 || v != math.Trunc(v) {
				return Spec{}, fmt.Errorf("SpecFor(%v): %w", v, ErrOutOfSupport)
			}
			if int(v)+1 > k {
				k = int(v) + 1
			}
		}
		return MultinomialSpec(k, len(values), n)
	default:
		return Spec{}, fmt.Errorf("SpecFor(kind=%v): %w", kind, ErrUnknownKind)
	}
}
