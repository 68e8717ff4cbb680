// SPDX-License-Identifier: MIT

package numerics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogSumExp returns log(Σ exp(x_i)) without overflow or underflow.
// An empty input yields -Inf.
func LogSumExp(x []float64) float64 {
	if len(x) == 0 {
		return math.Inf(-1)
	}

	return floats.LogSumExp(x)
}

// NormalizeLog converts unnormalised log weights into probabilities.
// The input is not mutated.
//
// Complexity: O(n).
func NormalizeLog(logWeights []float64) []float64 {
	out := make([]float64, len(logWeights))
	lse := LogSumExp(logWeights)
	for i, lw := range logWeights {
		out[i] = math.Exp(lw - lse)
	}

	return out
}

// Linspace returns n evenly spaced values over [lo, hi].
// n == 1 yields []float64{lo}.
//
// Errors: ErrBadGrid when n < 1, bounds are not finite, or hi < lo.
func Linspace(lo, hi float64, n int) ([]float64, error) {
	if n < 1 || !finite(lo) || !finite(hi) || hi < lo {
		return nil, fmt.Errorf("Linspace(%v, %v, %d): %w", lo, hi, n, ErrBadGrid)
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out, nil
	}

	return floats.Span(out, lo, hi), nil
}

// LogLinspace returns n values evenly spaced in log space over [lo, hi].
// Both bounds must be > 0.
//
// Errors: ErrBadGrid when n < 1, a bound is not positive/finite, or hi < lo.
func LogLinspace(lo, hi float64, n int) ([]float64, error) {
	if n < 1 || !finite(lo) || !finite(hi) || lo <= 0 || hi < lo {
		return nil, fmt.Errorf("LogLinspace(%v, %v, %d): %w", lo, hi, n, ErrBadGrid)
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out, nil
	}

	return floats.LogSpan(out, lo, hi), nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
