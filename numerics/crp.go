// SPDX-License-Identifier: MIT

package numerics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// CRPLogLikelihood returns the log probability of a partition with the given
// cluster sizes under a Chinese Restaurant Process with concentration alpha:
//
//	lgamma(α) + K·log α − lgamma(α+N) + Σ_k lgamma(n_k)
//
// where K = len(counts) and N = Σ counts. An empty partition scores 0.
// Zero entries in counts are ignored (they are not live clusters).
//
// Complexity: O(K).
func CRPLogLikelihood(counts []int, alpha float64) float64 {
	var n, k int
	var sumLgamma float64
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		n += c
		k++
		lg, _ := math.Lgamma(float64(c))
		sumLgamma += lg
	}
	if n == 0 {
		return 0
	}
	lgA, _ := math.Lgamma(alpha)
	lgAN, _ := math.Lgamma(alpha + float64(n))

	return lgA + float64(k)*math.Log(alpha) - lgAN + sumLgamma
}

// CRPLogPredictive returns the log probability that the (n+1)-th customer
// joins a table of the given size (count > 0) or opens a new one (count == 0):
//
//	log count − log(α+n)   or   log α − log(α+n)
func CRPLogPredictive(count int, alpha float64, n int) float64 {
	num := math.Log(alpha)
	if count > 0 {
		num = math.Log(float64(count))
	}

	return num - math.Log(alpha+float64(n))
}

// GammaPrior is a Gamma(shape, rate) prior on a positive parameter.
// The zero value means "no prior" (flat over the grid).
type GammaPrior struct {
	Shape float64
	Rate  float64
}

// IsZero reports whether the prior is the flat (unset) prior.
func (p GammaPrior) IsZero() bool { return p.Shape == 0 && p.Rate == 0 }

// LogProb returns the prior log density at x (0 for the flat prior).
func (p GammaPrior) LogProb(x float64) float64 {
	if p.IsZero() {
		return 0
	}

	return distuv.Gamma{Alpha: p.Shape, Beta: p.Rate}.LogProb(x)
}

// AlphaGridLogPosterior scores every candidate concentration on grid against
// the current cluster sizes: CRPLogLikelihood(counts, a) + prior.LogProb(a).
// The result is unnormalised and aligned with grid.
//
// Errors: ErrBadAlpha if a grid value is not finite and positive; ErrBadGrid
// for an empty grid.
//
// Complexity: O(len(grid) · K).
func AlphaGridLogPosterior(grid []float64, counts []int, prior GammaPrior) ([]float64, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("AlphaGridLogPosterior: %w", ErrBadGrid)
	}
	out := make([]float64, len(grid))
	for i, a := range grid {
		if !finite(a) || a <= 0 {
			return nil, fmt.Errorf("AlphaGridLogPosterior(grid[%d]=%v): %w", i, a, ErrBadAlpha)
		}
		out[i] = CRPLogLikelihood(counts, a) + prior.LogProb(a)
	}

	return out, nil
}
