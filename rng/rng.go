// SPDX-License-Identifier: MIT

package rng

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed is the fixed seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const DefaultSeed int64 = 1

// Source is the draw contract the sampling kernels depend on.
// Implementations must be deterministic for a fixed seed.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// Intn returns a uniform integer in [0, n). n must be > 0.
	Intn(n int) int
	// Categorical draws an index with probability proportional to weights[i].
	Categorical(weights []float64) (int, error)
	// LogCategorical draws an index with probability proportional to exp(logWeights[i]).
	LogCategorical(logWeights []float64) (int, error)
}

// Rand is the default Source.
type Rand struct {
	seed int64
	src  rand.Source
	r    *rand.Rand
}

var _ Source = (*Rand)(nil)

// New returns a deterministic Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func New(seed int64) *Rand {
	s := seed
	if s == 0 {
		s = DefaultSeed
	}
	src := rand.NewSource(uint64(s))

	return &Rand{seed: s, src: src, r: rand.New(src)}
}

// Seed reports the effective seed of the stream (after the zero policy).
func (g *Rand) Seed() int64 { return g.seed }

// Float64 returns a uniform draw in [0, 1).
func (g *Rand) Float64() float64 { return g.r.Float64() }

// Intn returns a uniform integer in [0, n).
func (g *Rand) Intn(n int) int { return g.r.Intn(n) }

// Categorical draws an index proportional to non-negative weights.
//
// Implementation:
//   - Stage 1: validate weights (non-empty, finite, non-negative, positive sum).
//   - Stage 2: draw via distuv.Categorical sharing this stream's source.
//
// Errors: ErrEmptyWeights, ErrInvalidWeights.
//
// Complexity: O(n).
func (g *Rand) Categorical(weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, ErrEmptyWeights
	}
	var sum float64
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return 0, fmt.Errorf("Rand.Categorical(weights[%d]=%v): %w", i, w, ErrInvalidWeights)
		}
		sum += w
	}
	if sum <= 0 {
		return 0, fmt.Errorf("Rand.Categorical(sum=%v): %w", sum, ErrInvalidWeights)
	}
	if len(weights) == 1 {
		return 0, nil
	}

	return int(distuv.NewCategorical(weights, g.src).Rand()), nil
}

// LogCategorical draws an index proportional to exp(logWeights[i]).
// Weights are shifted by their log-sum-exp before exponentiation so that
// arbitrarily small likelihoods never underflow to an all-zero vector.
//
// Errors: ErrEmptyWeights; ErrInvalidWeights for NaN, +Inf or all -Inf input.
//
// Complexity: O(n).
func (g *Rand) LogCategorical(logWeights []float64) (int, error) {
	if len(logWeights) == 0 {
		return 0, ErrEmptyWeights
	}
	for i, lw := range logWeights {
		if math.IsNaN(lw) || math.IsInf(lw, 1) {
			return 0, fmt.Errorf("Rand.LogCategorical(logWeights[%d]=%v): %w", i, lw, ErrInvalidWeights)
		}
	}
	lse := floats.LogSumExp(logWeights)
	if math.IsInf(lse, -1) || math.IsNaN(lse) {
		return 0, fmt.Errorf("Rand.LogCategorical(logsumexp=%v): %w", lse, ErrInvalidWeights)
	}

	probs := make([]float64, len(logWeights))
	for i, lw := range logWeights {
		probs[i] = math.Exp(lw - lse)
	}

	return g.Categorical(probs)
}

// Derive creates an independent deterministic stream from this one and a
// stream identifier. The parent advances by one draw, so reusing the same
// stream id twice still yields distinct children.
//
// Usage:
//   - Call during setup (not in hot loops) to create per-chain streams.
//
// Complexity: O(1).
func (g *Rand) Derive(stream uint64) *Rand {
	parent := int64(g.r.Uint64())

	return New(deriveSeed(parent, stream))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with the SplitMix64 finalizer (Vigna 2014 constants). A zero result is
// remapped so it cannot collide with the DefaultSeed policy.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		x = 0x9e3779b97f4a7c15
	}

	return int64(x)
}
