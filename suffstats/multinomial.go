// SPDX-License-Identifier: MIT

package suffstats

import (
	"fmt"
	"math"
)

// MultinomialDir holds per-category counts for categorical codes 0..K-1 under
// a symmetric Dirichlet(alpha) prior.
type MultinomialDir struct {
	counts []int
	n      int
	alpha  float64
}

var _ Column = (*MultinomialDir)(nil)

// Kind implements Column.
func (m *MultinomialDir) Kind() Kind { return Multinomial }

// Count implements Column.
func (m *MultinomialDir) Count() int { return m.n }

// K returns the number of categories.
func (m *MultinomialDir) K() int { return len(m.counts) }

// Counts returns a copy of the per-category counts.
func (m *MultinomialDir) Counts() []int { return append([]int(nil), m.counts...) }

// Insert implements Column. x must be an integral code in [0, K).
func (m *MultinomialDir) Insert(x float64) error {
	k, err := m.category(x)
	if err != nil {
		return fmt.Errorf("MultinomialDir.Insert: %w", err)
	}
	m.counts[k]++
	m.n++

	return nil
}

// Remove implements Column.
func (m *MultinomialDir) Remove(x float64) error {
	k, err := m.category(x)
	if err != nil {
		return fmt.Errorf("MultinomialDir.Remove: %w", err)
	}
	if m.counts[k] == 0 {
		return fmt.Errorf("MultinomialDir.Remove(%v): %w", x, ErrUnderflow)
	}
	m.counts[k]--
	m.n--

	return nil
}

// LogMarginal implements Column:
//
//	lgamma(Kα) − lgamma(Kα + n) + Σ_k [lgamma(α + c_k) − lgamma(α)]
//
// Complexity: O(K).
func (m *MultinomialDir) LogMarginal() float64 {
	return multinomialLogMarginal(m.counts, m.n, m.alpha)
}

// LogPredictive implements Column: log((α + c_x) / (Kα + n)).
func (m *MultinomialDir) LogPredictive(x float64) (float64, error) {
	k, err := m.category(x)
	if err != nil {
		return 0, fmt.Errorf("MultinomialDir.LogPredictive: %w", err)
	}
	num := m.alpha + float64(m.counts[k])
	den := float64(len(m.counts))*m.alpha + float64(m.n)

	return math.Log(num) - math.Log(den), nil
}

// Hypers implements Column.
func (m *MultinomialDir) Hypers() Hypers { return Hypers{HyperAlpha: m.alpha} }

// HyperNames implements Column.
func (m *MultinomialDir) HyperNames() []string { return Multinomial.HyperNames() }

// SetHyper implements Column.
func (m *MultinomialDir) SetHyper(name string, v float64) error {
	if err := checkHyper(Multinomial, name, v); err != nil {
		return fmt.Errorf("MultinomialDir.SetHyper: %w", err)
	}
	m.alpha = v

	return nil
}

// GridLogMarginals implements Column.
func (m *MultinomialDir) GridLogMarginals(name string, grid []float64) ([]float64, error) {
	out := make([]float64, len(grid))
	for i, v := range grid {
		if err := checkHyper(Multinomial, name, v); err != nil {
			return nil, fmt.Errorf("MultinomialDir.GridLogMarginals(grid[%d]): %w", i, err)
		}
		out[i] = multinomialLogMarginal(m.counts, m.n, v)
	}

	return out, nil
}

// Equal implements Column.
func (m *MultinomialDir) Equal(other Column, _ float64) bool {
	o, ok := other.(*MultinomialDir)
	if !ok || o.n != m.n || len(o.counts) != len(m.counts) || o.alpha != m.alpha {
		return false
	}
	for k := range m.counts {
		if m.counts[k] != o.counts[k] {
			return false
		}
	}

	return true
}

func (m *MultinomialDir) category(x float64) (int, error) {
	if !finite(x) || x != math.Trunc(x) || x < 0 || int(x) >= len(m.counts) {
		return 0, fmt.Errorf("category %v of K=%d: %w", x, len(m.counts), ErrOutOfSupport)
	}

	return int(x), nil
}

func multinomialLogMarginal(counts []int, n int, alpha float64) float64 {
	if n == 0 {
		return 0
	}
	k := float64(len(counts))
	lgKA, _ := math.Lgamma(k * alpha)
	lgKAN, _ := math.Lgamma(k*alpha + float64(n))
	lgA, _ := math.Lgamma(alpha)
	logp := lgKA - lgKAN
	for _, c := range counts {
		if c == 0 {
			continue
		}
		lg, _ := math.Lgamma(alpha + float64(c))
		logp += lg - lgA
	}

	return logp
}
