// SPDX-License-Identifier: MIT

package suffstats

import (
	"fmt"
	"math"
)

const (
	log2   = math.Ln2
	log2Pi = 1.8378770664093453 // log(2π)
)

// ContinuousNG holds Normal-Gamma sufficient statistics (n, Σx, Σx²) and the
// hypers r (prior pseudo-count on the mean), nu (prior degrees of freedom),
// s (prior scatter) and mu (prior mean).
type ContinuousNG struct {
	count int
	sumX  float64
	sumX2 float64

	r, nu, s, mu float64
}

var _ Column = (*ContinuousNG)(nil)

// Kind implements Column.
func (c *ContinuousNG) Kind() Kind { return Continuous }

// Count implements Column.
func (c *ContinuousNG) Count() int { return c.count }

// Sums returns the raw statistics (n, Σx, Σx²).
func (c *ContinuousNG) Sums() (int, float64, float64) { return c.count, c.sumX, c.sumX2 }

// Insert implements Column. Non-finite values are rejected with ErrOutOfSupport.
func (c *ContinuousNG) Insert(x float64) error {
	if !finite(x) {
		return fmt.Errorf("ContinuousNG.Insert(%v): %w", x, ErrOutOfSupport)
	}
	c.count++
	c.sumX += x
	c.sumX2 += x * x

	return nil
}

// Remove implements Column. Emptying the statistics resets the sums to exact
// zero so floating-point residue cannot outlive the last member.
func (c *ContinuousNG) Remove(x float64) error {
	if !finite(x) {
		return fmt.Errorf("ContinuousNG.Remove(%v): %w", x, ErrOutOfSupport)
	}
	if c.count == 0 {
		return fmt.Errorf("ContinuousNG.Remove(%v): %w", x, ErrUnderflow)
	}
	c.count--
	if c.count == 0 {
		c.sumX, c.sumX2 = 0, 0
		return nil
	}
	c.sumX -= x
	c.sumX2 -= x * x

	return nil
}

// LogMarginal implements Column:
//
//	log p(x_1..x_n) = −n/2·log 2π + logZ(r', ν', s') − logZ(r, ν, s)
//
// with r' = r+n, ν' = ν+n, μ' = (rμ + Σx)/r', s' = s + Σx² + rμ² − r'μ'².
//
// Complexity: O(1).
func (c *ContinuousNG) LogMarginal() float64 {
	return continuousLogMarginal(c.count, c.sumX, c.sumX2, c.r, c.nu, c.s, c.mu)
}

// LogPredictive implements Column.
func (c *ContinuousNG) LogPredictive(x float64) (float64, error) {
	if !finite(x) {
		return 0, fmt.Errorf("ContinuousNG.LogPredictive(%v): %w", x, ErrOutOfSupport)
	}
	with := continuousLogMarginal(c.count+1, c.sumX+x, c.sumX2+x*x, c.r, c.nu, c.s, c.mu)

	return with - c.LogMarginal(), nil
}

// Hypers implements Column.
func (c *ContinuousNG) Hypers() Hypers {
	return Hypers{HyperR: c.r, HyperNu: c.nu, HyperS: c.s, HyperMu: c.mu}
}

// HyperNames implements Column.
func (c *ContinuousNG) HyperNames() []string { return Continuous.HyperNames() }

// SetHyper implements Column.
func (c *ContinuousNG) SetHyper(name string, v float64) error {
	if err := checkHyper(Continuous, name, v); err != nil {
		return fmt.Errorf("ContinuousNG.SetHyper: %w", err)
	}
	switch name {
	case HyperR:
		c.r = v
	case HyperNu:
		c.nu = v
	case HyperS:
		c.s = v
	case HyperMu:
		c.mu = v
	}

	return nil
}

// GridLogMarginals implements Column.
func (c *ContinuousNG) GridLogMarginals(name string, grid []float64) ([]float64, error) {
	out := make([]float64, len(grid))
	for i, v := range grid {
		if err := checkHyper(Continuous, name, v); err != nil {
			return nil, fmt.Errorf("ContinuousNG.GridLogMarginals(grid[%d]): %w", i, err)
		}
		r, nu, s, mu := c.r, c.nu, c.s, c.mu
		switch name {
		case HyperR:
			r = v
		case HyperNu:
			nu = v
		case HyperS:
			s = v
		case HyperMu:
			mu = v
		}
		out[i] = continuousLogMarginal(c.count, c.sumX, c.sumX2, r, nu, s, mu)
	}

	return out, nil
}

// Equal implements Column.
func (c *ContinuousNG) Equal(other Column, tol float64) bool {
	o, ok := other.(*ContinuousNG)
	if !ok || o.count != c.count {
		return false
	}

	return near(c.sumX, o.sumX, tol) && near(c.sumX2, o.sumX2, tol) &&
		c.r == o.r && c.nu == o.nu && c.s == o.s && c.mu == o.mu
}

func continuousLogMarginal(n int, sumX, sumX2, r, nu, s, mu float64) float64 {
	if n == 0 {
		return 0
	}
	fn := float64(n)
	rp := r + fn
	nup := nu + fn
	mup := (r*mu + sumX) / rp
	sp := s + sumX2 + r*mu*mu - rp*mup*mup

	return -0.5*fn*log2Pi + continuousLogZ(rp, nup, sp) - continuousLogZ(r, nu, s)
}

// continuousLogZ is the log normaliser of the Normal-Gamma density.
func continuousLogZ(r, nu, s float64) float64 {
	halfNu := 0.5 * nu
	lg, _ := math.Lgamma(halfNu)

	return halfNu*(log2-math.Log(s)) + 0.5*(log2Pi-math.Log(r)) + lg
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b))) }
