// SPDX-License-Identifier: MIT

package view

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dpmix/suffstats"
)

// TransitionHypers resamples every hyperparameter of every in-scope column
// on its grid. Columns are visited in view order and hypers in HyperNames
// order; each draw is applied before the next hyper is scored.
//
// Implementation (per column j, hyper h):
//   - Stage 1: for each grid value g, Σ over non-empty clusters of the
//     column's marginal with h = g.
//   - Stage 2: normalise with log-sum-exp and draw g*.
//   - Stage 3: set h = g* in every cluster's column j and in the spec.
//
// Statistics are never modified. The cached score is recomputed at the end.
//
// Complexity: O(#columns · Σ|grid| · K).
func (v *View) TransitionHypers() error {
	ctx := context.Background()
	for j, g := range v.cols {
		err := v.resampleColumn(j)
		v.log.LogHypers(ctx, g, v.specs[j].Hypers, err)
		if err != nil {
			v.crpScore, v.dataScore = v.calcScoreTerms()
			return fmt.Errorf("View.TransitionHypers(col %d): %w", g, err)
		}
	}
	v.crpScore, v.dataScore = v.calcScoreTerms()

	return nil
}

func (v *View) resampleColumn(j int) error {
	spec := &v.specs[j]
	for _, name := range spec.Kind.HyperNames() {
		grid := spec.Grids[name]
		if len(grid) == 0 {
			return fmt.Errorf("hyper %q: empty grid: %w", name, suffstats.ErrBadSpec)
		}
		logPost, err := v.hyperGridLogPosterior(j, name, grid)
		if err != nil {
			return fmt.Errorf("hyper %q: %w", name, err)
		}
		k, err := v.src.LogCategorical(logPost)
		if err != nil {
			return fmt.Errorf("hyper %q: %w", name, err)
		}
		if err = v.setHyper(j, name, grid[k]); err != nil {
			return fmt.Errorf("hyper %q: %w", name, err)
		}
	}

	return nil
}

// hyperGridLogPosterior sums the per-cluster grid marginals of column j.
// The grid carries a flat prior.
func (v *View) hyperGridLogPosterior(j int, name string, grid []float64) ([]float64, error) {
	total := make([]float64, len(grid))
	var err error
	v.arena.each(func(_ ClusterID, c *Cluster) bool {
		if c.IsEmpty() {
			return true
		}
		var lm []float64
		if lm, err = c.columns[j].GridLogMarginals(name, grid); err != nil {
			return false
		}
		for i, x := range lm {
			total[i] += x
		}
		return true
	})

	return total, err
}

func (v *View) setHyper(j int, name string, value float64) error {
	var err error
	v.arena.each(func(_ ClusterID, c *Cluster) bool {
		err = c.columns[j].SetHyper(name, value)
		return err == nil
	})
	if err != nil {
		return err
	}
	v.specs[j].Hypers[name] = value

	return nil
}

// Transition runs one full iteration: TransitionZs, TransitionCRPAlpha,
// TransitionHypers.
func (v *View) Transition(data map[int][]float64) error {
	if err := v.TransitionZs(data); err != nil {
		return err
	}
	if err := v.TransitionCRPAlpha(); err != nil {
		return err
	}

	return v.TransitionHypers()
}
