// SPDX-License-Identifier: MIT

package view

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/dpmix/logging"
	"github.com/katalvlaran/dpmix/numerics"
	"github.com/katalvlaran/dpmix/rng"
	"github.com/katalvlaran/dpmix/suffstats"
)

// View is a partition of a row set into clusters, scoped to an ordered set of
// global column indices. See the package documentation for its invariants.
type View struct {
	cols     []int            // local position → global column index
	colIndex map[int]int      // global column index → local position
	specs    []suffstats.Spec // per local column; Hypers track the current values

	arena  clusterArena
	lookup map[int]ClusterID // inserted row → its cluster

	alpha      float64
	alphaGrid  []float64
	alphaPrior numerics.GammaPrior

	src rng.Source
	log *logging.Logger
	tol float64

	// Cached score terms, advanced by deltas on every row move and recomputed
	// whenever α or a hyperparameter changes.
	crpScore  float64
	dataScore float64
}

// New builds an empty View over globalCols with one column spec per column.
// Specs are deep-copied; their Hypers are the initial hyperparameters and
// their Grids the candidates TransitionHypers draws from.
//
// Implementation:
//   - Stage 1: validate the column set (non-negative, unique, len(specs) == len(globalCols)).
//   - Stage 2: validate every spec.
//   - Stage 3: apply options; default source is rng.New(rng.DefaultSeed), default
//     α grid is log-spaced on [DefaultAlphaGridMin, DefaultAlphaGridMax].
//
// Errors: ErrBadColumns, or a wrapped suffstats error for an invalid spec.
func New(globalCols []int, specs []suffstats.Spec, opts ...Option) (*View, error) {
	if len(globalCols) != len(specs) {
		return nil, fmt.Errorf("New: %d columns, %d specs: %w", len(globalCols), len(specs), ErrBadColumns)
	}
	colIndex := make(map[int]int, len(globalCols))
	for i, g := range globalCols {
		if g < 0 {
			return nil, fmt.Errorf("New(col %d): negative index: %w", g, ErrBadColumns)
		}
		if _, dup := colIndex[g]; dup {
			return nil, fmt.Errorf("New(col %d): duplicate: %w", g, ErrBadColumns)
		}
		colIndex[g] = i
	}
	cloned := make([]suffstats.Spec, len(specs))
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("New(col %d): %w", globalCols[i], err)
		}
		cloned[i] = spec.Clone()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		o.src = rng.New(rng.DefaultSeed)
	}
	if o.alphaGrid == nil {
		grid, err := numerics.LogLinspace(DefaultAlphaGridMin, DefaultAlphaGridMax, o.gridSize)
		if err != nil {
			return nil, fmt.Errorf("New: alpha grid: %w", err)
		}
		o.alphaGrid = grid
	}

	return &View{
		cols:       slices.Clone(globalCols),
		colIndex:   colIndex,
		specs:      cloned,
		arena:      newClusterArena(),
		lookup:     make(map[int]ClusterID),
		alpha:      o.alpha,
		alphaGrid:  o.alphaGrid,
		alphaPrior: o.alphaPrior,
		src:        o.src,
		log:        o.log,
		tol:        o.tol,
	}, nil
}

// Score returns the cached joint log score:
// Σ cluster LogMarginal + CRPLogLikelihood(cluster sizes | α).
func (v *View) Score() float64 { return v.crpScore + v.dataScore }

// CalcScore recomputes the joint log score from the current statistics.
//
// Complexity: O(K · #columns).
func (v *View) CalcScore() float64 {
	crp, data := v.calcScoreTerms()
	return crp + data
}

func (v *View) calcScoreTerms() (crp, data float64) {
	counts := make([]int, 0, v.arena.live)
	v.arena.each(func(_ ClusterID, c *Cluster) bool {
		counts = append(counts, c.Count())
		data += c.LogMarginal()
		return true
	})

	return numerics.CRPLogLikelihood(counts, v.alpha), data
}

// NumClusters is the number of non-empty clusters. Clusters emptied by
// RemoveRow and not yet reaped are not counted.
func (v *View) NumClusters() int {
	n := 0
	v.arena.each(func(_ ClusterID, c *Cluster) bool {
		if !c.IsEmpty() {
			n++
		}
		return true
	})

	return n
}

// PendingReap is the number of empty clusters awaiting RemoveIfEmpty/ReapEmpty.
func (v *View) PendingReap() int { return v.arena.live - v.NumClusters() }

// NumVectors is the number of rows currently in the view.
func (v *View) NumVectors() int { return len(v.lookup) }

// ClusterIDs returns the handles of the non-empty clusters in arena order.
func (v *View) ClusterIDs() []ClusterID {
	ids := make([]ClusterID, 0, v.arena.live)
	v.arena.each(func(id ClusterID, c *Cluster) bool {
		if !c.IsEmpty() {
			ids = append(ids, id)
		}
		return true
	})

	return ids
}

// Cluster returns the cluster behind id, including an empty unreaped one.
func (v *View) Cluster(id ClusterID) (*Cluster, error) {
	c, ok := v.arena.get(id)
	if !ok {
		return nil, fmt.Errorf("View.Cluster(%v): %w", id, ErrUnknownCluster)
	}

	return c, nil
}

// ClusterOf returns the cluster holding rowIdx.
func (v *View) ClusterOf(rowIdx int) (ClusterID, bool) {
	id, ok := v.lookup[rowIdx]
	return id, ok
}

// RowIndices returns every row in the view in ascending order.
func (v *View) RowIndices() []int {
	rows := make([]int, 0, len(v.lookup))
	for r := range v.lookup {
		rows = append(rows, r)
	}
	slices.Sort(rows)

	return rows
}

// Columns returns the in-scope global column indices in local order.
func (v *View) Columns() []int { return slices.Clone(v.cols) }

// NumColumns is the number of in-scope columns.
func (v *View) NumColumns() int { return len(v.cols) }

// Alpha is the current CRP concentration.
func (v *View) Alpha() float64 { return v.alpha }

// AlphaGrid returns a copy of the α candidates.
func (v *View) AlphaGrid() []float64 { return slices.Clone(v.alphaGrid) }

// Hypers returns the current hyperparameters of a global column.
func (v *View) Hypers(globalCol int) (suffstats.Hypers, error) {
	local, ok := v.colIndex[globalCol]
	if !ok {
		return nil, fmt.Errorf("View.Hypers(%d): %w", globalCol, ErrUnknownColumn)
	}

	return v.specs[local].Hypers.Clone(), nil
}

// Spec returns a copy of the model spec of a global column.
func (v *View) Spec(globalCol int) (suffstats.Spec, error) {
	local, ok := v.colIndex[globalCol]
	if !ok {
		return suffstats.Spec{}, fmt.Errorf("View.Spec(%d): %w", globalCol, ErrUnknownColumn)
	}

	return v.specs[local].Clone(), nil
}

// clusterSizes returns the non-zero cluster sizes in arena order.
func (v *View) clusterSizes() []int {
	counts := make([]int, 0, v.arena.live)
	v.arena.each(func(_ ClusterID, c *Cluster) bool {
		if n := c.Count(); n > 0 {
			counts = append(counts, n)
		}
		return true
	})

	return counts
}
