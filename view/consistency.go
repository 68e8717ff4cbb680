// SPDX-License-Identifier: MIT

package view

import (
	"fmt"
	"maps"
	"math"
)

// CheckConsistency verifies the structural invariants and the cached score.
//
// Implementation:
//   - Stage 1: every lookup entry names a live cluster that contains the row.
//   - Stage 2: no empty cluster is live; Σ cluster sizes == NumVectors.
//   - Stage 3: every cluster has NumColumns columns whose counts equal its size
//     and whose hypers equal the view's current hypers.
//   - Stage 4: Score agrees with CalcScore within the configured relative tolerance.
//
// Every failure wraps ErrInconsistentState.
//
// Complexity: O(N + K · #columns).
func (v *View) CheckConsistency() error {
	for r, id := range v.lookup {
		c, ok := v.arena.get(id)
		if !ok {
			return fmt.Errorf("row %d maps to dead cluster %v: %w", r, id, ErrInconsistentState)
		}
		if !c.Contains(r) {
			return fmt.Errorf("row %d maps to %v which does not hold it: %w", r, id, ErrInconsistentState)
		}
	}

	var err error
	total := 0
	v.arena.each(func(id ClusterID, c *Cluster) bool {
		n := c.Count()
		if n == 0 {
			err = fmt.Errorf("cluster %v is empty: %w", id, ErrInconsistentState)
			return false
		}
		total += n
		if len(c.columns) != len(v.cols) {
			err = fmt.Errorf("cluster %v has %d columns, view has %d: %w", id, len(c.columns), len(v.cols), ErrInconsistentState)
			return false
		}
		for j, col := range c.columns {
			if col.Count() != n {
				err = fmt.Errorf("cluster %v col %d counts %d rows, cluster has %d: %w", id, v.cols[j], col.Count(), n, ErrInconsistentState)
				return false
			}
			if !maps.Equal(col.Hypers(), v.specs[j].Hypers) {
				err = fmt.Errorf("cluster %v col %d hypers %v, view has %v: %w", id, v.cols[j], col.Hypers(), v.specs[j].Hypers, ErrInconsistentState)
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	if total != len(v.lookup) {
		return fmt.Errorf("clusters hold %d rows, lookup has %d: %w", total, len(v.lookup), ErrInconsistentState)
	}

	cached, fresh := v.Score(), v.CalcScore()
	if math.Abs(cached-fresh) > v.tol*math.Max(1, math.Abs(fresh)) {
		return fmt.Errorf("cached score %v, recomputed %v: %w", cached, fresh, ErrInconsistentState)
	}

	return nil
}

// CheckStatistics rebuilds every cluster's statistics from data (rows aligned
// to Columns) and compares them with the incrementally maintained ones.
//
// Errors: ErrMissingData or ErrDimensionMismatch for unusable data;
// ErrInconsistentState when statistics differ.
//
// Complexity: O(N · #columns).
func (v *View) CheckStatistics(data map[int][]float64) error {
	var err error
	v.arena.each(func(id ClusterID, c *Cluster) bool {
		var fresh *Cluster
		if fresh, err = newCluster(v.specs); err != nil {
			return false
		}
		for _, r := range c.RowIndices() {
			row, ok := data[r]
			if !ok {
				err = fmt.Errorf("View.CheckStatistics(row %d): %w", r, ErrMissingData)
				return false
			}
			if err = fresh.insert(row, r); err != nil {
				err = fmt.Errorf("View.CheckStatistics(row %d): %w", r, err)
				return false
			}
		}
		for j, col := range c.columns {
			if !col.Equal(fresh.columns[j], v.tol) {
				err = fmt.Errorf("cluster %v col %d statistics drifted: %w", id, v.cols[j], ErrInconsistentState)
				return false
			}
		}
		return true
	})

	return err
}

// AssertStateConsistency panics if CheckConsistency fails, or if data is
// non-nil and CheckStatistics fails. A broken invariant is a defect in the
// caller or in this package and cannot be recovered from.
func (v *View) AssertStateConsistency(data map[int][]float64) {
	if err := v.CheckConsistency(); err != nil {
		panic(err)
	}
	if data == nil {
		return
	}
	if err := v.CheckStatistics(data); err != nil {
		panic(err)
	}
}
