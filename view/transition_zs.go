// SPDX-License-Identifier: MIT

package view

import (
	"context"
	"fmt"
)

// TransitionZs performs one collapsed Gibbs sweep over the row assignments.
// data maps every row in the view to its values aligned to Columns; extra
// entries are ignored.
//
// Implementation (per row, in ascending row index):
//   - Stage 1: remove the row from its cluster c₀ without reaping.
//   - Stage 2: weigh each non-empty cluster by log|c| + LL(c ∪ {r}) − LL(c)
//     and a new cluster by log α + LL({r}).
//   - Stage 3: normalise with log-sum-exp and draw one outcome.
//   - Stage 4: insert the row into the drawn cluster, opening it if new.
//   - Stage 5: reap c₀ if it is now empty.
//
// Every row is checked against data before the first move, so a missing or
// misaligned row leaves the view untouched.
//
// Errors: ErrMissingData, ErrDimensionMismatch.
//
// Complexity: O(N · K · #columns) per sweep.
func (v *View) TransitionZs(data map[int][]float64) error {
	rows := v.RowIndices()
	for _, r := range rows {
		row, ok := data[r]
		if !ok {
			return fmt.Errorf("View.TransitionZs(row %d): %w", r, ErrMissingData)
		}
		if len(row) != len(v.cols) {
			return fmt.Errorf("View.TransitionZs(row %d): len=%d want %d: %w", r, len(row), len(v.cols), ErrDimensionMismatch)
		}
	}

	err := v.sweepRows(rows, data)
	v.log.LogSweep(context.Background(), len(rows), v.NumClusters(), v.Score(), err)

	return err
}

func (v *View) sweepRows(rows []int, data map[int][]float64) error {
	blank, err := newCluster(v.specs)
	if err != nil {
		return fmt.Errorf("View.TransitionZs: %w", err)
	}
	for _, r := range rows {
		row := data[r]
		from := v.lookup[r]
		if err = v.moveOut(from, row, r); err != nil {
			return fmt.Errorf("View.TransitionZs(row %d): %w", r, err)
		}
		var to ClusterID
		if to, err = v.sampleCluster(row, blank); err != nil {
			// Restore the row before reporting; from has not been reaped.
			if restore := v.moveIn(from, row, r); restore != nil {
				return fmt.Errorf("View.TransitionZs(row %d): %w (restore: %v)", r, err, restore)
			}
			return fmt.Errorf("View.TransitionZs(row %d): %w", r, err)
		}
		if to.IsZero() {
			to = v.arena.alloc(blank)
			if blank, err = newCluster(v.specs); err != nil {
				return fmt.Errorf("View.TransitionZs: %w", err)
			}
		}
		if err = v.moveIn(to, row, r); err != nil {
			return fmt.Errorf("View.TransitionZs(row %d): %w", r, err)
		}
		if from != to {
			v.releaseIfEmpty(from)
		}
	}

	return nil
}
