// SPDX-License-Identifier: MIT

package view

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dpmix/numerics"
)

// InsertRow places a new row, drawing its cluster from the collapsed
// conditional: an existing cluster c with weight |c|·p(row | c), a new
// singleton with weight α·p(row). With no non-empty cluster the row opens a
// singleton without consuming randomness.
//
// row must already be aligned to Columns (see AlignData).
//
// Errors: ErrBadRowIndex, ErrRowExists, ErrDimensionMismatch, or a wrapped
// suffstats error when a value is outside its column's support.
func (v *View) InsertRow(row []float64, rowIdx int) (ClusterID, error) {
	if err := v.checkInsert("View.InsertRow", row, rowIdx); err != nil {
		return ClusterID{}, err
	}
	blank, err := newCluster(v.specs)
	if err != nil {
		return ClusterID{}, fmt.Errorf("View.InsertRow(%d): %w", rowIdx, err)
	}
	id, err := v.sampleCluster(row, blank)
	if err != nil {
		return ClusterID{}, fmt.Errorf("View.InsertRow(%d): %w", rowIdx, err)
	}
	if id.IsZero() {
		id = v.arena.alloc(blank)
	}
	if err = v.moveIn(id, row, rowIdx); err != nil {
		v.releaseIfEmpty(id)
		return ClusterID{}, fmt.Errorf("View.InsertRow(%d): %w", rowIdx, err)
	}

	return id, nil
}

// InsertRowInto places a new row into the existing cluster id. An empty
// cluster that has not been reaped is a valid target.
//
// Errors: ErrBadRowIndex, ErrRowExists, ErrDimensionMismatch, ErrUnknownCluster.
func (v *View) InsertRowInto(row []float64, id ClusterID, rowIdx int) error {
	if err := v.checkInsert("View.InsertRowInto", row, rowIdx); err != nil {
		return err
	}
	if _, ok := v.arena.get(id); !ok {
		return fmt.Errorf("View.InsertRowInto(%d, %v): %w", rowIdx, id, ErrUnknownCluster)
	}
	if err := v.moveIn(id, row, rowIdx); err != nil {
		return fmt.Errorf("View.InsertRowInto(%d, %v): %w", rowIdx, id, err)
	}

	return nil
}

// RemoveRow removes rowIdx from its cluster and returns that cluster's handle.
// An emptied cluster is left in place; reap it with RemoveIfEmpty or ReapEmpty.
//
// Errors: ErrBadRowIndex, ErrRowNotFound, ErrDimensionMismatch.
func (v *View) RemoveRow(row []float64, rowIdx int) (ClusterID, error) {
	if err := checkRowIndex(rowIdx); err != nil {
		return ClusterID{}, fmt.Errorf("View.RemoveRow(%d): %w", rowIdx, err)
	}
	id, ok := v.lookup[rowIdx]
	if !ok {
		return ClusterID{}, fmt.Errorf("View.RemoveRow(%d): %w", rowIdx, ErrRowNotFound)
	}
	if len(row) != len(v.cols) {
		return ClusterID{}, fmt.Errorf("View.RemoveRow(%d): len=%d want %d: %w", rowIdx, len(row), len(v.cols), ErrDimensionMismatch)
	}
	if err := v.moveOut(id, row, rowIdx); err != nil {
		return ClusterID{}, fmt.Errorf("View.RemoveRow(%d): %w", rowIdx, err)
	}

	return id, nil
}

// RemoveIfEmpty releases cluster id if it has no members and reports whether
// it did. A non-empty cluster is left untouched.
//
// Errors: ErrUnknownCluster for a stale or foreign handle.
func (v *View) RemoveIfEmpty(id ClusterID) (bool, error) {
	c, ok := v.arena.get(id)
	if !ok {
		return false, fmt.Errorf("View.RemoveIfEmpty(%v): %w", id, ErrUnknownCluster)
	}
	if !c.IsEmpty() {
		return false, nil
	}
	v.arena.release(id)

	return true, nil
}

// ReapEmpty releases every empty cluster and returns how many it released.
func (v *View) ReapEmpty() int {
	var empty []ClusterID
	v.arena.each(func(id ClusterID, c *Cluster) bool {
		if c.IsEmpty() {
			empty = append(empty, id)
		}
		return true
	})
	for _, id := range empty {
		v.arena.release(id)
	}

	return len(empty)
}

// AlignData reorders and subsets a raw row, laid out under globalCols, to the
// view's current column order. The result is a new slice.
//
// Errors: ErrDimensionMismatch if len(row) != len(globalCols); ErrBadColumns
// for a repeated index; ErrMissingColumn if an in-scope column is absent.
//
// Complexity: O(len(globalCols) + NumColumns).
func (v *View) AlignData(row []float64, globalCols []int) ([]float64, error) {
	if len(row) != len(globalCols) {
		return nil, fmt.Errorf("View.AlignData: len(row)=%d len(cols)=%d: %w", len(row), len(globalCols), ErrDimensionMismatch)
	}
	pos := make(map[int]int, len(globalCols))
	for i, g := range globalCols {
		if _, dup := pos[g]; dup {
			return nil, fmt.Errorf("View.AlignData(col %d): duplicate: %w", g, ErrBadColumns)
		}
		pos[g] = i
	}
	out := make([]float64, len(v.cols))
	for j, g := range v.cols {
		i, ok := pos[g]
		if !ok {
			return nil, fmt.Errorf("View.AlignData(col %d): %w", g, ErrMissingColumn)
		}
		out[j] = row[i]
	}

	return out, nil
}

// AlignAll applies AlignData to every row of data.
func (v *View) AlignAll(data map[int][]float64, globalCols []int) (map[int][]float64, error) {
	out := make(map[int][]float64, len(data))
	for r, row := range data {
		aligned, err := v.AlignData(row, globalCols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		out[r] = aligned
	}

	return out, nil
}

func checkRowIndex(rowIdx int) error {
	if rowIdx < 0 || uint64(rowIdx) > MaxRowIndex {
		return ErrBadRowIndex
	}

	return nil
}

func (v *View) checkInsert(method string, row []float64, rowIdx int) error {
	if err := checkRowIndex(rowIdx); err != nil {
		return fmt.Errorf("%s(%d): %w", method, rowIdx, err)
	}
	if _, ok := v.lookup[rowIdx]; ok {
		return fmt.Errorf("%s(%d): %w", method, rowIdx, ErrRowExists)
	}
	if len(row) != len(v.cols) {
		return fmt.Errorf("%s(%d): len=%d want %d: %w", method, rowIdx, len(row), len(v.cols), ErrDimensionMismatch)
	}

	return nil
}

// sampleCluster draws the destination of row among the non-empty clusters and
// a fresh one (blank, which must be empty). It returns the zero ClusterID for
// the fresh cluster.
//
// Implementation:
//   - Stage 1: log-weight log|c| + logPredictive(c, row) per non-empty cluster.
//   - Stage 2: log α + logPredictive(blank, row) for the new cluster.
//   - Stage 3: normalise and draw; a lone candidate is taken without a draw.
//
// Complexity: O(K · #columns).
func (v *View) sampleCluster(row []float64, blank *Cluster) (ClusterID, error) {
	ids := make([]ClusterID, 0, v.arena.live+1)
	logW := make([]float64, 0, v.arena.live+1)
	var err error
	v.arena.each(func(id ClusterID, c *Cluster) bool {
		if c.IsEmpty() {
			return true
		}
		var lp float64
		if lp, err = c.logPredictive(row); err != nil {
			return false
		}
		ids = append(ids, id)
		logW = append(logW, math.Log(float64(c.Count()))+lp)
		return true
	})
	if err != nil {
		return ClusterID{}, err
	}
	lp, err := blank.logPredictive(row)
	if err != nil {
		return ClusterID{}, err
	}
	if len(ids) == 0 {
		return ClusterID{}, nil
	}
	ids = append(ids, ClusterID{})
	logW = append(logW, math.Log(v.alpha)+lp)

	k, err := v.src.LogCategorical(logW)
	if err != nil {
		return ClusterID{}, err
	}

	return ids[k], nil
}

// moveIn inserts a row into cluster id and advances the cached score and lookup.
func (v *View) moveIn(id ClusterID, row []float64, rowIdx int) error {
	c, ok := v.arena.get(id)
	if !ok {
		return ErrUnknownCluster
	}
	size, total := c.Count(), len(v.lookup)
	before := c.LogMarginal()
	if err := c.insert(row, rowIdx); err != nil {
		return err
	}
	v.dataScore += c.LogMarginal() - before
	v.crpScore += numerics.CRPLogPredictive(size, v.alpha, total)
	v.lookup[rowIdx] = id

	return nil
}

// moveOut is the inverse of moveIn.
func (v *View) moveOut(id ClusterID, row []float64, rowIdx int) error {
	c, ok := v.arena.get(id)
	if !ok {
		return fmt.Errorf("lookup of row %d names %v: %w", rowIdx, id, ErrInconsistentState)
	}
	before := c.LogMarginal()
	if err := c.remove(row, rowIdx); err != nil {
		return err
	}
	delete(v.lookup, rowIdx)
	v.dataScore += c.LogMarginal() - before
	v.crpScore -= numerics.CRPLogPredictive(c.Count(), v.alpha, len(v.lookup))

	return nil
}

func (v *View) releaseIfEmpty(id ClusterID) {
	if c, ok := v.arena.get(id); ok && c.IsEmpty() {
		v.arena.release(id)
	}
}
