// SPDX-License-Identifier: MIT

package view

import (
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/dpmix/suffstats"
)

// MaxRowIndex is the largest row index a View accepts.
const MaxRowIndex uint64 = math.MaxUint32

// Cluster is one block of the partition: a set of row indices and one
// sufficient-statistics column per in-scope column of its View.
// Clusters are mutated only by their View; the exported methods are read-only.
type Cluster struct {
	rows    *roaring.Bitmap
	columns []suffstats.Column
}

// newCluster builds an empty cluster with one fresh column per spec.
func newCluster(specs []suffstats.Spec) (*Cluster, error) {
	cols := make([]suffstats.Column, len(specs))
	for i, spec := range specs {
		col, err := spec.New()
		if err != nil {
			return nil, fmt.Errorf("newCluster(col %d): %w", i, err)
		}
		cols[i] = col
	}

	return &Cluster{rows: roaring.New(), columns: cols}, nil
}

// insert adds rowIdx with its aligned values. On a column error the columns
// already updated are rolled back and the cluster is left unchanged.
//
// Complexity: O(#columns).
func (c *Cluster) insert(row []float64, rowIdx int) error {
	if len(row) != len(c.columns) {
		return fmt.Errorf("Cluster.insert(%d): len=%d want %d: %w", rowIdx, len(row), len(c.columns), ErrDimensionMismatch)
	}
	if c.rows.Contains(uint32(rowIdx)) {
		return fmt.Errorf("Cluster.insert(%d): %w", rowIdx, ErrRowExists)
	}
	for j, col := range c.columns {
		if err := col.Insert(row[j]); err != nil {
			for k := j - 1; k >= 0; k-- {
				_ = c.columns[k].Remove(row[k])
			}
			return fmt.Errorf("Cluster.insert(%d, col %d): %w", rowIdx, j, err)
		}
	}
	c.rows.Add(uint32(rowIdx))

	return nil
}

// remove is the inverse of insert. rowIdx must be a member.
func (c *Cluster) remove(row []float64, rowIdx int) error {
	if len(row) != len(c.columns) {
		return fmt.Errorf("Cluster.remove(%d): len=%d want %d: %w", rowIdx, len(row), len(c.columns), ErrDimensionMismatch)
	}
	if !c.rows.Contains(uint32(rowIdx)) {
		return fmt.Errorf("Cluster.remove(%d): %w", rowIdx, ErrRowNotFound)
	}
	for j, col := range c.columns {
		if err := col.Remove(row[j]); err != nil {
			for k := j - 1; k >= 0; k-- {
				_ = c.columns[k].Insert(row[k])
			}
			return fmt.Errorf("Cluster.remove(%d, col %d): %w", rowIdx, j, err)
		}
	}
	c.rows.Remove(uint32(rowIdx))

	return nil
}

// logPredictive is LogMarginal(c ∪ {row}) − LogMarginal(c), summed over columns.
func (c *Cluster) logPredictive(row []float64) (float64, error) {
	var sum float64
	for j, col := range c.columns {
		lp, err := col.LogPredictive(row[j])
		if err != nil {
			return 0, fmt.Errorf("col %d: %w", j, err)
		}
		sum += lp
	}

	return sum, nil
}

func (c *Cluster) removeColumn(local int) {
	c.columns = slices.Delete(c.columns, local, local+1)
}

// LogMarginal is the collapsed marginal log-likelihood of the member rows,
// summed over columns. An empty cluster scores 0.
func (c *Cluster) LogMarginal() float64 {
	var sum float64
	for _, col := range c.columns {
		sum += col.LogMarginal()
	}

	return sum
}

// ColumnLogMarginals returns the per-column terms of LogMarginal in view column order.
func (c *Cluster) ColumnLogMarginals() []float64 {
	out := make([]float64, len(c.columns))
	for j, col := range c.columns {
		out[j] = col.LogMarginal()
	}

	return out
}

// RowIndices returns the member row indices in ascending order.
func (c *Cluster) RowIndices() []int {
	out := make([]int, 0, c.rows.GetCardinality())
	it := c.rows.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}

	return out
}

// Contains reports whether rowIdx is a member.
func (c *Cluster) Contains(rowIdx int) bool {
	return rowIdx >= 0 && uint64(rowIdx) <= MaxRowIndex && c.rows.Contains(uint32(rowIdx))
}

// Count is the number of member rows.
func (c *Cluster) Count() int { return int(c.rows.GetCardinality()) }

// IsEmpty reports whether the cluster has no members.
func (c *Cluster) IsEmpty() bool { return c.rows.IsEmpty() }

// Hypers returns the hyperparameters of the column at local position j.
func (c *Cluster) Hypers(j int) suffstats.Hypers { return c.columns[j].Hypers() }
