// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/katalvlaran/dpmix/config"
	"github.com/katalvlaran/dpmix/dataset"
	"github.com/katalvlaran/dpmix/logging"
	"github.com/katalvlaran/dpmix/view"
)

var errNotDrained = errors.New("dpmm: view not empty after removing every row")

// summary is what a run reports on stdout.
type summary struct {
	Rows       int
	Columns    int
	Iterations int
	Clusters   int
	Alpha      float64
	Score      float64
}

func (s summary) String() string {
	return fmt.Sprintf("rows=%d columns=%d iterations=%d clusters=%d alpha=%.4g score=%.6g",
		s.Rows, s.Columns, s.Iterations, s.Clusters, s.Alpha, s.Score)
}

func newLogger(c config.Log, w io.Writer) *logging.Logger {
	level := logging.ParseLevel(c.Level)
	if c.Format == "json" {
		return logging.NewJSONLogger(w, level)
	}

	return logging.NewTextLogger(w, level)
}

// run drives one chain end to end.
//
// Implementation:
//   - Stage 1: load the table, build column specs and the view over every column.
//   - Stage 2: probe a single insert/remove/reap on row 0.
//   - Stage 3: insert every row, then iterate zs → α → hypers, asserting the
//     invariants after each iteration.
//   - Stage 4: optionally drop a column and re-align the data.
//   - Stage 5: remove every row, reap, verify the view is empty, then insert
//     and remove one aligned row.
//
// progress receives the progress bar when cfg.Progress is set.
func run(ctx context.Context, cfg config.Config, log *logging.Logger, progress io.Writer) (summary, error) {
	ds, err := dataset.Load(cfg.Data)
	if err != nil {
		return summary{}, err
	}
	kinds, err := cfg.Kinds(ds.Cols())
	if err != nil {
		return summary{}, err
	}
	specs, err := ds.ColumnSpecs(kinds, cfg.GridSize)
	if err != nil {
		return summary{}, err
	}
	alphaGrid, err := view.AlphaGridFor(ds.Rows(), cfg.GridSize)
	if err != nil {
		return summary{}, err
	}
	opts := []view.Option{
		view.WithSeed(cfg.Seed),
		view.WithAlpha(cfg.Alpha),
		view.WithAlphaGrid(alphaGrid),
		view.WithLogger(log),
	}
	if p := cfg.AlphaPrior; p != nil {
		opts = append(opts, view.WithAlphaPrior(p.Shape, p.Rate))
	}

	raw := ds.RowMap()
	globalCols := ds.GlobalColumns()
	v, err := view.New(globalCols, specs, opts...)
	if err != nil {
		return summary{}, err
	}
	log.InfoContext(ctx, "view created", "rows", ds.Rows(), "columns", ds.Cols(), "seed", cfg.Seed)

	if err = probe(v, raw[0], 0); err != nil {
		return summary{}, err
	}

	for r := 0; r < ds.Rows(); r++ {
		if _, err = v.InsertRow(raw[r], r); err != nil {
			return summary{}, err
		}
	}
	v.AssertStateConsistency(raw)

	var bar *pb.ProgressBar
	if cfg.Progress {
		bar = pb.Full.New(cfg.Iterations).SetWriter(progress).Start()
	}
	for iter := 0; iter < cfg.Iterations; iter++ {
		if err = v.Transition(raw); err != nil {
			log.LogRunCompleted(ctx, iter, v.NumVectors(), err)
			return summary{}, err
		}
		v.AssertStateConsistency(raw)
		log.LogIteration(ctx, iter, v.NumClusters(), v.Alpha(), v.Score())
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	sum := summary{
		Rows:       v.NumVectors(),
		Iterations: cfg.Iterations,
		Clusters:   v.NumClusters(),
		Alpha:      v.Alpha(),
		Score:      v.Score(),
	}

	data := raw
	if cfg.RemoveColumn != nil {
		if err = v.RemoveCol(*cfg.RemoveColumn); err != nil {
			return summary{}, err
		}
		if data, err = v.AlignAll(raw, globalCols); err != nil {
			return summary{}, err
		}
		v.AssertStateConsistency(data)
	}
	sum.Columns = v.NumColumns()

	if err = drain(v, data); err != nil {
		return summary{}, err
	}
	aligned, err := v.AlignData(raw[0], globalCols)
	if err != nil {
		return summary{}, err
	}
	if err = probe(v, aligned, 0); err != nil {
		return summary{}, err
	}
	log.LogRunCompleted(ctx, cfg.Iterations, sum.Rows, nil)

	return sum, nil
}

// probe inserts one row into an empty view, removes it and reaps.
func probe(v *view.View, row []float64, rowIdx int) error {
	id, err := v.InsertRow(row, rowIdx)
	if err != nil {
		return err
	}
	if v.NumClusters() != 1 || v.NumVectors() != 1 {
		return fmt.Errorf("probe: clusters=%d vectors=%d after insert: %w", v.NumClusters(), v.NumVectors(), view.ErrInconsistentState)
	}
	if _, err = v.RemoveRow(row, rowIdx); err != nil {
		return err
	}
	if _, err = v.RemoveIfEmpty(id); err != nil {
		return err
	}

	return v.CheckConsistency()
}

// drain removes every row, reaps the emptied clusters and checks the view is empty.
func drain(v *view.View, data map[int][]float64) error {
	for _, r := range v.RowIndices() {
		if _, err := v.RemoveRow(data[r], r); err != nil {
			return err
		}
	}
	v.ReapEmpty()
	if v.NumVectors() != 0 || v.NumClusters() != 0 || v.PendingReap() != 0 {
		return fmt.Errorf("vectors=%d clusters=%d: %w", v.NumVectors(), v.NumClusters(), errNotDrained)
	}

	return v.CheckConsistency()
}
