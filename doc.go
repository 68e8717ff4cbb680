// Package dpmix is a collapsed Gibbs sampler for Dirichlet-process mixture
// models over the rows of a numeric table.
//
// A view partitions rows into clusters under a Chinese Restaurant Process
// prior. Each cluster keeps per-column sufficient statistics, so the
// likelihood of its members is available in closed form with the component
// parameters integrated out. Three kernels move the chain:
//
//	TransitionZs        — one Gibbs sweep reassigning every row
//	TransitionCRPAlpha  — grid resampling of the concentration α
//	TransitionHypers    — grid resampling of every column's hyperparameters
//
// Packages:
//
//	view/      — partition state, row/column mutation, kernels, consistency checks
//	suffstats/ — column models: Normal-Gamma (continuous), Dirichlet-multinomial (categorical)
//	numerics/  — log-space helpers, CRP likelihoods, grids
//	rng/       — seeded random source and categorical draws
//	matrix/    — row-major dense table and column summaries
//	dataset/   — CSV loading (gzip, zstd, lz4) and data-driven column specs
//	config/    — YAML/TOML run configuration
//	logging/   — slog-based structured logging
//	cmd/dpmm/  — command-line driver
//
// Quick start:
//
//	ds, _ := dataset.Load("table.csv.gz")
//	specs, _ := ds.ColumnSpecs(kinds, suffstats.DefaultGridSize)
//	v, _ := view.New(ds.GlobalColumns(), specs, view.WithSeed(1))
//	data := ds.RowMap()
//	for r := 0; r < ds.Rows(); r++ {
//		v.InsertRow(data[r], r)
//	}
//	for i := 0; i < 100; i++ {
//		v.Transition(data)
//	}
package dpmix
