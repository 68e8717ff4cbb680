// SPDX-License-Identifier: MIT

// Package suffstats implements the per-column sufficient-statistics objects a
// cluster aggregates over its member rows.
//
// Every column model satisfies the Column capability contract: insert a
// value, remove a value, report the collapsed marginal log-likelihood of the
// values it holds, and evaluate that marginal over a grid of candidate values
// for one of its hyperparameters. Two variants are provided and selected at
// configuration time through Spec.Kind:
//
//   - Continuous  — Normal with unknown mean and precision under a
//     Normal-Gamma prior; hypers r, nu, s, mu; statistics n, Σx, Σx².
//   - Multinomial — categorical values 0..K-1 under a symmetric Dirichlet
//     prior; hyper alpha; statistics per-category counts.
//
// Hyperparameter grids are data-driven (see ContinuousGrids,
// MultinomialGrids) and travel inside a Spec; nothing here is global.
//
// All likelihood arithmetic is in log space.
package suffstats
