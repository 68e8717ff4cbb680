// SPDX-License-Identifier: MIT

// Package view implements the partition state and transition kernels of a
// collapsed Gibbs sampler for a Dirichlet-Process Mixture Model over the rows
// of a table restricted to a set of columns (a view).
//
// A View owns:
//   - the live clusters, stored in an arena and addressed by ClusterID handles;
//   - the row → cluster lookup covering exactly the inserted rows;
//   - the ordered global column indices in scope, with one suffstats.Spec each;
//   - the CRP concentration α and the grid it is resampled on.
//
// Mutations:
//   - InsertRow / InsertRowInto / RemoveRow / RemoveIfEmpty / ReapEmpty
//   - AlignData / RemoveCol
//   - TransitionZs (row reassignment), TransitionCRPAlpha, TransitionHypers
//
// Invariants (checked by CheckConsistency):
//   - every inserted row is in exactly one cluster and vice versa;
//   - NumVectors == len(lookup) == Σ cluster sizes;
//   - each cluster's statistics aggregate exactly its member rows;
//   - Score == Σ cluster log marginals + log CRP(partition | α).
//
// Reaping is explicit: RemoveRow leaves an emptied cluster in place until
// RemoveIfEmpty or ReapEmpty releases it. Empty, unreaped clusters are not
// blocks of the partition and are excluded from NumClusters and ClusterIDs.
//
// Concurrency:
//   - A View is owned by one goroutine. Independent chains use separate Views
//     with separate random streams (see rng.Rand.Derive).
package view
