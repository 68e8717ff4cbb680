// SPDX-License-Identifier: MIT

// Package numerics holds the pure log-space helpers shared by the sampling
// kernels: log-sum-exp normalisation, grid construction and the Chinese
// Restaurant Process partition terms.
//
// Every function is deterministic and side-effect free; grids and priors are
// arguments, never package-level state.
package numerics
