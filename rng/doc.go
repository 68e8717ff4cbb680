// SPDX-License-Identifier: MIT

// Package rng supplies the random draws consumed by the sampling kernels.
//
// The kernels never construct randomness themselves: they receive a Source and
// call only its draw methods (uniform, categorical over weights or log-weights,
// bounded integers). Rand is the default Source, a deterministic stream over
// golang.org/x/exp/rand whose categorical draws go through gonum's
// distuv.Categorical.
//
// Seed policy:
//   - seed == 0 ⇒ DefaultSeed; any other seed is used verbatim.
//   - Same seed ⇒ identical draw sequence on every platform.
//   - Derive(stream) produces an independent substream (SplitMix64 mixing),
//     for callers that run several chains over separate views.
//
// Concurrency:
//   - A Rand is NOT goroutine-safe. Give each chain its own stream.
package rng
