// SPDX-License-Identifier: MIT

package rng

import "errors"

var (
	// ErrEmptyWeights indicates a categorical draw over zero outcomes.
	ErrEmptyWeights = errors.New("rng: categorical weights are empty")

	// ErrInvalidWeights indicates weights that cannot be normalised
	// (NaN, +Inf, negative, or all outcomes impossible).
	ErrInvalidWeights = errors.New("rng: categorical weights cannot be normalised")
)
