// SPDX-License-Identifier: MIT

package numerics

import "errors"

var (
	// ErrBadGrid indicates an invalid grid request (n < 1, bad bounds).
	ErrBadGrid = errors.New("numerics: invalid grid specification")

	// ErrBadAlpha indicates a non-positive or non-finite concentration value.
	ErrBadAlpha = errors.New("numerics: concentration must be finite and > 0")
)
