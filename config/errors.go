// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrFormat indicates a file extension with no known decoder.
	ErrFormat = errors.New("config: unsupported file format")

	// ErrDecode indicates a file that does not decode into a Config.
	ErrDecode = errors.New("config: decode failed")

	// ErrInvalid indicates a decoded Config that fails validation.
	ErrInvalid = errors.New("config: invalid value")
)
