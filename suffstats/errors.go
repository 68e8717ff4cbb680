// SPDX-License-Identifier: MIT

package suffstats

import "errors"

var (
	// ErrUnknownKind indicates an unsupported column model kind.
	ErrUnknownKind = errors.New("suffstats: unknown column kind")

	// ErrOutOfSupport indicates a value outside the model's support
	// (non-finite real, or a category outside [0, K)).
	ErrOutOfSupport = errors.New("suffstats: value out of support")

	// ErrUnderflow indicates a removal that would drive statistics below empty.
	ErrUnderflow = errors.New("suffstats: remove from empty statistics")

	// ErrUnknownHyper indicates a hyperparameter name the model does not have.
	ErrUnknownHyper = errors.New("suffstats: unknown hyperparameter")

	// ErrBadHyper indicates a hyperparameter value outside its domain.
	ErrBadHyper = errors.New("suffstats: invalid hyperparameter value")

	// ErrBadSpec indicates an incomplete or inconsistent column Spec.
	ErrBadSpec = errors.New("suffstats: invalid column spec")
)
