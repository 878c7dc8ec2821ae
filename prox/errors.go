// SPDX-License-Identifier: MIT

package prox

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is; call sites wrap them with an
// operation tag such as "L1.Prox".
var (
	// ErrNotSupported marks a primitive the function does not provide.
	// Probe treats it as "capability absent"; it is recoverable.
	ErrNotSupported = errors.New("prox: operation not supported")

	// ErrNonTightFrame is returned by closed-form proximal operators when the
	// operator was not declared tight. It matches ErrNotSupported.
	ErrNonTightFrame = fmt.Errorf("%w: not implemented for non tight frame", ErrNotSupported)

	// ErrConfiguration is the parent of every invalid-configuration error.
	ErrConfiguration = errors.New("prox: invalid configuration")

	// ErrInvalidStep is returned when a proximal step is not a positive finite number.
	ErrInvalidStep = fmt.Errorf("%w: step must be positive", ErrConfiguration)

	// ErrInvalidMethod is returned for a projection method other than FISTA or ISTA.
	ErrInvalidMethod = fmt.Errorf("%w: method must be FISTA or ISTA", ErrConfiguration)

	// ErrUnknownWeight is returned for an axis weight outside the allow-list.
	ErrUnknownWeight = fmt.Errorf("%w: unknown weight", ErrConfiguration)

	// ErrInvalidParameter covers out-of-range numeric settings (negative λ, ε or
	// weights, non-positive ν, tol outside (0,1), maxit < 1, bad dim).
	ErrInvalidParameter = fmt.Errorf("%w: invalid parameter", ErrConfiguration)

	// ErrUnsupportedOption is returned when an option does not apply to the
	// function being built.
	ErrUnsupportedOption = fmt.Errorf("%w: option not accepted", ErrConfiguration)

	// ErrNilFunction is returned by Probe for a nil Function.
	ErrNilFunction = fmt.Errorf("%w: nil function", ErrConfiguration)

	// ErrDimensionMismatch indicates inconsistent vector lengths or shapes.
	ErrDimensionMismatch = errors.New("prox: dimension mismatch")
)

// proxErrorf wraps err with an operation tag. Use only with a non-nil err.
func proxErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
