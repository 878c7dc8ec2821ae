// SPDX-License-Identifier: MIT

package stencil

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the parent of every caller-configuration error of this package.
	ErrConfiguration = errors.New("stencil: invalid configuration")

	// ErrUnknownWeight is returned by Named for a weight keyword outside the
	// allow-list of the array rank.
	ErrUnknownWeight = fmt.Errorf("%w: unknown weight", ErrConfiguration)

	// ErrInvalidDim is returned when dim is outside 1..min(MaxAxes, rank),
	// or when more weights than axes are supplied.
	ErrInvalidDim = fmt.Errorf("%w: invalid stencil dimension", ErrConfiguration)

	// ErrDimensionMismatch indicates parts or weight fields of inconsistent shape.
	ErrDimensionMismatch = errors.New("stencil: dimension mismatch")

	// ErrNilArray is returned when an input array is nil.
	ErrNilArray = errors.New("stencil: nil array")
)

// stencilErrorf tags err with the public operation name.
func stencilErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
