// Package stencil implements the first-order finite-difference operators
// behind isotropic total variation: a forward-difference Gradient and its
// negative adjoint Divergence, for 1 to 4 differentiated axes of a
// tensor.Array of float64 or complex128.
//
// One routine covers every dimension. Axis k of an array is walked fiber by
// fiber with tensor.Array.EachLine; trailing axes beyond dim are batch axes.
//
// Each axis may carry a Weight (scalar or pointwise field). Weights are
// conjugated in Divergence so that the adjoint identity holds for complex
// data. Unset weights default to 1 and are reported through WithLogger.
//
// Errors:
//   - ErrInvalidDim, ErrUnknownWeight (both match ErrConfiguration)
//   - ErrDimensionMismatch, ErrNilArray
package stencil
