// Package matrix offers the row-major dense storage behind matrix-form
// linear operators.
//
// The matrix package provides:
//
//   - Dense, a bounds-checked row-major matrix with an optional NaN/Inf
//     ingestion policy (NewDense, NewDenseFrom, FromRows).
//   - MatVec and MatTransVec, the forward and adjoint products used when a
//     measurement operator A is supplied as a matrix.
//   - Transpose for callers that want an explicit adjoint matrix.
//
// Every kernel validates its operands and returns sentinel errors
// (ErrDimensionMismatch, ErrNilMatrix, ...) that callers match with errors.Is.
package matrix
