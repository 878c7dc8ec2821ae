// SPDX-License-Identifier: MIT

package linop

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/proxbox/matrix"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNilOperator is returned when a required forward map or matrix is nil.
	ErrNilOperator = errors.New("linop: nil operator")

	// ErrDimensionMismatch indicates an input vector of the wrong length.
	ErrDimensionMismatch = errors.New("linop: dimension mismatch")

	// ErrInvalidParameter is returned for a non-positive size, tolerance or iteration budget.
	ErrInvalidParameter = errors.New("linop: invalid parameter")
)

// Func maps a vector to a vector. Implementations must not modify x.
type Func func(x []float64) ([]float64, error)

// Operator pairs a linear map A with its adjoint Aᵗ.
// The zero Operator is the identity.
type Operator struct {
	forward Func
	adjoint Func
	name    string
}

// Identity returns the identity operator.
func Identity() Operator { return Operator{} }

// FromFunc wraps a forward map and its adjoint. A nil at declares a
// self-adjoint operator (Aᵗ = A). Results are copied, so a map may return
// its argument or an internal buffer.
func FromFunc(a, at Func) (Operator, error) {
	if a == nil {
		return Operator{}, fmt.Errorf("FromFunc: %w", ErrNilOperator)
	}
	if at == nil {
		at = a
	}

	return Operator{forward: owned(a), adjoint: owned(at), name: "func"}, nil
}

// owned returns fn with its result copied into fresh storage.
func owned(fn Func) Func {
	return func(x []float64) ([]float64, error) {
		out, err := fn(x)
		if err != nil {
			return nil, err
		}

		return append([]float64(nil), out...), nil
	}
}

// FromMatrix wraps m as A(x) = m·x. The adjoint is mt·x when mt is given,
// and mᵀ·x (matrix.MatTransVec) otherwise.
func FromMatrix(m, mt matrix.Matrix) (Operator, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return Operator{}, fmt.Errorf("FromMatrix: %w: %w", ErrNilOperator, err)
	}
	forward := func(x []float64) ([]float64, error) { return matrix.MatVec(m, x) }
	adjoint := func(x []float64) ([]float64, error) { return matrix.MatTransVec(m, x) }
	if matrix.ValidateNotNil(mt) == nil {
		if mt.Rows() != m.Cols() || mt.Cols() != m.Rows() {
			return Operator{}, fmt.Errorf("FromMatrix: adjoint %dx%d for %dx%d: %w",
				mt.Rows(), mt.Cols(), m.Rows(), m.Cols(), ErrDimensionMismatch)
		}
		adjoint = func(x []float64) ([]float64, error) { return matrix.MatVec(mt, x) }
	}

	return Operator{forward: forward, adjoint: adjoint, name: "matrix"}, nil
}

// FromGonum wraps a gonum matrix as A(x) = m·x, Aᵗ(x) = mᵀ·x.
func FromGonum(m mat.Matrix) (Operator, error) {
	if m == nil {
		return Operator{}, fmt.Errorf("FromGonum: %w", ErrNilOperator)
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return Operator{}, fmt.Errorf("FromGonum: empty %dx%d matrix: %w", r, c, ErrDimensionMismatch)
	}

	return Operator{
		forward: gonumMulVec(m, c),
		adjoint: gonumMulVec(m.T(), r),
		name:    "gonum",
	}, nil
}

// gonumMulVec returns x ↦ m·x for vectors of length n.
func gonumMulVec(m mat.Matrix, n int) Func {
	return func(x []float64) ([]float64, error) {
		if len(x) != n {
			return nil, fmt.Errorf("gonum MulVec: len %d, want %d: %w", len(x), n, ErrDimensionMismatch)
		}
		var dst mat.VecDense
		dst.MulVec(m, mat.NewVecDense(n, x))

		return dst.RawVector().Data, nil
	}
}

// IsIdentity reports whether op is the identity.
func (op Operator) IsIdentity() bool { return op.forward == nil }

// String names the operator source.
func (op Operator) String() string {
	if op.IsIdentity() {
		return "identity"
	}

	return op.name
}

// Apply returns A(x). The identity returns a copy of x.
func (op Operator) Apply(x []float64) ([]float64, error) {
	if op.forward == nil {
		return append([]float64(nil), x...), nil
	}

	return op.forward(x)
}

// ApplyAdjoint returns Aᵗ(x). The identity returns a copy of x.
func (op Operator) ApplyAdjoint(x []float64) ([]float64, error) {
	if op.adjoint == nil {
		return append([]float64(nil), x...), nil
	}

	return op.adjoint(x)
}
