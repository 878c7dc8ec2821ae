// SPDX-License-Identifier: MIT

package linop

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// estimateSeed fixes the power-iteration start vector.
const estimateSeed = 1

// EstimateNorm estimates ‖A‖², the largest eigenvalue of AᵗA, by power
// iteration on vectors of length n. It stops once the relative change of the
// estimate falls below tol or after maxIter rounds.
//
// The value bounds the frame constant ν of a non-tight operator.
func EstimateNorm(op Operator, n int, tol float64, maxIter int) (float64, error) {
	if n < 1 || tol <= 0 || maxIter < 1 {
		return 0, fmt.Errorf("EstimateNorm: n=%d tol=%g maxIter=%d: %w", n, tol, maxIter, ErrInvalidParameter)
	}
	if op.IsIdentity() {
		return 1, nil
	}

	rng := rand.New(rand.NewSource(estimateSeed))
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	floats.Scale(1/floats.Norm(x, 2), x)

	var prev float64
	for it := 0; it < maxIter; it++ {
		ax, err := op.Apply(x)
		if err != nil {
			return 0, fmt.Errorf("EstimateNorm: %w", err)
		}
		y, err := op.ApplyAdjoint(ax)
		if err != nil {
			return 0, fmt.Errorf("EstimateNorm: %w", err)
		}
		if len(y) != n {
			return 0, fmt.Errorf("EstimateNorm: adjoint len %d, want %d: %w", len(y), n, ErrDimensionMismatch)
		}
		lambda := floats.Norm(y, 2)
		if lambda == 0 {
			return 0, nil
		}
		floats.ScaleTo(x, 1/lambda, y)
		if math.Abs(lambda-prev) < tol*lambda {
			return lambda, nil
		}
		prev = lambda
	}

	return prev, nil
}

// CheckTight reports whether Aᵗ(A(e_i)) = ν·e_i holds, entry by entry within
// tol, for every canonical basis vector of length n.
func CheckTight(op Operator, n int, nu, tol float64) (bool, error) {
	if n < 1 || nu <= 0 || tol < 0 {
		return false, fmt.Errorf("CheckTight: n=%d nu=%g tol=%g: %w", n, nu, tol, ErrInvalidParameter)
	}
	e := make([]float64, n)
	for i := 0; i < n; i++ {
		e[i] = 1
		ax, err := op.Apply(e)
		if err != nil {
			return false, fmt.Errorf("CheckTight: %w", err)
		}
		z, err := op.ApplyAdjoint(ax)
		if err != nil {
			return false, fmt.Errorf("CheckTight: %w", err)
		}
		if len(z) != n {
			return false, fmt.Errorf("CheckTight: adjoint len %d, want %d: %w", len(z), n, ErrDimensionMismatch)
		}
		e[i] = 0
		z[i] -= nu
		if floats.Norm(z, math.Inf(1)) > tol {
			return false, nil
		}
	}

	return true, nil
}
