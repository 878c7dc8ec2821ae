// SPDX-License-Identifier: MIT

package prox

import (
	"fmt"
	"math"

	"github.com/katalvlaran/proxbox/linop"
	"gonum.org/v1/gonum/floats"
)

// base is the configuration shared by every variant. It is never mutated
// after construction; withVerbosity copies it.
type base struct {
	y     []float64
	op    linop.Operator
	tight bool
	nu    float64
	tol   float64
	maxit int
	diag  diag
}

func newBase(o Options) base {
	return base{
		y:     o.y,
		op:    o.op,
		tight: o.tight,
		nu:    o.nu,
		tol:   o.tol,
		maxit: o.maxit,
		diag:  diag{level: o.verbosity, out: o.logger},
	}
}

// residual returns A(x) − y.
func (b *base) residual(x []float64) ([]float64, error) {
	ax, err := b.op.Apply(x)
	if err != nil {
		return nil, err
	}
	y, err := broadcast("y", b.y, len(ax))
	if err != nil {
		return nil, err
	}
	if y != nil {
		floats.Sub(ax, y)
	}

	return ax, nil
}

// adjoint returns Aᵗ(v) and checks it lands in the domain of length n.
func (b *base) adjoint(v []float64, n int) ([]float64, error) {
	z, err := b.op.ApplyAdjoint(v)
	if err != nil {
		return nil, err
	}
	if len(z) != n {
		return nil, fmt.Errorf("adjoint len %d, want %d: %w", len(z), n, ErrDimensionMismatch)
	}

	return z, nil
}

// logEval prints the evaluation diagnostic.
func (b *base) logEval(name string, v float64) {
	b.diag.printf(VerbosityLow, "    %s evaluation : %e", name, v)
}

// broadcast expands v to length n. An empty v yields nil (zero), a single
// value is repeated, and any other length must equal n.
func broadcast(what string, v []float64, n int) ([]float64, error) {
	switch len(v) {
	case 0:
		return nil, nil
	case n:
		return v, nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	}

	return nil, fmt.Errorf("%s len %d, want 1 or %d: %w", what, len(v), n, ErrDimensionMismatch)
}

// checkStep validates a proximal step.
func checkStep(step float64) error {
	if !(step > 0) || math.IsInf(step, 1) {
		return fmt.Errorf("step %g: %w", step, ErrInvalidStep)
	}

	return nil
}

// fista advances the FISTA extrapolation scalar.
func fista(t float64) float64 {
	return (1 + math.Sqrt(1+4*t*t)) / 2
}
