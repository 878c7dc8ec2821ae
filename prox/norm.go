// SPDX-License-Identifier: MIT

package prox

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// norm carries the parameters shared by L1 and L2.
type norm struct {
	base
	lambda float64
	w      []float64
}

func newNorm(name string, opts ...Option) (norm, error) {
	o, err := gatherOptions(name, acceptNorm, opts...)
	if err != nil {
		return norm{}, err
	}

	return norm{base: newBase(o), lambda: o.lambda, w: o.weights}, nil
}

// weighted returns w·(A(x)−y) and the broadcast weights.
func (n *norm) weighted(x []float64) (r, w []float64, err error) {
	r, err = n.residual(x)
	if err != nil {
		return nil, nil, err
	}
	w, err = broadcast("w", n.w, len(r))
	if err != nil {
		return nil, nil, err
	}
	floats.Mul(r, w)

	return r, w, nil
}

// L1 is f(x) = λ·‖w·(A(x)−y)‖₁.
type L1 struct {
	norm
}

// NewL1 builds the weighted L1 norm. Accepted options: the common ones,
// WithLambda and WithWeights.
func NewL1(opts ...Option) (*L1, error) {
	n, err := newNorm("NewL1", opts...)
	if err != nil {
		return nil, err
	}

	return &L1{norm: n}, nil
}

// Eval returns λ·Σ|w·(A(x)−y)|.
func (f *L1) Eval(x []float64) (float64, error) {
	r, _, err := f.weighted(x)
	if err != nil {
		return 0, proxErrorf("L1.Eval", err)
	}
	sum := 0.0
	for _, v := range r {
		sum += math.Abs(v)
	}
	sum *= f.lambda
	f.logEval(f.Name(), sum)

	return sum, nil
}

// Grad is not defined: the L1 norm is non-smooth.
func (f *L1) Grad(x []float64) ([]float64, error) {
	return nil, proxErrorf("L1.Grad", ErrNotSupported)
}

// Prox soft-thresholds the residual in the range of A:
//
//	x + Aᵗ(soft(r, γ·ν·w) − r)/ν,   r = A(x) − y,  γ = λ·step.
//
// Only tight frames are supported.
func (f *L1) Prox(x []float64, step float64) ([]float64, error) {
	const op = "L1.Prox"
	if err := checkStep(step); err != nil {
		return nil, proxErrorf(op, err)
	}
	if !f.tight {
		return nil, proxErrorf(op, ErrNonTightFrame)
	}
	gamma := f.lambda * step

	r, err := f.residual(x)
	if err != nil {
		return nil, proxErrorf(op, err)
	}
	thr, err := broadcast("w", f.w, len(r))
	if err != nil {
		return nil, proxErrorf(op, err)
	}
	thr = append([]float64(nil), thr...)
	floats.Scale(gamma*f.nu, thr)

	s, err := SoftThreshold(r, thr)
	if err != nil {
		return nil, proxErrorf(op, err)
	}
	floats.Sub(s, r)
	z, err := f.adjoint(s, len(x))
	if err != nil {
		return nil, proxErrorf(op, err)
	}

	sol := make([]float64, len(x))
	floats.AddScaledTo(sol, x, 1/f.nu, z)

	return sol, nil
}

func (f *L1) Name() string { return KindL1.String() }
func (f *L1) Kind() Kind   { return KindL1 }

func (f *L1) withVerbosity(v Verbosity) Function {
	c := *f
	c.diag.level = v

	return &c
}

// L2 is the squared weighted norm f(x) = λ·‖w·(A(x)−y)‖₂².
type L2 struct {
	norm
}

// NewL2 builds the squared weighted L2 norm. Accepted options: the common
// ones, WithLambda and WithWeights.
func NewL2(opts ...Option) (*L2, error) {
	n, err := newNorm("NewL2", opts...)
	if err != nil {
		return nil, err
	}

	return &L2{norm: n}, nil
}

// Eval returns λ·Σ(w·(A(x)−y))².
func (f *L2) Eval(x []float64) (float64, error) {
	r, _, err := f.weighted(x)
	if err != nil {
		return 0, proxErrorf("L2.Eval", err)
	}
	sum := f.lambda * floats.Dot(r, r)
	f.logEval(f.Name(), sum)

	return sum, nil
}

// Grad returns 2λ·w·Aᵗ(A(x)−y). The weights act on the domain of A, so
// they are either a scalar or one per coordinate of x.
func (f *L2) Grad(x []float64) ([]float64, error) {
	const op = "L2.Grad"
	r, err := f.residual(x)
	if err != nil {
		return nil, proxErrorf(op, err)
	}
	g, err := f.adjoint(r, len(x))
	if err != nil {
		return nil, proxErrorf(op, err)
	}
	w, err := broadcast("w", f.w, len(g))
	if err != nil {
		return nil, proxErrorf(op, err)
	}
	floats.Mul(g, w)
	floats.Scale(2*f.lambda, g)

	return g, nil
}

// Prox returns the closed-form shrinkage
//
//	(x + 2γ·Aᵗ(y·w²)) / (1 + 2γ·ν·w²),   γ = λ·step,
//
// elementwise. Only tight frames are supported.
func (f *L2) Prox(x []float64, step float64) ([]float64, error) {
	const op = "L2.Prox"
	if err := checkStep(step); err != nil {
		return nil, proxErrorf(op, err)
	}
	if !f.tight {
		return nil, proxErrorf(op, ErrNonTightFrame)
	}
	gamma := f.lambda * step

	sol := append([]float64(nil), x...)
	if len(f.y) > 0 {
		yw, err := f.measurementTimesW2(x)
		if err != nil {
			return nil, proxErrorf(op, err)
		}
		z, err := f.adjoint(yw, len(x))
		if err != nil {
			return nil, proxErrorf(op, err)
		}
		floats.AddScaled(sol, 2*gamma, z)
	}

	w, err := broadcast("w", f.w, len(x))
	if err != nil {
		return nil, proxErrorf(op, err)
	}
	for i := range sol {
		sol[i] /= 1 + 2*gamma*f.nu*w[i]*w[i]
	}

	return sol, nil
}

// measurementTimesW2 returns y·w² in the range of A.
func (f *L2) measurementTimesW2(x []float64) ([]float64, error) {
	m := len(f.y)
	if m == 1 && len(f.w) > 1 {
		m = len(f.w)
	}
	if m == 1 {
		// A scalar y spans the whole range; its length is len(A(x)).
		ax, err := f.op.Apply(x)
		if err != nil {
			return nil, err
		}
		m = len(ax)
	}
	y, err := broadcast("y", f.y, m)
	if err != nil {
		return nil, err
	}
	w, err := broadcast("w", f.w, m)
	if err != nil {
		return nil, fmt.Errorf("measurement weights: %w", err)
	}
	out := make([]float64, m)
	for i := range out {
		out[i] = y[i] * w[i] * w[i]
	}

	return out, nil
}

func (f *L2) Name() string { return KindL2.String() }
func (f *L2) Kind() Kind   { return KindL2 }

func (f *L2) withVerbosity(v Verbosity) Function {
	c := *f
	c.diag.level = v

	return &c
}
