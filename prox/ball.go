// SPDX-License-Identifier: MIT

package prox

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// BallL2 is the indicator of the set {z : ‖A(z)−y‖₂ ≤ ε}. Its proximal
// operator is the projection onto that set.
type BallL2 struct {
	base
	epsilon float64
	method  Method
}

// NewBallL2 builds the ball indicator. Accepted options: the common ones,
// WithEpsilon and WithMethod.
func NewBallL2(opts ...Option) (*BallL2, error) {
	o, err := gatherOptions("NewBallL2", acceptBall, opts...)
	if err != nil {
		return nil, err
	}

	return &BallL2{base: newBase(o), epsilon: o.epsilon, method: o.method}, nil
}

// Eval returns 0. Infeasibility is not reported here.
func (f *BallL2) Eval(x []float64) (float64, error) {
	f.logEval(f.Name(), 0)

	return 0, nil
}

// Grad is not defined for an indicator.
func (f *BallL2) Grad(x []float64) ([]float64, error) {
	return nil, proxErrorf("BallL2.Grad", ErrNotSupported)
}

// Prox projects x onto the ball. The step does not scale an indicator but
// must still be positive.
func (f *BallL2) Prox(x []float64, step float64) ([]float64, error) {
	sol, _, err := f.ProxInfo(x, step)

	return sol, err
}

// ProxInfo is Prox with termination details.
//
// Tight frames use the closed form x + Aᵗ(t·min(1, ε/‖t‖) − t)/ν with
// t = A(x)−y. Otherwise a dual ascent (FISTA or ISTA) runs until
// ‖A(sol)−y‖₂ lies in [ε/(1+tol), ε/(1−tol)] or maxit is reached; an x that
// already lies inside the band is returned unchanged.
func (f *BallL2) ProxInfo(x []float64, step float64) ([]float64, Info, error) {
	const op = "BallL2.Prox"
	start := time.Now()
	if err := checkStep(step); err != nil {
		return nil, Info{}, proxErrorf(op, err)
	}

	var (
		sol  []float64
		info Info
		err  error
	)
	if f.tight {
		sol, info, err = f.projectTight(x)
	} else {
		sol, info, err = f.projectIterative(x)
	}
	if err != nil {
		return nil, Info{}, proxErrorf(op, err)
	}
	info.Elapsed = time.Since(start)
	f.diag.printf(VerbosityLow, "    %s : epsilon = %.2e, ||y-A(z)||_2 = %.2e, %s, niter = %d",
		f.Name(), f.epsilon, info.Residual, info.Reason, info.Iterations)

	return sol, info, nil
}

func (f *BallL2) projectTight(x []float64) ([]float64, Info, error) {
	t, err := f.residual(x)
	if err != nil {
		return nil, Info{}, err
	}
	norm := floats.Norm(t, 2)
	scale := 1.0
	if norm > 0 {
		scale = math.Min(1, f.epsilon/norm)
	}

	// t2 − t1 = (scale − 1)·t1
	floats.Scale(scale-1, t)
	z, err := f.adjoint(t, len(x))
	if err != nil {
		return nil, Info{}, err
	}
	sol := make([]float64, len(x))
	floats.AddScaledTo(sol, x, 1/f.nu, z)

	final, err := f.residual(sol)
	if err != nil {
		return nil, Info{}, err
	}

	return sol, Info{
		State:    StateConverged,
		Reason:   "TOL",
		Residual: floats.Norm(final, 2),
	}, nil
}

func (f *BallL2) projectIterative(x []float64) ([]float64, Info, error) {
	epsLow := f.epsilon / (1 + f.tol)
	epsUp := f.epsilon / (1 - f.tol)

	sol := append([]float64(nil), x...)
	res, err := f.residual(sol)
	if err != nil {
		return nil, Info{}, err
	}
	normRes := floats.Norm(res, 2)
	if normRes <= epsUp {
		return sol, Info{State: StateInBall, Reason: "INBALL", Residual: normRes}, nil
	}

	u := make([]float64, len(res))
	vLast := make([]float64, len(res))
	tLast := 1.0
	info := Info{State: StateIterating}

	for info.State == StateIterating {
		info.Iterations++
		if info.Iterations > 1 {
			if res, err = f.residual(sol); err != nil {
				return nil, Info{}, err
			}
			normRes = floats.Norm(res, 2)
		}
		f.diag.printf(VerbosityHigh, "    %s iteration %3d : epsilon = %.2e, ||y-A(z)||_2 = %.2e",
			f.Name(), info.Iterations, f.epsilon, normRes)

		// Scaling for projection.
		floats.AddScaled(res, f.nu, u)
		normProj := floats.Norm(res, 2)
		ratio := 1.0
		if normProj > 0 {
			ratio = math.Min(1, f.epsilon/normProj)
		}
		v := make([]float64, len(res))
		floats.ScaleTo(v, (1-ratio)/f.nu, res)

		switch f.method {
		case MethodFISTA:
			t := fista(tLast)
			floats.SubTo(u, v, vLast)
			floats.Scale((tLast-1)/t, u)
			floats.Add(u, v)
			vLast, tLast = v, t
		default:
			u = v
		}

		z, err := f.adjoint(u, len(x))
		if err != nil {
			return nil, Info{}, err
		}
		floats.SubTo(sol, x, z)

		switch {
		case normRes >= epsLow && normRes <= epsUp:
			info.State, info.Reason = StateConverged, "TOL"
		case info.Iterations >= f.maxit:
			info.State, info.Reason = StateMaxIter, "MAXIT"
		}
	}

	final, err := f.residual(sol)
	if err != nil {
		return nil, Info{}, err
	}
	info.Residual = floats.Norm(final, 2)

	return sol, info, nil
}

func (f *BallL2) Name() string { return KindBallL2.String() }
func (f *BallL2) Kind() Kind   { return KindBallL2 }

func (f *BallL2) withVerbosity(v Verbosity) Function {
	c := *f
	c.diag.level = v

	return &c
}
