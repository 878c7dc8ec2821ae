// SPDX-License-Identifier: MIT

package prox

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind enumerates the closed set of function variants.
type Kind int

const (
	KindDummy Kind = iota
	KindL1
	KindL2
	KindBallL2
	KindTV
	KindCustom
)

var kindNames = [...]string{
	KindDummy:  "dummy",
	KindL1:     "l1",
	KindL2:     "l2",
	KindBallL2: "ball_l2",
	KindTV:     "tv",
	KindCustom: "custom",
}

// String returns the diagnostic name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Function is the contract consumed by proximal-splitting solvers.
//
// Eval returns f(x). Grad returns ∇f(x). Prox returns
// argmin_z ½‖x−z‖² + step·f(z) for step > 0. A primitive the variant does
// not provide fails with an error matching ErrNotSupported.
//
// Implementations are immutable and safe for concurrent use on disjoint inputs.
// The set of implementations is closed to this package.
type Function interface {
	Eval(x []float64) (float64, error)
	Grad(x []float64) ([]float64, error)
	Prox(x []float64, step float64) ([]float64, error)
	Name() string
	Kind() Kind

	withVerbosity(v Verbosity) Function
}

// Verbose returns a copy of f that logs at level v. A nil f returns nil.
func Verbose(f Function, v Verbosity) Function {
	if f == nil {
		return nil
	}

	return f.withVerbosity(v)
}

// Capability is a set of primitives a Function supports.
type Capability uint8

const (
	CapEval Capability = 1 << iota
	CapGrad
	CapProx
)

// Has reports whether every primitive in o is in c.
func (c Capability) Has(o Capability) bool { return c&o == o }

// String renders c as "EVAL|GRAD|PROX" (subset) or "NONE".
func (c Capability) String() string {
	var parts []string
	if c.Has(CapEval) {
		parts = append(parts, "EVAL")
	}
	if c.Has(CapGrad) {
		parts = append(parts, "GRAD")
	}
	if c.Has(CapProx) {
		parts = append(parts, "PROX")
	}
	if len(parts) == 0 {
		return "NONE"
	}

	return strings.Join(parts, "|")
}

// Probe calls Eval, Grad and Prox(x, 1) on a silenced copy of f and returns
// the primitives that did not fail with ErrNotSupported. Any other failure is
// returned as an error.
func Probe(f Function, x []float64) (Capability, error) {
	if f == nil {
		return 0, proxErrorf("Probe", ErrNilFunction)
	}
	q := f.withVerbosity(VerbosityNone)

	var caps Capability
	calls := []struct {
		c  Capability
		fn func() error
	}{
		{CapEval, func() error { _, err := q.Eval(x); return err }},
		{CapGrad, func() error { _, err := q.Grad(x); return err }},
		{CapProx, func() error { _, err := q.Prox(x, 1); return err }},
	}
	for _, call := range calls {
		err := call.fn()
		switch {
		case err == nil:
			caps |= call.c
		case errors.Is(err, ErrNotSupported):
		default:
			return caps, proxErrorf("Probe", fmt.Errorf("%s %v: %w", q.Name(), call.c, err))
		}
	}

	return caps, nil
}

// State is the terminal state of an iterative proximal operator.
type State int

const (
	// StateIterating is never returned by a finished call.
	StateIterating State = iota
	// StateConverged means the tolerance test passed.
	StateConverged
	// StateMaxIter means the iteration budget ran out. It is the default terminal state.
	StateMaxIter
	// StateInBall means the input already satisfied the ball constraint.
	StateInBall
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIterating:
		return "ITERATING"
	case StateConverged:
		return "CONVERGED"
	case StateMaxIter:
		return "MAX_ITER"
	case StateInBall:
		return "INBALL"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Info reports how a proximal computation terminated.
type Info struct {
	State State
	// Reason is the stopping criterion: "TOL_EPS" or "MAX_IT" for total
	// variation; "TOL", "MAXIT" or "INBALL" for the ball projection.
	Reason     string
	Iterations int

	// Objective and RelativeChange are the last inner objective and its
	// relative change (total variation).
	Objective      float64
	RelativeChange float64

	// Residual is ‖A(sol)−y‖₂ at exit (ball projection).
	Residual float64

	Elapsed time.Duration
}

var (
	_ Function = (*Dummy)(nil)
	_ Function = (*L1)(nil)
	_ Function = (*L2)(nil)
	_ Function = (*BallL2)(nil)
	_ Function = (*TV)(nil)
	_ Function = (*Custom)(nil)
)
