// SPDX-License-Identifier: MIT

// Package prox: functional configuration for the function objects.
// This file defines:
//   - documented defaults (constants),
//   - Option / Options (functional options with internal state),
//   - WithX constructors that validate their argument and report
//     configuration errors instead of panicking,
//   - gatherOptions, which applies options and rejects those a function
//     variant does not accept.

package prox

import (
	"fmt"
	"io"
	"log"
	"math"
	"slices"

	"github.com/katalvlaran/proxbox/linop"
	"github.com/katalvlaran/proxbox/stencil"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTight declares the operator a tight frame.
	DefaultTight = true

	// DefaultNu is the frame constant ν of AᵗA = ν·I.
	DefaultNu = 1.0

	// DefaultTol is the relative tolerance of iterative proximal operators.
	DefaultTol = 1e-3

	// DefaultMaxIter bounds every iterative loop.
	DefaultMaxIter = 200

	// DefaultLambda is the regularization weight λ of norms.
	DefaultLambda = 1.0

	// DefaultWeight is the scalar coordinate weight w of norms.
	DefaultWeight = 1.0

	// DefaultEpsilon is the radius ε of the L2 ball.
	DefaultEpsilon = 1e-3

	// DefaultMethod is the acceleration scheme of the non-tight ball projection.
	DefaultMethod = MethodFISTA

	// DefaultVerbosity silences diagnostics.
	DefaultVerbosity = VerbosityNone
)

// Method selects the dual-ascent update of the non-tight ball projection.
type Method int

const (
	// MethodFISTA extrapolates the dual variable with FISTA momentum.
	MethodFISTA Method = iota
	// MethodISTA substitutes the dual candidate directly.
	MethodISTA
)

// String returns "FISTA" or "ISTA".
func (m Method) String() string {
	switch m {
	case MethodFISTA:
		return "FISTA"
	case MethodISTA:
		return "ISTA"
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// optKey identifies one option for per-variant acceptance checks.
type optKey uint32

const (
	optY optKey = 1 << iota
	optOperator
	optTight
	optNu
	optTol
	optMaxIter
	optVerbosity
	optLogger
	optLambda
	optWeights
	optEpsilon
	optMethod
	optAxisWeight
	optStepDamping
)

var optNames = map[optKey]string{
	optY:           "y",
	optOperator:    "operator",
	optTight:       "tight",
	optNu:          "nu",
	optTol:         "tol",
	optMaxIter:     "maxit",
	optVerbosity:   "verbosity",
	optLogger:      "logger",
	optLambda:      "lambda",
	optWeights:     "weights",
	optEpsilon:     "epsilon",
	optMethod:      "method",
	optAxisWeight:  "axis weight",
	optStepDamping: "step damping",
}

// Acceptance sets per variant.
const (
	acceptDiag   = optVerbosity | optLogger
	acceptCommon = acceptDiag | optY | optOperator | optTight | optNu | optTol | optMaxIter
	acceptNorm   = acceptCommon | optLambda | optWeights
	acceptBall   = acceptCommon | optEpsilon | optMethod
	acceptTV     = acceptDiag | optTol | optMaxIter | optLambda | optAxisWeight | optStepDamping
)

// Option configures a function object. An Option reports invalid values as
// errors matching ErrConfiguration.
type Option func(*Options) error

// Options holds resolved settings. Fields are unexported; use Option.
type Options struct {
	set optKey

	y     []float64
	op    linop.Operator
	tight bool
	nu    float64
	tol   float64
	maxit int

	verbosity Verbosity
	logger    *log.Logger

	lambda  float64
	weights []float64

	epsilon float64
	method  Method

	axisWeights map[string]float64
	stepDamping float64 // 0 derives mt from the axis weights
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		tight:     DefaultTight,
		nu:        DefaultNu,
		tol:       DefaultTol,
		maxit:     DefaultMaxIter,
		verbosity: DefaultVerbosity,
		logger:    log.New(io.Discard, "", 0),
		lambda:    DefaultLambda,
		weights:   []float64{DefaultWeight},
		epsilon:   DefaultEpsilon,
		method:    DefaultMethod,
	}
}

// gatherOptions applies opts over the defaults and rejects options outside accept.
func gatherOptions(name string, accept optKey, opts ...Option) (Options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, proxErrorf(name, err)
		}
	}
	if extra := o.set &^ accept; extra != 0 {
		var names []string
		for k, n := range optNames {
			if extra&k != 0 {
				names = append(names, n)
			}
		}
		slices.Sort(names)

		return Options{}, proxErrorf(name, fmt.Errorf("%v: %w", names, ErrUnsupportedOption))
	}

	return o, nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidParameter)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// WithY sets the measurement vector y. A single value is broadcast and an
// empty y means zero.
func WithY(y ...float64) Option {
	return func(o *Options) error {
		for i, v := range y {
			if !finite(v) {
				return invalidf("y[%d] = %g", i, v)
			}
		}
		o.y = append([]float64(nil), y...)
		o.set |= optY

		return nil
	}
}

// WithOperator sets the linear operator A and its adjoint.
func WithOperator(op linop.Operator) Option {
	return func(o *Options) error {
		o.op = op
		o.set |= optOperator

		return nil
	}
}

// WithTight declares whether AᵗA = ν·I holds.
func WithTight(tight bool) Option {
	return func(o *Options) error {
		o.tight = tight
		o.set |= optTight

		return nil
	}
}

// WithNu sets the frame constant ν > 0.
func WithNu(nu float64) Option {
	return func(o *Options) error {
		if !(nu > 0) || !finite(nu) {
			return invalidf("nu %g", nu)
		}
		o.nu = nu
		o.set |= optNu

		return nil
	}
}

// WithTol sets the relative tolerance, 0 < tol < 1.
func WithTol(tol float64) Option {
	return func(o *Options) error {
		if !(tol > 0 && tol < 1) {
			return invalidf("tol %g", tol)
		}
		o.tol = tol
		o.set |= optTol

		return nil
	}
}

// WithMaxIter sets the iteration budget, maxit >= 1.
func WithMaxIter(maxit int) Option {
	return func(o *Options) error {
		if maxit < 1 {
			return invalidf("maxit %d", maxit)
		}
		o.maxit = maxit
		o.set |= optMaxIter

		return nil
	}
}

// WithVerbosity sets the diagnostic level.
func WithVerbosity(v Verbosity) Option {
	return func(o *Options) error {
		if v < VerbosityNone || v > VerbosityHigh {
			return invalidf("verbosity %d", int(v))
		}
		o.verbosity = v
		o.set |= optVerbosity

		return nil
	}
}

// WithLogger sets the diagnostic sink. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		o.logger = l
		o.set |= optLogger

		return nil
	}
}

// WithLambda sets the regularization weight λ >= 0.
func WithLambda(lambda float64) Option {
	return func(o *Options) error {
		if !(lambda >= 0) || !finite(lambda) {
			return invalidf("lambda %g", lambda)
		}
		o.lambda = lambda
		o.set |= optLambda

		return nil
	}
}

// WithWeights sets the coordinate weights w >= 0: one value (broadcast) or
// one per coordinate of A(x).
func WithWeights(w ...float64) Option {
	return func(o *Options) error {
		if len(w) == 0 {
			return invalidf("empty weights")
		}
		for i, v := range w {
			if !(v >= 0) || !finite(v) {
				return invalidf("w[%d] = %g", i, v)
			}
		}
		o.weights = append([]float64(nil), w...)
		o.set |= optWeights

		return nil
	}
}

// WithEpsilon sets the ball radius ε >= 0.
func WithEpsilon(eps float64) Option {
	return func(o *Options) error {
		if !(eps >= 0) || !finite(eps) {
			return invalidf("epsilon %g", eps)
		}
		o.epsilon = eps
		o.set |= optEpsilon

		return nil
	}
}

// WithMethod selects FISTA or ISTA for the non-tight ball projection.
func WithMethod(m Method) Option {
	return func(o *Options) error {
		if m != MethodFISTA && m != MethodISTA {
			return fmt.Errorf("%v: %w", m, ErrInvalidMethod)
		}
		o.method = m
		o.set |= optMethod

		return nil
	}
}

// WithAxisWeight sets the total-variation weight of one axis by keyword
// ("wx", "wy", "wz" or "wt"). Keywords beyond the signal rank are rejected
// when the function is built.
func WithAxisWeight(name string, w float64) Option {
	return func(o *Options) error {
		if !slices.Contains(stencil.AxisNames[:], name) {
			return fmt.Errorf("%q: %w", name, ErrUnknownWeight)
		}
		if !finite(w) {
			return invalidf("%s %g", name, w)
		}
		if o.axisWeights == nil {
			o.axisWeights = make(map[string]float64, stencil.MaxAxes)
		}
		o.axisWeights[name] = w
		o.set |= optAxisWeight

		return nil
	}
}

// WithStepDamping overrides the damping mt of the total-variation dual step
// 1/(8·T·mt²). By default mt is the largest |axis weight|.
func WithStepDamping(mt float64) Option {
	return func(o *Options) error {
		if !(mt > 0) || !finite(mt) {
			return invalidf("step damping %g", mt)
		}
		o.stepDamping = mt
		o.set |= optStepDamping

		return nil
	}
}
