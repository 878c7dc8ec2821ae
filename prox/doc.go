// Package prox provides convex function objects for proximal-splitting
// solvers (forward-backward, Douglas-Rachford and similar).
//
// Every object implements Function: Eval, Grad and Prox. A solver calls
// Probe once to learn which primitives are available and picks a splitting
// scheme accordingly.
//
// Variants:
//   - Dummy: f = 0.
//   - L1: λ‖w·(A(x)−y)‖₁, soft-thresholding prox (tight frames only).
//   - L2: λ‖w·(A(x)−y)‖₂², gradient and closed-form prox (tight frames only).
//   - BallL2: indicator of ‖A(x)−y‖₂ ≤ ε, closed-form projection for tight
//     frames and FISTA/ISTA dual ascent otherwise.
//   - TV: isotropic total variation over 1 to 4 axes, prox by accelerated
//     dual projected gradient.
//   - Custom: user-supplied primitives.
//
// Configuration uses functional options (WithY, WithOperator, WithTight,
// WithNu, WithTol, WithMaxIter, WithLambda, WithWeights, WithEpsilon,
// WithMethod, WithAxisWeight, WithStepDamping, WithVerbosity, WithLogger).
// Invalid values and options a variant does not accept fail the constructor
// with an error matching ErrConfiguration.
//
// Objects are immutable after construction. Iterative state lives on the
// stack of one call, so a Function may be shared between goroutines.
// Verbose returns a copy with another diagnostic level.
//
// Errors:
//   - ErrNotSupported (ErrNonTightFrame matches it): primitive absent.
//   - ErrConfiguration: ErrInvalidStep, ErrInvalidMethod, ErrUnknownWeight,
//     ErrInvalidParameter, ErrUnsupportedOption, ErrNilFunction.
//   - ErrDimensionMismatch: inconsistent lengths.
package prox
