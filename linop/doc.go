// Package linop adapts linear operators for the proximal function objects.
//
// An Operator is a forward map A with its adjoint Aᵗ, built from plain
// functions (FromFunc), from a matrix.Matrix (FromMatrix) or from a gonum
// mat.Matrix (FromGonum). The zero Operator is the identity.
//
// Closed-form proximal operators require a tight frame, AᵗA = ν·I.
// CheckTight tests that property numerically and EstimateNorm returns a
// power-iteration estimate of ‖A‖² for callers that need a bound on ν.
package linop
