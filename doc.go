// Package proxbox is a library of proximal-operator function objects for
// convex optimization with proximal-splitting solvers (forward-backward,
// Douglas–Rachford and friends).
//
// 🚀 What is proxbox?
//
//	A zero-cgo toolbox of small, immutable function objects, each exposing
//	the three primitives a splitting solver needs:
//		• Eval: f(x)
//		• Grad: ∇f(x), where f is smooth
//		• Prox: argmin_z ½‖x−z‖² + T·f(z)
//
// ✨ What is inside?
//
//   - Norms: weighted L1 and squared L2 composed with a linear operator A
//   - Constraints: projection onto the L2 ball ‖A(x)−y‖₂ ≤ ε, closed form
//     for tight frames and FISTA/ISTA dual ascent otherwise
//   - Total variation: isotropic TV in 1 to 4 dimensions with batch axes,
//     solved by an accelerated dual projected gradient
//   - Building blocks: soft thresholding (real and complex), forward
//     difference gradient and its divergence, capability probing
//
// Everything is organized under five subpackages:
//
//	tensor/    generic row-major N-d arrays (float64, complex128)
//	stencil/   weighted forward-difference gradient, divergence and adjoint
//	matrix/    dense matrices and matrix-vector kernels
//	linop/     linear operators A with adjoints, norm estimation, tightness check
//	prox/      the function objects, options and diagnostics
//
// Quick example:
//
//	f, _ := prox.NewL1(prox.WithLambda(0.5))
//	z, _ := f.Prox([]float64{1, -2, 3}, 1) // soft threshold at 0.5
//
//	go get github.com/katalvlaran/proxbox/prox
package proxbox
