// Package tensor provides Array, a strided row-major N-axis buffer used to
// carry images, volumes and their per-axis gradients through the stencil
// and total-variation code.
//
// An Array never reshapes its storage implicitly: Wrap aliases a caller
// slice, FromSlice copies it, and every derived array (Clone, ZerosLike) owns
// fresh storage. Element type is float64 or complex128.
//
// Line traversal:
//
//	a.EachLine(axis, func(base, stride, n int) { ... })
//
// visits every 1-D fiber of a along axis exactly once in row-major order of
// the remaining axes; element i of the fiber lives at data[base+i*stride].
// This is the only iteration primitive the stencils need, so the same code
// serves 1, 2, 3 and 4 axes.
package tensor
