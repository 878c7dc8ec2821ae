// SPDX-License-Identifier: MIT

package stencil

import (
	"fmt"
	"math"

	"github.com/katalvlaran/proxbox/tensor"
)

// Gradient returns the weighted forward differences of x along axes
// 0..dim-1. Part k has the shape of x; its last slice along k is zero.
//
//	G_k(x)[.., i, ..] = w_k · (x[.., i+1, ..] − x[.., i, ..])   for i < n_k−1
//
// Axes at or beyond dim are not differentiated and act as batch axes.
func Gradient[T tensor.Scalar](x *tensor.Array[T], dim int, w Weights[T], opts ...Option) ([]*tensor.Array[T], error) {
	const op = "Gradient"
	if x == nil {
		return nil, stencilErrorf(op, ErrNilArray)
	}
	if dim < 1 || dim > MaxAxes || dim > x.Rank() {
		return nil, stencilErrorf(op, fmt.Errorf("dim %d for rank %d: %w", dim, x.Rank(), ErrInvalidDim))
	}
	o := gatherOptions(opts...)
	if err := w.check(op, x, dim, o.logger); err != nil {
		return nil, err
	}

	src := x.Data()
	parts := make([]*tensor.Array[T], dim)
	for k := 0; k < dim; k++ {
		g := x.ZerosLike()
		dst := g.Data()
		wk := w.axes[k]
		x.EachLine(k, func(base, stride, n int) {
			for i := 0; i < n-1; i++ {
				at := base + i*stride
				dst[at] = wk.at(at) * (src[at+stride] - src[at])
			}
		})
		parts[k] = g
	}

	return parts, nil
}

// Divergence is the negative adjoint of Gradient: for every x and p,
// Re⟨Gradient(x), p⟩ = −Re⟨x, Divergence(p)⟩. Along each axis it applies
//
//	[q_0, q_i − q_{i−1} (0<i<n−1), −q_{n−2}],   q = conj(w_k)·p_k
//
// and sums the axes. The final slice of every p_k is ignored. The number of
// parts is the stencil dimension.
func Divergence[T tensor.Scalar](parts []*tensor.Array[T], w Weights[T], opts ...Option) (*tensor.Array[T], error) {
	const op = "Divergence"
	if err := checkParts(op, parts); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	if err := w.check(op, parts[0], len(parts), o.logger); err != nil {
		return nil, err
	}

	out := parts[0].ZerosLike()
	dst := out.Data()
	for k, p := range parts {
		src := p.Data()
		wk := w.axes[k]
		out.EachLine(k, func(base, stride, n int) {
			if n < 2 {
				return
			}
			var prev T
			for i := 0; i < n-1; i++ {
				at := base + i*stride
				cur := tensor.Conj(wk.at(at)) * src[at]
				dst[at] += cur - prev
				prev = cur
			}
			dst[base+(n-1)*stride] -= prev
		})
	}

	return out, nil
}

// Adjoint returns Gradientᵀ(p) = −Divergence(p).
func Adjoint[T tensor.Scalar](parts []*tensor.Array[T], w Weights[T], opts ...Option) (*tensor.Array[T], error) {
	d, err := Divergence(parts, w, opts...)
	if err != nil {
		return nil, err
	}
	data := d.Data()
	for i := range data {
		data[i] = -data[i]
	}

	return d, nil
}

// Magnitude returns the pointwise Euclidean norm sqrt(Σ_k |p_k|²) as a flat
// slice in the layout of the parts.
func Magnitude[T tensor.Scalar](parts []*tensor.Array[T]) ([]float64, error) {
	if err := checkParts("Magnitude", parts); err != nil {
		return nil, err
	}
	out := make([]float64, parts[0].Len())
	for _, p := range parts {
		for i, v := range p.Data() {
			out[i] += tensor.Abs2(v)
		}
	}
	for i := range out {
		out[i] = math.Sqrt(out[i])
	}

	return out, nil
}

func checkParts[T tensor.Scalar](op string, parts []*tensor.Array[T]) error {
	if len(parts) < 1 || len(parts) > MaxAxes {
		return stencilErrorf(op, fmt.Errorf("%d parts: %w", len(parts), ErrInvalidDim))
	}
	for k, p := range parts {
		if p == nil {
			return stencilErrorf(op, fmt.Errorf("part %d: %w", k, ErrNilArray))
		}
		if !p.SameShape(parts[0]) {
			return stencilErrorf(op, fmt.Errorf("part %d shape %v, want %v: %w",
				k, p.Shape(), parts[0].Shape(), ErrDimensionMismatch))
		}
	}
	if len(parts) > parts[0].Rank() {
		return stencilErrorf(op, fmt.Errorf("%d parts for rank %d: %w", len(parts), parts[0].Rank(), ErrInvalidDim))
	}

	return nil
}
