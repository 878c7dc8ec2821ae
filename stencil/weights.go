// SPDX-License-Identifier: MIT

package stencil

import (
	"fmt"
	"log"
	"maps"
	"math"
	"slices"

	"github.com/katalvlaran/proxbox/tensor"
)

// MaxAxes is the largest number of differentiated axes.
const MaxAxes = 4

// AxisNames are the weight keywords, indexed by axis.
var AxisNames = [MaxAxes]string{"wx", "wy", "wz", "wt"}

// Weight scales the difference along one axis: either a scalar or a field
// with the shape of the differentiated array. The zero Weight is unset and
// behaves as the scalar 1.
type Weight[T tensor.Scalar] struct {
	value T
	field *tensor.Array[T]
	set   bool
}

// Uniform returns a scalar weight.
func Uniform[T tensor.Scalar](v T) Weight[T] {
	return Weight[T]{value: v, set: true}
}

// Field returns a pointwise weight. A nil f yields an unset weight.
func Field[T tensor.Scalar](f *tensor.Array[T]) Weight[T] {
	return Weight[T]{field: f, set: f != nil}
}

// IsSet reports whether w was given explicitly.
func (w Weight[T]) IsSet() bool { return w.set }

// MaxAbs returns max |w| over the weight's support (1 when unset).
func (w Weight[T]) MaxAbs() float64 {
	if !w.set {
		return 1
	}
	if w.field == nil {
		return math.Sqrt(tensor.Abs2(w.value))
	}
	m := 0.0
	for _, v := range w.field.Data() {
		m = math.Max(m, math.Sqrt(tensor.Abs2(v)))
	}

	return m
}

// at returns the weight for flat offset i.
func (w Weight[T]) at(i int) T {
	switch {
	case w.field != nil:
		return w.field.Data()[i]
	case w.set:
		return w.value
	}

	return T(1)
}

// Weights carries one Weight per axis. The zero value weights every axis by 1.
type Weights[T tensor.Scalar] struct {
	axes [MaxAxes]Weight[T]
}

// PerAxis assigns ws[k] to axis k.
func PerAxis[T tensor.Scalar](ws ...Weight[T]) (Weights[T], error) {
	var out Weights[T]
	if len(ws) > MaxAxes {
		return out, stencilErrorf("PerAxis", fmt.Errorf("%d weights, at most %d: %w", len(ws), MaxAxes, ErrInvalidDim))
	}
	copy(out.axes[:], ws)

	return out, nil
}

// Named builds Weights from keywords. Accepted names are the first
// min(rank, MaxAxes) entries of AxisNames; anything else is ErrUnknownWeight.
func Named[T tensor.Scalar](rank int, named map[string]Weight[T]) (Weights[T], error) {
	var out Weights[T]
	allowed := min(rank, MaxAxes)
	for _, name := range slices.Sorted(maps.Keys(named)) {
		k := slices.Index(AxisNames[:], name)
		if k < 0 || k >= allowed {
			return Weights[T]{}, stencilErrorf("Named",
				fmt.Errorf("%q for rank %d (allowed %v): %w", name, rank, AxisNames[:allowed], ErrUnknownWeight))
		}
		out.axes[k] = named[name]
	}

	return out, nil
}

// Axis returns the weight of axis k.
func (w Weights[T]) Axis(k int) Weight[T] { return w.axes[k] }

// MaxAbs returns the largest |w_k| over the first dim axes.
func (w Weights[T]) MaxAbs(dim int) float64 {
	m := 0.0
	for k := 0; k < dim && k < MaxAxes; k++ {
		m = math.Max(m, w.axes[k].MaxAbs())
	}

	return m
}

// check validates field shapes against ref and logs unset axes.
func (w Weights[T]) check(op string, ref *tensor.Array[T], dim int, logger *log.Logger) error {
	for k := 0; k < dim; k++ {
		wk := w.axes[k]
		if !wk.set {
			logger.Printf("stencil: %s: default value for weight %s: 1", op, AxisNames[k])
			continue
		}
		if wk.field != nil && !wk.field.SameShape(ref) {
			return stencilErrorf(op, fmt.Errorf("weight %s shape %v, want %v: %w",
				AxisNames[k], wk.field.Shape(), ref.Shape(), ErrDimensionMismatch))
		}
	}

	return nil
}
