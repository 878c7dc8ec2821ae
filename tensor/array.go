// SPDX-License-Identifier: MIT

package tensor

import (
	"errors"
	"fmt"
	"math/cmplx"
	"strings"
)

var (
	// ErrBadShape is returned when a shape is empty or has a non-positive extent,
	// or when a buffer length disagrees with the product of the extents.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrDimensionMismatch indicates two arrays (or an array and an index) of incompatible shape.
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")

	// ErrOutOfRange indicates an axis or coordinate outside valid bounds.
	ErrOutOfRange = errors.New("tensor: index out of range")
)

// Scalar is the element constraint of Array.
type Scalar interface {
	float64 | complex128
}

// Array is a dense row-major N-axis array. The last axis is contiguous.
type Array[T Scalar] struct {
	shape   []int // extents, all > 0
	strides []int // row-major strides, strides[rank-1] == 1
	data    []T   // len == product(shape)
}

// checkShape validates extents and returns their product.
func checkShape(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("rank 0: %w", ErrBadShape)
	}
	n := 1
	for axis, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("axis %d extent %d: %w", axis, d, ErrBadShape)
		}
		n *= d
	}

	return n, nil
}

// rowMajorStrides computes strides for shape; strides[k] = prod(shape[k+1:]).
func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for k := len(shape) - 1; k >= 0; k-- {
		strides[k] = s
		s *= shape[k]
	}

	return strides
}

// New returns a zero-filled array of the given shape.
func New[T Scalar](shape ...int) (*Array[T], error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}

	return &Array[T]{
		shape:   append([]int(nil), shape...),
		strides: rowMajorStrides(shape),
		data:    make([]T, n),
	}, nil
}

// Wrap returns an array view over data without copying. Writes through the
// array are visible in data and vice versa.
func Wrap[T Scalar](data []T, shape ...int) (*Array[T], error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("buffer len %d, shape %v needs %d: %w", len(data), shape, n, ErrBadShape)
	}

	return &Array[T]{
		shape:   append([]int(nil), shape...),
		strides: rowMajorStrides(shape),
		data:    data,
	}, nil
}

// FromSlice copies data into a new array of the given shape.
func FromSlice[T Scalar](data []T, shape ...int) (*Array[T], error) {
	a, err := Wrap(data, shape...)
	if err != nil {
		return nil, err
	}
	a.data = append([]T(nil), data...)

	return a, nil
}

// Rank returns the number of axes.
func (a *Array[T]) Rank() int { return len(a.shape) }

// Len returns the total number of elements.
func (a *Array[T]) Len() int { return len(a.data) }

// Shape returns a copy of the extents.
func (a *Array[T]) Shape() []int { return append([]int(nil), a.shape...) }

// Dim returns the extent of axis. It panics if axis is out of range.
func (a *Array[T]) Dim(axis int) int { return a.shape[axis] }

// Stride returns the flat distance between neighbours along axis.
func (a *Array[T]) Stride(axis int) int { return a.strides[axis] }

// Data returns the backing slice (shared, not copied).
func (a *Array[T]) Data() []T { return a.data }

// Clone returns a deep copy.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{
		shape:   append([]int(nil), a.shape...),
		strides: append([]int(nil), a.strides...),
		data:    append([]T(nil), a.data...),
	}
}

// ZerosLike returns a zero array with the shape of a.
func (a *Array[T]) ZerosLike() *Array[T] {
	return &Array[T]{
		shape:   append([]int(nil), a.shape...),
		strides: append([]int(nil), a.strides...),
		data:    make([]T, len(a.data)),
	}
}

// SameShape reports whether a and b have identical extents.
func (a *Array[T]) SameShape(b *Array[T]) bool {
	if len(a.shape) != len(b.shape) {
		return false
	}
	for k := range a.shape {
		if a.shape[k] != b.shape[k] {
			return false
		}
	}

	return true
}

// offset maps coordinates to a flat index.
func (a *Array[T]) offset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%d coordinates for rank %d: %w", len(idx), len(a.shape), ErrDimensionMismatch)
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			return 0, fmt.Errorf("axis %d index %d: %w", k, i, ErrOutOfRange)
		}
		off += i * a.strides[k]
	}

	return off, nil
}

// At returns the element at the given coordinates.
func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.offset(idx)
	if err != nil {
		var zero T
		return zero, err
	}

	return a.data[off], nil
}

// Set stores v at the given coordinates.
func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.offset(idx)
	if err != nil {
		return err
	}
	a.data[off] = v

	return nil
}

// EachLine calls fn once per 1-D fiber along axis, in row-major order of the
// other axes. Element i of a fiber is data[base+i*stride], 0 <= i < n.
// It panics if axis is out of range.
func (a *Array[T]) EachLine(axis int, fn func(base, stride, n int)) {
	n := a.shape[axis]
	stride := a.strides[axis]
	block := n * stride          // flat span of one outer index
	outer := len(a.data) / block // product of extents before axis
	for o := 0; o < outer; o++ {
		start := o * block
		for in := 0; in < stride; in++ { // stride == product of extents after axis
			fn(start+in, stride, n)
		}
	}
}

// Inner returns the real inner product Re Σ conj(a_i)·b_i.
func Inner[T Scalar](a, b *Array[T]) (float64, error) {
	if !a.SameShape(b) {
		return 0, fmt.Errorf("Inner %v vs %v: %w", a.shape, b.shape, ErrDimensionMismatch)
	}
	var sum float64
	for i := range a.data {
		switch av := any(a.data[i]).(type) {
		case float64:
			sum += av * any(b.data[i]).(float64)
		case complex128:
			sum += real(cmplx.Conj(av) * any(b.data[i]).(complex128))
		}
	}

	return sum, nil
}

// Conj returns the complex conjugate of v; real values are returned unchanged.
func Conj[T Scalar](v T) T {
	if c, ok := any(v).(complex128); ok {
		return any(cmplx.Conj(c)).(T)
	}

	return v
}

// Abs2 returns |v|².
func Abs2[T Scalar](v T) float64 {
	switch x := any(v).(type) {
	case complex128:
		return real(x)*real(x) + imag(x)*imag(x)
	case float64:
		return x * x
	}

	return 0
}

// String renders shape and the flat buffer, for diagnostics.
func (a *Array[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Array%v", a.shape)
	b.WriteString(fmt.Sprint(a.data))

	return b.String()
}
