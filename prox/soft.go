// SPDX-License-Identifier: MIT

package prox

import (
	"fmt"
	"math"
	"math/cmplx"
)

// thresholds expands t to len n and rejects negative or NaN entries.
func thresholds(t []float64, n int) ([]float64, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("empty threshold: %w", ErrInvalidParameter)
	}
	for i, v := range t {
		if !(v >= 0) {
			return nil, fmt.Errorf("threshold[%d] = %g: %w", i, v, ErrInvalidParameter)
		}
	}

	return broadcast("threshold", t, n)
}

// SoftThreshold returns sign(z)·max(|z|−T, 0) elementwise. t holds a single
// threshold or one per coordinate; every threshold must be >= 0.
func SoftThreshold(z, t []float64) ([]float64, error) {
	ts, err := thresholds(t, len(z))
	if err != nil {
		return nil, proxErrorf("SoftThreshold", err)
	}
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = math.Copysign(math.Max(math.Abs(v)-ts[i], 0), v)
	}

	return out, nil
}

// SoftThresholdComplex shrinks each z_i towards 0 by t_i in modulus:
// s/(s+T)·z with s = max(|z|−T, 0). The 0/0 case yields 0.
func SoftThresholdComplex(z []complex128, t []float64) ([]complex128, error) {
	ts, err := thresholds(t, len(z))
	if err != nil {
		return nil, proxErrorf("SoftThresholdComplex", err)
	}
	out := make([]complex128, len(z))
	for i, v := range z {
		s := math.Max(cmplx.Abs(v)-ts[i], 0)
		if d := s + ts[i]; d != 0 {
			out[i] = complex(s/d, 0) * v
		}
	}

	return out, nil
}
