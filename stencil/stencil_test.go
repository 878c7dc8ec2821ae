// SPDX-License-Identifier: MIT

package stencil_test

import (
	"bytes"
	"log"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/proxbox/stencil"
	"github.com/katalvlaran/proxbox/tensor"
	"github.com/stretchr/testify/require"
)

func randomReal(t *testing.T, rng *rand.Rand, shape ...int) *tensor.Array[float64] {
	t.Helper()
	a, err := tensor.New[float64](shape...)
	require.NoError(t, err)
	for i := range a.Data() {
		a.Data()[i] = rng.NormFloat64()
	}

	return a
}

func randomComplex(t *testing.T, rng *rand.Rand, shape ...int) *tensor.Array[complex128] {
	t.Helper()
	a, err := tensor.New[complex128](shape...)
	require.NoError(t, err)
	for i := range a.Data() {
		a.Data()[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	return a
}

// adjointGap returns ⟨Gx, p⟩ + ⟨x, Dp⟩ and a scale for a relative bound.
func adjointGap[T tensor.Scalar](t *testing.T, x *tensor.Array[T], p []*tensor.Array[T], w stencil.Weights[T]) (float64, float64) {
	t.Helper()
	g, err := stencil.Gradient(x, len(p), w)
	require.NoError(t, err)
	d, err := stencil.Divergence(p, w)
	require.NoError(t, err)

	lhs := 0.0
	for k := range p {
		v, err := tensor.Inner(g[k], p[k])
		require.NoError(t, err)
		lhs += v
	}
	rhs, err := tensor.Inner(x, d)
	require.NoError(t, err)

	return lhs + rhs, math.Max(1, math.Abs(lhs))
}

var adjointShapes = [][]int{
	{17},
	{6, 9},
	{5, 4, 7},
	{3, 4, 5, 2},
}

func TestAdjoint_Real(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, shape := range adjointShapes {
		dim := len(shape)
		batched := append(append([]int(nil), shape...), 3) // one trailing batch axis
		for _, sh := range [][]int{shape, batched} {
			x := randomReal(t, rng, sh...)
			p := make([]*tensor.Array[float64], dim)
			for k := range p {
				p[k] = randomReal(t, rng, sh...)
			}

			gap, scale := adjointGap(t, x, p, stencil.Weights[float64]{})
			require.InDelta(t, 0, gap/scale, 1e-12, "shape %v", sh)

			ws := make([]stencil.Weight[float64], dim)
			for k := range ws {
				ws[k] = stencil.Uniform(0.5 + rng.Float64())
			}
			w, err := stencil.PerAxis(ws...)
			require.NoError(t, err)
			gap, scale = adjointGap(t, x, p, w)
			require.InDelta(t, 0, gap/scale, 1e-12, "weighted shape %v", sh)
		}
	}
}

func TestAdjoint_ComplexWithFieldWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, shape := range adjointShapes {
		dim := len(shape)
		x := randomComplex(t, rng, shape...)
		p := make([]*tensor.Array[complex128], dim)
		ws := make([]stencil.Weight[complex128], dim)
		for k := range p {
			p[k] = randomComplex(t, rng, shape...)
			if k%2 == 0 {
				ws[k] = stencil.Field(randomComplex(t, rng, shape...))
			} else {
				ws[k] = stencil.Uniform(complex(1, -0.5))
			}
		}
		w, err := stencil.PerAxis(ws...)
		require.NoError(t, err)

		gap, scale := adjointGap(t, x, p, w)
		require.InDelta(t, 0, gap/scale, 1e-12, "shape %v", shape)
	}
}

func TestAdjoint_IsNegatedDivergence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := []*tensor.Array[float64]{randomReal(t, rng, 4, 5), randomReal(t, rng, 4, 5)}

	d, err := stencil.Divergence(p, stencil.Weights[float64]{})
	require.NoError(t, err)
	a, err := stencil.Adjoint(p, stencil.Weights[float64]{})
	require.NoError(t, err)
	for i := range d.Data() {
		require.Equal(t, -d.Data()[i], a.Data()[i])
	}
}

func TestGradientDivergence_1D(t *testing.T) {
	x, _ := tensor.FromSlice([]float64{1, 3, 6, 10}, 4)
	g, err := stencil.Gradient(x, 1, stencil.Weights[float64]{})
	require.NoError(t, err)
	require.Len(t, g, 1)
	require.Equal(t, []float64{2, 3, 4, 0}, g[0].Data())

	p, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, 4)
	d, err := stencil.Divergence([]*tensor.Array[float64]{p}, stencil.Weights[float64]{})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1, -3}, d.Data())

	w, err := stencil.PerAxis(stencil.Uniform(2.0))
	require.NoError(t, err)
	g, err = stencil.Gradient(x, 1, w)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 6, 8, 0}, g[0].Data())
}

func TestGradient_2DLayout(t *testing.T) {
	// 2×3, row-major:
	//   1 2 4
	//   3 5 9
	x, _ := tensor.FromSlice([]float64{1, 2, 4, 3, 5, 9}, 2, 3)
	g, err := stencil.Gradient(x, 2, stencil.Weights[float64]{})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3, 5, 0, 0, 0}, g[0].Data())
	require.Equal(t, []float64{1, 2, 0, 2, 4, 0}, g[1].Data())
}

func TestGradient_FlatSignalIsZero(t *testing.T) {
	x, err := tensor.New[float64](4, 3, 2)
	require.NoError(t, err)
	for i := range x.Data() {
		x.Data()[i] = 7
	}
	g, err := stencil.Gradient(x, 3, stencil.Weights[float64]{})
	require.NoError(t, err)
	zeros := make([]float64, x.Len())
	for k := range g {
		if diff := cmp.Diff(zeros, g[k].Data(), cmpopts.EquateApprox(0, 1e-15)); diff != "" {
			t.Fatalf("axis %d (-want +got):\n%s", k, diff)
		}
	}
}

func TestSingletonAxis(t *testing.T) {
	x, _ := tensor.FromSlice([]float64{1, 2, 3}, 1, 3)
	g, err := stencil.Gradient(x, 2, stencil.Weights[float64]{})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, g[0].Data())

	d, err := stencil.Divergence(g, stencil.Weights[float64]{})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, -1}, d.Data())
}

func TestMagnitude(t *testing.T) {
	a, _ := tensor.FromSlice([]float64{3, 0}, 2)
	b, _ := tensor.FromSlice([]float64{4, 0}, 2)
	m, err := stencil.Magnitude([]*tensor.Array[float64]{a, b})
	require.NoError(t, err)
	require.Equal(t, []float64{5, 0}, m)
}

func TestNamedWeights(t *testing.T) {
	w, err := stencil.Named(2, map[string]stencil.Weight[float64]{
		"wy": stencil.Uniform(3.0),
	})
	require.NoError(t, err)
	require.False(t, w.Axis(0).IsSet())
	require.True(t, w.Axis(1).IsSet())
	require.Equal(t, 3.0, w.MaxAbs(2))
	require.Equal(t, 1.0, w.MaxAbs(1))

	_, err = stencil.Named(2, map[string]stencil.Weight[float64]{"wz": stencil.Uniform(1.0)})
	require.ErrorIs(t, err, stencil.ErrUnknownWeight)
	require.ErrorIs(t, err, stencil.ErrConfiguration)

	_, err = stencil.Named(4, map[string]stencil.Weight[float64]{"wq": stencil.Uniform(1.0)})
	require.ErrorIs(t, err, stencil.ErrUnknownWeight)

	_, err = stencil.Named(6, map[string]stencil.Weight[float64]{"wt": stencil.Uniform(1.0)})
	require.NoError(t, err)
}

func TestDefaultWeightsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	x, _ := tensor.New[float64](3, 3)
	w, err := stencil.PerAxis(stencil.Uniform(1.0))
	require.NoError(t, err)

	_, err = stencil.Gradient(x, 2, w, stencil.WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "wy")
	require.NotContains(t, buf.String(), "wx")
}

func TestErrors(t *testing.T) {
	x, _ := tensor.New[float64](3, 3)
	none := stencil.Weights[float64]{}

	_, err := stencil.Gradient(x, 3, none)
	require.ErrorIs(t, err, stencil.ErrInvalidDim)
	_, err = stencil.Gradient(x, 0, none)
	require.ErrorIs(t, err, stencil.ErrConfiguration)
	_, err = stencil.Gradient[float64](nil, 1, none)
	require.ErrorIs(t, err, stencil.ErrNilArray)

	bad, _ := tensor.New[float64](2, 3)
	_, err = stencil.Gradient(x, 1, mustPerAxis(t, stencil.Field(bad)))
	require.ErrorIs(t, err, stencil.ErrDimensionMismatch)

	_, err = stencil.Divergence([]*tensor.Array[float64]{x, bad}, none)
	require.ErrorIs(t, err, stencil.ErrDimensionMismatch)
	_, err = stencil.Divergence(nil, none)
	require.ErrorIs(t, err, stencil.ErrInvalidDim)
	_, err = stencil.Divergence([]*tensor.Array[float64]{x, x, x}, none)
	require.ErrorIs(t, err, stencil.ErrInvalidDim)

	_, err = stencil.PerAxis(make([]stencil.Weight[float64], 5)...)
	require.ErrorIs(t, err, stencil.ErrInvalidDim)
}

func mustPerAxis[T tensor.Scalar](t *testing.T, ws ...stencil.Weight[T]) stencil.Weights[T] {
	t.Helper()
	w, err := stencil.PerAxis(ws...)
	require.NoError(t, err)

	return w
}
