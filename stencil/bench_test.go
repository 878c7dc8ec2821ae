// SPDX-License-Identifier: MIT

package stencil_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/proxbox/stencil"
	"github.com/katalvlaran/proxbox/tensor"
)

var sinkA *tensor.Array[float64]

func BenchmarkGradientDivergence(b *testing.B) {
	b.ReportAllocs()
	shapes := [][]int{{1 << 14}, {128, 128}, {32, 32, 32}}
	for _, shape := range shapes {
		b.Run(fmt.Sprintf("%v", shape), func(b *testing.B) {
			x, err := tensor.New[float64](shape...)
			if err != nil {
				b.Fatal(err)
			}
			rng := rand.New(rand.NewSource(1337))
			for i := range x.Data() {
				x.Data()[i] = rng.Float64()
			}
			var w stencil.Weights[float64]
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				g, err := stencil.Gradient(x, len(shape), w)
				if err != nil {
					b.Fatal(err)
				}
				d, err := stencil.Divergence(g, w)
				if err != nil {
					b.Fatal(err)
				}
				sinkA = d
			}
		})
	}
}
