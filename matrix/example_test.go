// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/proxbox/matrix"
)

// ExampleMatTransVec shows the forward and adjoint products of a 2×3 operator.
func ExampleMatTransVec() {
	A, err := matrix.FromRows([][]float64{
		{1, 0, 2},
		{0, 1, 1},
	})
	if err != nil {
		panic(err)
	}

	y, _ := matrix.MatVec(A, []float64{1, 2, 3})
	z, _ := matrix.MatTransVec(A, []float64{1, -1})
	fmt.Println(y)
	fmt.Println(z)
	// Output:
	// [7 5]
	// [1 -1 1]
}
