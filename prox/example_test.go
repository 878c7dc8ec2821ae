// SPDX-License-Identifier: MIT

package prox_test

import (
	"fmt"

	"github.com/katalvlaran/proxbox/prox"
)

func ExampleNewL1() {
	f, err := prox.NewL1()
	if err != nil {
		panic(err)
	}
	v, _ := f.Eval([]float64{1, 2, 3, 4})
	sol, _ := f.Prox([]float64{1, 2, 3, 4}, 1)
	fmt.Println(v)
	fmt.Println(sol)
	// Output:
	// 10
	// [0 1 2 3]
}

func ExampleNewBallL2() {
	f, err := prox.NewBallL2(prox.WithY(1, 1), prox.WithEpsilon(1))
	if err != nil {
		panic(err)
	}
	sol, info, _ := f.ProxInfo([]float64{4, 5}, 1)
	fmt.Printf("%.2f %v\n", sol, info.State)
	// Output:
	// [1.60 1.80] CONVERGED
}

func ExampleNewTV() {
	f, err := prox.NewTV([]int{2}, 1, prox.WithTol(1e-8))
	if err != nil {
		panic(err)
	}
	sol, info, _ := f.ProxInfo([]float64{0, 1}, 0.1)
	fmt.Printf("%.3f %v %s\n", sol, info.State, info.Reason)
	// Output:
	// [0.100 0.900] CONVERGED TOL_EPS
}

func ExampleProbe() {
	l1, _ := prox.NewL1()
	l2, _ := prox.NewL2(prox.WithTight(false))
	for _, f := range []prox.Function{l1, l2} {
		caps, err := prox.Probe(f, []float64{1, 2})
		if err != nil {
			panic(err)
		}
		fmt.Println(f.Name(), caps)
	}
	// Output:
	// l1 EVAL|PROX
	// l2 EVAL|GRAD
}

func ExampleSoftThresholdComplex() {
	z, _ := prox.SoftThresholdComplex([]complex128{3 + 4i, 0}, []float64{1})
	fmt.Printf("%.1f\n", z)
	// Output:
	// [(2.4+3.2i) (0.0+0.0i)]
}
