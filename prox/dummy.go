// SPDX-License-Identifier: MIT

package prox

// Dummy is the zero function: f(x) = 0. Solvers use it as the second term
// when only one function is minimized.
type Dummy struct {
	base
}

// NewDummy builds the zero function. It accepts the common options.
func NewDummy(opts ...Option) (*Dummy, error) {
	o, err := gatherOptions("NewDummy", acceptCommon, opts...)
	if err != nil {
		return nil, err
	}

	return &Dummy{base: newBase(o)}, nil
}

// Eval returns 0.
func (f *Dummy) Eval(x []float64) (float64, error) {
	f.logEval(f.Name(), 0)

	return 0, nil
}

// Grad returns a zero vector of len(x).
func (f *Dummy) Grad(x []float64) ([]float64, error) {
	return make([]float64, len(x)), nil
}

// Prox returns a copy of x.
func (f *Dummy) Prox(x []float64, step float64) ([]float64, error) {
	if err := checkStep(step); err != nil {
		return nil, proxErrorf("Dummy.Prox", err)
	}

	return append([]float64(nil), x...), nil
}

func (f *Dummy) Name() string { return KindDummy.String() }
func (f *Dummy) Kind() Kind   { return KindDummy }

func (f *Dummy) withVerbosity(v Verbosity) Function {
	c := *f
	c.diag.level = v

	return &c
}
