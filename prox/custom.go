// SPDX-License-Identifier: MIT

package prox

// CustomFuncs are the user-supplied primitives of a Custom function.
// A nil field makes the matching method fail with ErrNotSupported.
type CustomFuncs struct {
	Eval func(x []float64) (float64, error)
	Grad func(x []float64) ([]float64, error)
	Prox func(x []float64, step float64) ([]float64, error)
}

// Custom is a Function assembled from caller-provided primitives.
type Custom struct {
	base
	name string
	fns  CustomFuncs
}

// NewCustom builds a Custom function named name (used in diagnostics; empty
// means "custom"). Accepted options: WithVerbosity and WithLogger.
func NewCustom(name string, fns CustomFuncs, opts ...Option) (*Custom, error) {
	o, err := gatherOptions("NewCustom", acceptDiag, opts...)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = KindCustom.String()
	}

	return &Custom{base: newBase(o), name: name, fns: fns}, nil
}

// Eval calls the user evaluation rule.
func (f *Custom) Eval(x []float64) (float64, error) {
	if f.fns.Eval == nil {
		return 0, proxErrorf(f.name+".Eval", ErrNotSupported)
	}
	v, err := f.fns.Eval(x)
	if err != nil {
		return 0, proxErrorf(f.name+".Eval", err)
	}
	f.logEval(f.name, v)

	return v, nil
}

// Grad calls the user gradient rule.
func (f *Custom) Grad(x []float64) ([]float64, error) {
	if f.fns.Grad == nil {
		return nil, proxErrorf(f.name+".Grad", ErrNotSupported)
	}
	g, err := f.fns.Grad(x)
	if err != nil {
		return nil, proxErrorf(f.name+".Grad", err)
	}

	return g, nil
}

// Prox validates step and calls the user proximal rule.
func (f *Custom) Prox(x []float64, step float64) ([]float64, error) {
	if f.fns.Prox == nil {
		return nil, proxErrorf(f.name+".Prox", ErrNotSupported)
	}
	if err := checkStep(step); err != nil {
		return nil, proxErrorf(f.name+".Prox", err)
	}
	z, err := f.fns.Prox(x, step)
	if err != nil {
		return nil, proxErrorf(f.name+".Prox", err)
	}

	return z, nil
}

func (f *Custom) Name() string { return f.name }
func (f *Custom) Kind() Kind   { return KindCustom }

func (f *Custom) withVerbosity(v Verbosity) Function {
	c := *f
	c.diag.level = v

	return &c
}
