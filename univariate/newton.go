package univariate

import (
	"math"

	"github.com/btracey/newton/common"
)

// Newton finds a root with the Newton-Raphson recurrence
//
//	x_{i+1} = x_i - f(x_i) / f'(x_i)
//
// Each iteration first evaluates the derivative at the current iterate. If
// its magnitude is at most DerivativeTol, no step is taken and the status
// becomes common.DerivativeZero. The function value at the new iterate is
// evaluated as part of the step and reused by the next one.
type Newton struct {
	// DerivativeTol is the largest derivative magnitude treated as zero.
	// The default of zero stops only on a derivative that is exactly zero.
	DerivativeTol float64

	f  Function
	df Derivative

	iter     int
	loc      float64
	fun      float64
	funKnown bool

	status common.Status
}

func (n *Newton) Init(f Function, df Derivative, initLoc float64) error {
	if !(n.DerivativeTol >= 0) || math.IsInf(n.DerivativeTol, 1) {
		return &ConfigError{Setting: "DerivativeTol", Reason: "must be non-negative and finite"}
	}
	n.f = f
	n.df = df
	n.iter = 0
	n.loc = initLoc
	n.fun = math.NaN()
	n.funKnown = false
	n.status = common.Continue
	return nil
}

func (n *Newton) Status() common.Status {
	return n.status
}

func (n *Newton) Iterate() (Step, error) {
	step := Step{Prev: n.loc, Loc: n.loc, Fun: n.fun}

	deriv, err := evaluate(n.df.Deriv, opDerivative, n.iter, n.loc)
	step.Deriv = deriv
	step.DerivEvals++
	if err != nil {
		return step, err
	}
	if math.Abs(deriv) <= n.DerivativeTol {
		n.status = common.DerivativeZero
		return step, nil
	}

	if !n.funKnown {
		n.fun, err = evaluate(n.f.Func, opFunction, n.iter, n.loc)
		step.FunEvals++
		if err != nil {
			return step, err
		}
		n.funKnown = true
	}

	next := n.loc - n.fun/deriv
	if !isFinite(next) {
		return step, &EvaluationError{Op: opStep, Iter: n.iter, Loc: n.loc, Err: ErrNonFinite}
	}
	fnext, err := evaluate(n.f.Func, opFunction, n.iter+1, next)
	step.FunEvals++
	if err != nil {
		return step, err
	}

	n.iter++
	n.loc = next
	n.fun = fnext

	step.Loc = next
	step.Fun = fnext
	step.Taken = true
	return step, nil
}

func (n *Newton) Result() {}
