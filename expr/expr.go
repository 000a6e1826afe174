// Package expr parses real expressions in one variable, such as
// "x**2 - 2" or "cos(x) - x", evaluates them and differentiates them
// symbolically.
//
// Compile turns an expression into a *Function that satisfies the Function
// and Derivative interfaces of package univariate, with the derivative
// computed once when the expression is compiled.
package expr

import (
	"errors"
	"fmt"
)

var (
	ErrParse = errors.New("parse error")
	ErrEval  = errors.New("eval error")
)

// Function is a compiled expression together with its derivative.
type Function struct {
	src     string
	varName string
	f       Node
	df      Node
}

// Compile parses src as an expression in varName and differentiates it.
func Compile(src, varName string) (*Function, error) {
	f, err := Parse(src, varName)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Function{
		src:     src,
		varName: varName,
		f:       f.Simplify(),
		df:      f.Deriv(varName).Simplify(),
	}, nil
}

func (fn *Function) Func(x float64) (float64, error)  { return fn.f.Eval(x) }
func (fn *Function) Deriv(x float64) (float64, error) { return fn.df.Eval(x) }

// Source returns the text the function was compiled from.
func (fn *Function) Source() string { return fn.src }

// Var returns the name of the variable.
func (fn *Function) Var() string { return fn.varName }

// String returns the simplified function.
func (fn *Function) String() string { return fn.f.String() }

// DerivString returns the derivative.
func (fn *Function) DerivString() string { return fn.df.String() }

func (fn *Function) Node() Node      { return fn.f }
func (fn *Function) DerivNode() Node { return fn.df }
