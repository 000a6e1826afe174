package expr

import (
	"fmt"
	"math"
	"strconv"
)

// Node is a parsed expression in one variable.
type Node interface {
	// Eval evaluates the expression with the variable set to x.
	Eval(x float64) (float64, error)
	// Deriv returns the derivative with respect to varName.
	Deriv(varName string) Node
	// Simplify folds constants and removes neutral elements.
	Simplify() Node
	String() string
}

// functions maps the names accepted in calls to their implementation.
var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
	"exp":  math.Exp,
	"ln":   math.Log,
	"log":  math.Log,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
	"sign": sign,
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Functions returns the names of the functions accepted by Parse.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	return names
}

type number struct{ v float64 }

func (n number) Eval(float64) (float64, error) { return n.v, nil }
func (n number) Deriv(string) Node             { return number{v: 0} }
func (n number) Simplify() Node                { return n }
func (n number) String() string                { return strconv.FormatFloat(n.v, 'g', -1, 64) }

type variable struct{ name string }

func (n variable) Eval(x float64) (float64, error) { return x, nil }
func (n variable) Simplify() Node                  { return n }
func (n variable) String() string                  { return n.name }

func (n variable) Deriv(varName string) Node {
	if n.name == varName {
		return number{v: 1}
	}
	return number{v: 0}
}

type negate struct{ x Node }

func (n negate) Eval(x float64) (float64, error) {
	v, err := n.x.Eval(x)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n negate) Simplify() Node {
	x := n.x.Simplify()
	switch v := x.(type) {
	case number:
		return number{v: -v.v}
	case negate:
		return v.x
	}
	return negate{x: x}
}

func (n negate) String() string {
	return "-" + wrap(n.x, precedence(n.x) < precUnary)
}

type binary struct {
	op    byte
	left  Node
	right Node
}

func (n binary) Eval(x float64) (float64, error) {
	a, err := n.left.Eval(x)
	if err != nil {
		return 0, err
	}
	b, err := n.right.Eval(x)
	if err != nil {
		return 0, err
	}
	return evalBinary(n.op, a, b)
}

func evalBinary(op byte, a, b float64) (float64, error) {
	switch op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if b == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrEval)
		}
		return a / b, nil
	case '^':
		v := math.Pow(a, b)
		if undefined(v, a, b) {
			return 0, fmt.Errorf("%w: %v^%v is undefined", ErrEval, a, b)
		}
		return v, nil
	}
	return 0, fmt.Errorf("%w: binary %q", ErrEval, op)
}

// undefined reports whether v left the reals although all arguments are finite.
func undefined(v float64, args ...float64) bool {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		return false
	}
	for _, a := range args {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return false
		}
	}
	return true
}

func (n binary) Simplify() Node {
	left := n.left.Simplify()
	right := n.right.Simplify()

	ln, lok := left.(number)
	rn, rok := right.(number)
	if lok && rok {
		v, err := evalBinary(n.op, ln.v, rn.v)
		if err == nil {
			return number{v: v}
		}
	}

	switch n.op {
	case '+':
		if isNumber(left, 0) {
			return right
		}
		if isNumber(right, 0) {
			return left
		}
	case '-':
		if isNumber(right, 0) {
			return left
		}
		if isNumber(left, 0) {
			return negate{x: right}.Simplify()
		}
	case '*':
		if isNumber(left, 0) || isNumber(right, 0) {
			return number{v: 0}
		}
		if isNumber(left, 1) {
			return right
		}
		if isNumber(right, 1) {
			return left
		}
	case '/':
		if isNumber(right, 1) {
			return left
		}
	case '^':
		if isNumber(right, 1) {
			return left
		}
		if isNumber(right, 0) {
			return number{v: 1}
		}
	}
	return binary{op: n.op, left: left, right: right}
}

func isNumber(n Node, v float64) bool {
	num, ok := n.(number)
	return ok && num.v == v
}

func (n binary) String() string {
	p := opPrecedence(n.op)
	lp := precedence(n.left)
	rp := precedence(n.right)
	l := wrap(n.left, lp < p || (n.op == '^' && lp == p))
	r := wrap(n.right, rp < p || (rp == p && (n.op == '-' || n.op == '/')))
	if n.op == '^' {
		return l + "^" + r
	}
	return l + " " + string(n.op) + " " + r
}

type call struct {
	name string
	arg  Node
}

func (n call) Eval(x float64) (float64, error) {
	a, err := n.arg.Eval(x)
	if err != nil {
		return 0, err
	}
	v := functions[n.name](a)
	if undefined(v, a) {
		return 0, fmt.Errorf("%w: %s(%v) is undefined", ErrEval, n.name, a)
	}
	return v, nil
}

func (n call) Simplify() Node {
	arg := n.arg.Simplify()
	if num, ok := arg.(number); ok {
		v, err := call{name: n.name, arg: num}.Eval(0)
		if err == nil {
			return number{v: v}
		}
	}
	return call{name: n.name, arg: arg}
}

func (n call) String() string {
	return n.name + "(" + n.arg.String() + ")"
}

const (
	precSum = iota + 1
	precProduct
	precUnary
	precPower
	precAtom
)

func opPrecedence(op byte) int {
	switch op {
	case '+', '-':
		return precSum
	case '*', '/':
		return precProduct
	}
	return precPower
}

func precedence(n Node) int {
	switch v := n.(type) {
	case binary:
		return opPrecedence(v.op)
	case negate:
		return precUnary
	case number:
		if v.v < 0 || math.Signbit(v.v) {
			return precUnary
		}
	}
	return precAtom
}

func wrap(n Node, paren bool) string {
	if paren {
		return "(" + n.String() + ")"
	}
	return n.String()
}
