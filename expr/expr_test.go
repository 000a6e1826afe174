package expr

import (
	"errors"
	"math"
	"sort"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-12

func TestEval(t *testing.T) {
	for _, test := range []struct {
		src  string
		x    float64
		want float64
	}{
		{"x**2 - 2", 3, 7},
		{"x^2 - 2", 3, 7},
		{"-x^2", 3, -9},
		{"(-x)^2", 3, 9},
		{"2^3^2", 0, 512},
		{"(2^3)^2", 0, 64},
		{"2**-1", 0, 0.5},
		{"1 - 2 - 3", 0, -4},
		{"12 / 3 / 2", 0, 2},
		{"2 + 3 * x", 2, 8},
		{"[x + 1] * 2", 1, 4},
		{"+x", 5, 5},
		{"1.5e3 + .5", 0, 1500.5},
		{"2E-1", 0, 0.2},
		{"pi", 0, math.Pi},
		{"e + E", 0, 2 * math.E},
		{"cos(x) - x", 0, 1},
		{"exp(ln(x))", 7, 7},
		{"log(e)", 0, 1},
		{"sqrt(abs(x))", -16, 4},
		{"sign(x) * sinh(0)", -2, 0},
		{"atan(1) * 4", 0, math.Pi},
		{"x_1", 4, 4},
	} {
		varName := "x"
		if test.src == "x_1" {
			varName = "x_1"
		}
		n, err := Parse(test.src, varName)
		if err != nil {
			t.Errorf("%q: parse error %v", test.src, err)
			continue
		}
		got, err := n.Eval(test.x)
		if err != nil {
			t.Errorf("%q: eval error %v", test.src, err)
			continue
		}
		if !scalar.EqualWithinAbsOrRel(got, test.want, tol, tol) {
			t.Errorf("%q at %v. Expected: %v, Found %v", test.src, test.x, test.want, got)
		}
	}
}

func TestDeriv(t *testing.T) {
	for _, test := range []struct {
		src  string
		x    float64
		want float64
	}{
		{"x**2 - 2", 3, 6},
		{"x^3 - 2*x + 2", 1, 1},
		{"sin(x)", 1, math.Cos(1)},
		{"cos(x) - x", 1, -math.Sin(1) - 1},
		{"tan(x)", 0.5, 1 + math.Tan(0.5)*math.Tan(0.5)},
		{"exp(2*x)", 0, 2},
		{"ln(x)", 2, 0.5},
		{"sqrt(x)", 4, 0.25},
		{"x / (x + 1)", 1, 0.25},
		{"2^x", 3, 8 * math.Ln2},
		{"x^x", 2, 4 * (math.Ln2 + 1)},
		{"atan(x)", 1, 0.5},
		{"asin(x)", 0.5, 1 / math.Sqrt(0.75)},
		{"acos(x)", 0.5, -1 / math.Sqrt(0.75)},
		{"tanh(x)", 0, 1},
		{"cosh(x)", 1, math.Sinh(1)},
		{"abs(x)", -3, -1},
		{"sign(x)", 2, 0},
		{"-x^2", 2, -4},
		{"5", 1, 0},
	} {
		fn, err := Compile(test.src, "x")
		if err != nil {
			t.Errorf("%q: %v", test.src, err)
			continue
		}
		got, err := fn.Deriv(test.x)
		if err != nil {
			t.Errorf("%q: derivative error %v", test.src, err)
			continue
		}
		if !scalar.EqualWithinAbsOrRel(got, test.want, tol, tol) {
			t.Errorf("derivative of %q at %v. Expected: %v, Found %v", test.src, test.x, test.want, got)
		}
	}
}

func TestString(t *testing.T) {
	for _, test := range []struct {
		src, f, df string
	}{
		{"x**2 - 2", "x^2 - 2", "2 * x"},
		{"cos(x) - x", "cos(x) - x", "-sin(x) - 1"},
		{"(x - 1) * (x + 2)", "(x - 1) * (x + 2)", ""},
		{"x - (1 - x)", "x - (1 - x)", ""},
		{"0*x + 1*x", "x", "1"},
		{"--x", "x", "1"},
		{"2*3 + x", "6 + x", "1"},
		{"x^1 + x^0", "x + 1", "1"},
		{"-x^2", "-x^2", ""},
		{"(-x)^2", "(-x)^2", ""},
		{"(x^2)^3", "(x^2)^3", ""},
	} {
		fn, err := Compile(test.src, "x")
		if err != nil {
			t.Errorf("%q: %v", test.src, err)
			continue
		}
		if fn.String() != test.f {
			t.Errorf("%q. Expected: %q, Found %q", test.src, test.f, fn.String())
		}
		if test.df != "" && fn.DerivString() != test.df {
			t.Errorf("derivative of %q. Expected: %q, Found %q", test.src, test.df, fn.DerivString())
		}
		if fn.Source() != test.src || fn.Var() != "x" {
			t.Errorf("%q: source %q, var %q", test.src, fn.Source(), fn.Var())
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, src := range []string{
		"x^3 - 2*x + 2",
		"x / (x + 1)",
		"x^x",
		"2^(x - 1) / sqrt(1 - x^2)",
		"-(x + 1) * exp(-x)",
	} {
		fn, err := Compile(src, "x")
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		for _, n := range []Node{fn.Node(), fn.DerivNode()} {
			again, err := Parse(n.String(), "x")
			if err != nil {
				t.Errorf("%q does not parse: %v", n.String(), err)
				continue
			}
			for _, x := range []float64{0.25, 0.5} {
				want, err1 := n.Eval(x)
				got, err2 := again.Eval(x)
				if err1 != nil || err2 != nil {
					t.Errorf("%q at %v: %v, %v", n.String(), x, err1, err2)
					continue
				}
				if !scalar.EqualWithinAbsOrRel(got, want, tol, tol) {
					t.Errorf("%q at %v. Expected: %v, Found %v", n.String(), x, want, got)
				}
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"   ",
		"y + 1",
		"foo(x)",
		"sin",
		"x +",
		"(x",
		"sin(x",
		"x $ 2",
		"2x",
		"x )",
		"*x",
	} {
		_, err := Compile(src, "x")
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected a parse error, found %v", src, err)
		}
	}
	for _, name := range []string{"", "sin", "pi", "1x", "x y"} {
		if _, err := Parse("1", name); !errors.Is(err, ErrParse) {
			t.Errorf("variable %q: expected a parse error, found %v", name, err)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	for _, test := range []struct {
		src string
		x   float64
	}{
		{"1 / x", 0},
		{"ln(x)", -1},
		{"sqrt(x)", -1},
		{"x^0.5", -1},
		{"asin(x)", 2},
		{"exp(x)", 1000},
	} {
		fn, err := Compile(test.src, "x")
		if err != nil {
			t.Fatalf("%q: %v", test.src, err)
		}
		if _, err := fn.Func(test.x); !errors.Is(err, ErrEval) {
			t.Errorf("%q at %v: expected an eval error, found %v", test.src, test.x, err)
		}
	}
	// The derivative of ln is 1/x, which fails at 0.
	fn, err := Compile("ln(x)", "x")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fn.Deriv(0); !errors.Is(err, ErrEval) {
		t.Errorf("expected an eval error, found %v", err)
	}
}

func TestFunctions(t *testing.T) {
	names := Functions()
	sort.Strings(names)
	want := []string{"abs", "acos", "asin", "atan", "cos", "cosh", "exp", "ln", "log", "sign", "sin", "sinh", "sqrt", "tan", "tanh"}
	if len(names) != len(want) {
		t.Fatalf("Expected: %v, Found %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected: %v, Found %v", want, names)
			break
		}
	}
}
