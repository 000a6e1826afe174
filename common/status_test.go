package common

import "testing"

type fixedStatus Status

func (f fixedStatus) Status() Status { return Status(f) }

func TestStatusString(t *testing.T) {
	for _, test := range []struct {
		s    Status
		want string
	}{
		{Continue, "Continue"},
		{FunAbsTol, "FunctionAbsoluteTolerance"},
		{DerivativeZero, "DerivativeZero"},
		{Cycling, "IterateCycling"},
		{MaximumIterations, "MaximumIterations"},
		{MaximumFunctionEvaluations, "MaximumFunctionEvaluations"},
		{MaximumRuntime, "MaximumRuntimeElapsed"},
		{Status(-100), "UnregisteredStatus"},
	} {
		if got := test.s.String(); got != test.want {
			t.Errorf("String of %d. Expected: %v, Found %v", int(test.s), test.want, got)
		}
	}
}

func TestStatusConverged(t *testing.T) {
	if !FunAbsTol.Converged() {
		t.Errorf("%v should be converged", FunAbsTol)
	}
	for _, s := range []Status{Continue, DerivativeZero, Cycling, MaximumIterations, MaximumFunctionEvaluations, MaximumRuntime} {
		if s.Converged() {
			t.Errorf("%v should not be converged", s)
		}
	}
}

func TestNewStatus(t *testing.T) {
	a := NewStatus("First")
	b := NewStatus("Second")
	if a == b {
		t.Errorf("new statuses collide: %d", int(a))
	}
	if a.String() != "First" || b.String() != "Second" {
		t.Errorf("names don't match. Found %v and %v", a, b)
	}
	if !a.Converged() || !b.Converged() {
		t.Errorf("new statuses should count as converged")
	}
}

func TestCheckStatus(t *testing.T) {
	if s := CheckStatus(fixedStatus(Continue), fixedStatus(Continue)); s != Continue {
		t.Errorf("Expected: %v, Found %v", Continue, s)
	}
	s := CheckStatus(fixedStatus(Continue), fixedStatus(DerivativeZero), fixedStatus(MaximumIterations))
	if s != DerivativeZero {
		t.Errorf("first non-continue status should win. Expected: %v, Found %v", DerivativeZero, s)
	}
	if s := CheckStatus(); s != Continue {
		t.Errorf("Expected: %v, Found %v", Continue, s)
	}
}
