package common

import (
	"math"
	"testing"
	"time"
)

func TestAbsConverged(t *testing.T) {
	var tol UniToler
	tol.Init(1e-3, -1, 0, math.Inf(1))
	if tol.AbsConverged() {
		t.Errorf("converged before any value was added")
	}
	tol.Add(1e-3)
	if tol.AbsConverged() {
		t.Errorf("a value equal to the tolerance should not converge")
	}
	tol.Add(9e-4)
	if !tol.AbsConverged() {
		t.Errorf("a value below the tolerance should converge")
	}
	if tol.RelConverged() {
		t.Errorf("relative convergence should be disabled")
	}

	tol.Init(math.NaN(), -1, 0, 0)
	tol.Add(0)
	if tol.AbsConverged() {
		t.Errorf("a NaN tolerance should disable the absolute check")
	}
}

func TestRelConverged(t *testing.T) {
	var tol UniToler
	tol.Init(math.NaN(), 1e-9, 2, 0)
	tol.Add(1)
	if tol.RelConverged() {
		t.Errorf("converged before the window was filled")
	}
	tol.Add(0)
	if !tol.RelConverged() {
		t.Errorf("a value repeated two additions later should converge")
	}
	tol.Add(5)
	if tol.RelConverged() {
		t.Errorf("5 is not within tolerance of 1")
	}
	tol.Add(0)
	tol.Add(5)
	if !tol.RelConverged() {
		t.Errorf("a value repeated after wrapping the history should converge")
	}

	// Reinitializing reuses the history and forgets the old values.
	tol.Init(math.NaN(), 1e-9, 1, 3)
	tol.Add(3)
	if !tol.RelConverged() {
		t.Errorf("window 1 compares with the previous value")
	}
	tol.Init(math.NaN(), 1e-9, 1, 2)
	if tol.RelConverged() {
		t.Errorf("converged right after Init")
	}
}

func TestConvergence(t *testing.T) {
	c := NewConvergence()
	settings := DefaultToleranceSettings()
	settings.FunAbsTol = -1e-6
	c.Init(settings, 0)
	if s := c.Status(); s != Continue {
		t.Errorf("Expected: %v, Found %v", Continue, s)
	}
	c.Iterate(1, -1e-7)
	if s := c.Status(); s != FunAbsTol {
		t.Errorf("Expected: %v, Found %v", FunAbsTol, s)
	}

	settings.FunAbsTol = 1e-12
	settings.LocCycleTol = 1e-12
	c.Init(settings, 0)
	c.Iterate(1, 1)
	c.Iterate(0, 2)
	if s := c.Status(); s != Cycling {
		t.Errorf("Expected: %v, Found %v", Cycling, s)
	}
}

func TestCommonLimits(t *testing.T) {
	settings := DefaultCommonSettings()
	settings.WriteSettings = nil
	settings.MaximumIterations = 3
	c := NewCommon()
	if err := c.Init(settings, nil, ""); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if s := c.Status(); s != Continue {
			t.Fatalf("stopped after %d iterations with %v", i, s)
		}
		if err := c.Iterate(1, 1); err != nil {
			t.Fatal(err)
		}
	}
	if s := c.Status(); s != MaximumIterations {
		t.Errorf("Expected: %v, Found %v", MaximumIterations, s)
	}

	settings.MaximumIterations = -1
	settings.MaximumFunctionEvaluations = 4
	c.Init(settings, nil, "")
	c.AddEvaluations(2, 1)
	if s := c.Status(); s != Continue {
		t.Errorf("Expected: %v, Found %v", Continue, s)
	}
	c.AddEvaluations(0, 1)
	if s := c.Status(); s != MaximumFunctionEvaluations {
		t.Errorf("Expected: %v, Found %v", MaximumFunctionEvaluations, s)
	}

	settings.MaximumFunctionEvaluations = -1
	settings.MaximumRuntime = time.Nanosecond
	c.Init(settings, nil, "")
	time.Sleep(time.Millisecond)
	if s := c.Status(); s != MaximumRuntime {
		t.Errorf("Expected: %v, Found %v", MaximumRuntime, s)
	}

	r, err := c.Result(MaximumRuntime)
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != MaximumRuntime || r.Iterations != 0 {
		t.Errorf("unexpected result %+v", r)
	}
}
