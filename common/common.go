package common

import (
	"fmt"
	"math"
	"time"

	"github.com/btracey/newton/write"
)

type Initer interface {
	Init()
}

type Resulter interface {
	Result()
}

// FunctionWrapper holds the user function so that optional hooks it
// implements can take part in the search.
//
// If the function is an Initer it will be called once at the start of the search.
// If the function is a Statuser it is asked every iteration whether to stop.
// If the function is a Resulter it is called once the search ends.
// If the function is a write.DataAdder its values are displayed.
type FunctionWrapper struct {
	fun        interface{}
	initCalled bool
}

func (o *FunctionWrapper) Init(function interface{}) {
	if o.initCalled {
		return
	}
	o.initCalled = true
	o.fun = function

	initer, ok := function.(Initer)
	if ok {
		initer.Init()
	}
}

func (o *FunctionWrapper) Status() Status {
	statuser, isStatuser := o.fun.(Statuser)
	if isStatuser {
		return statuser.Status()
	}
	return Continue
}

func (o *FunctionWrapper) Result() {
	resulter, ok := o.fun.(Resulter)
	if ok {
		resulter.Result()
	}
}

func (o *FunctionWrapper) AppendWriteData(v []*write.Value) []*write.Value {
	dataWriter, ok := o.fun.(write.DataAdder)
	if ok {
		return dataWriter.AppendWriteData(v)
	}
	return v
}

// ToleranceSettings are the convergence settings for a search on a single
// output function
type ToleranceSettings struct {
	FunAbsTol      float64 // Absolute tolerance on |f| at the current iterate. NaN means not set
	LocCycleTol    float64 // Tolerance for detecting a cycling iterate. Non-positive disables the check
	LocCycleWindow int     // Number of iterations between the compared iterates
}

func DefaultToleranceSettings() *ToleranceSettings {
	return &ToleranceSettings{
		FunAbsTol:      math.NaN(),
		LocCycleTol:    -1,
		LocCycleWindow: 2,
	}
}

// Convergence tracks the function value and the iterate of a search on a
// single output function
type Convergence struct {
	fun *UniToler
	loc *UniToler
}

func NewConvergence() *Convergence {
	return &Convergence{
		fun: &UniToler{},
		loc: &UniToler{},
	}
}

// Init resets the trackers. The function value is not known to be converged
// until the first iteration, so it starts at infinity.
func (c *Convergence) Init(settings *ToleranceSettings, initLoc float64) {
	c.fun.Init(math.Abs(settings.FunAbsTol), -1, 0, math.Inf(1))
	c.loc.Init(math.NaN(), settings.LocCycleTol, settings.LocCycleWindow, initLoc)
}

func (c *Convergence) Iterate(loc, fun float64) {
	c.fun.Add(math.Abs(fun))
	c.loc.Add(loc)
}

func (c *Convergence) Status() Status {
	if c.fun.AbsConverged() {
		return FunAbsTol
	}
	if c.loc.RelConverged() {
		return Cycling
	}
	return Continue
}

// CommonSettings is a set of options available to all root finders
type CommonSettings struct {
	MaximumIterations          int           // Sets the maximum number of iterations that can occur. Negative means no limit
	MaximumFunctionEvaluations int           // Sets the maximum number of function and derivative evaluations. Negative means no limit
	MaximumRuntime             time.Duration // Sets the maximum runtime that can elapse. Negative means no limit
	*write.WriteSettings
}

// DefaultCommonSettings returns the default settings for the common structure.
// The iteration count is capped so that a search which never meets its
// tolerance still returns.
func DefaultCommonSettings() *CommonSettings {
	return &CommonSettings{
		MaximumIterations:          1000,
		MaximumFunctionEvaluations: -1, // Defaults to no maximum function evaluations
		MaximumRuntime:             -1, // Defaults to no maximum runtime
		WriteSettings:              write.DefaultWriteSettings(),
	}
}

// CommonResult is a list of results from the common structure
type CommonResult struct {
	Iterations            int           // Total number of iterations taken
	FunctionEvaluations   int           // Total number of function evaluations
	DerivativeEvaluations int           // Total number of derivative evaluations
	Runtime               time.Duration // Total runtime elapsed during the search
	Status                Status        // How did the search end
}

// Common provides routines for controlling the settings provided by common.
type Common struct {
	iter       int
	funEvals   int
	derivEvals int
	startTime  time.Time

	settings *CommonSettings

	*write.Display
	*FunctionWrapper
}

// NewCommon creates a new Common structure, and adds itself to the data adders
func NewCommon() *Common {
	c := &Common{
		Display:         write.NewDisplay(),
		FunctionWrapper: &FunctionWrapper{},
	}
	c.AddDataAdder(c, c.FunctionWrapper)
	return c
}

// Init initializes all of the values in common at the start of the search.
// header is written to every display writer.
func (c *Common) Init(settings *CommonSettings, function interface{}, header string) error {
	c.iter = 0
	c.funEvals = 0
	c.derivEvals = 0
	c.startTime = time.Now()

	c.settings = settings

	c.FunctionWrapper.Init(function)
	if settings.WriteSettings == nil {
		return nil
	}
	return c.Display.Init(settings.WriteSettings, header)
}

func (c *Common) AppendWriteData(d []*write.Value) []*write.Value {
	d = append(d, &write.Value{Heading: "Iter", Value: c.iter})
	d = append(d, &write.Value{Heading: "FnEval", Value: c.funEvals})
	d = append(d, &write.Value{Heading: "DerivEval", Value: c.derivEvals})
	return d
}

// Status checks the user function and the limits controlled by common
// (iterations, evaluations, runtime).
func (c *Common) Status() Status {
	status := c.FunctionWrapper.Status()
	if status != Continue {
		return status
	}

	if c.settings.MaximumIterations > -1 && c.iter >= c.settings.MaximumIterations {
		return MaximumIterations
	}
	if c.settings.MaximumFunctionEvaluations > -1 && c.funEvals+c.derivEvals >= c.settings.MaximumFunctionEvaluations {
		return MaximumFunctionEvaluations
	}
	if c.settings.MaximumRuntime > -1 && time.Since(c.startTime) > c.settings.MaximumRuntime {
		return MaximumRuntime
	}
	return Continue
}

// AddEvaluations records evaluations that were not part of a completed iteration
func (c *Common) AddEvaluations(nFunEvals, nDerivEvals int) {
	c.funEvals += nFunEvals
	c.derivEvals += nDerivEvals
}

// Iterate performs an iteration of the common structure, incrementing
// the iteration, adding the number of evaluations, and
// writing to the writers
func (c *Common) Iterate(nFunEvals, nDerivEvals int) error {
	c.iter++
	c.AddEvaluations(nFunEvals, nDerivEvals)
	return c.Display.Iterate()
}

// Iterations returns the number of completed iterations
func (c *Common) Iterations() int {
	return c.iter
}

// Result returns the results from the common structure and closes the display
func (c *Common) Result(status Status) (*CommonResult, error) {
	c.FunctionWrapper.Result()
	r := &CommonResult{
		Iterations:            c.iter,
		FunctionEvaluations:   c.funEvals,
		DerivativeEvaluations: c.derivEvals,
		Runtime:               time.Since(c.startTime),
		Status:                status,
	}
	if err := c.Display.Finish(fmt.Sprintf("Done: %v", status)); err != nil {
		return r, err
	}
	return r, nil
}
