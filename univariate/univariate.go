package univariate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/btracey/newton/common"
	"github.com/btracey/newton/write"
)

// Function is a real function of one real variable.
type Function interface {
	Func(x float64) (float64, error)
}

// Derivative is the first derivative of a Function.
type Derivative interface {
	Deriv(x float64) (float64, error)
}

// Func allows an ordinary function to be used as a Function.
type Func func(x float64) (float64, error)

func (f Func) Func(x float64) (float64, error) { return f(x) }

// DerivFunc allows an ordinary function to be used as a Derivative.
type DerivFunc func(x float64) (float64, error)

func (f DerivFunc) Deriv(x float64) (float64, error) { return f(x) }

// Settings is a structure containing settings for univariate root finders.
//
// The search starts at XInit. If XInit is NaN, the start is an integer drawn
// uniformly from [XMin, XMax] using Rand, in which case both bounds must be set.
// FunAbsTol must be set; its absolute value is used.
type Settings struct {
	*common.CommonSettings
	*common.ToleranceSettings

	XMin  float64 // Lower search bound. NaN means not set
	XMax  float64 // Upper search bound. NaN means not set
	XInit float64 // Initial iterate. NaN means not set

	// Rand is the source for a random starting point. If nil, the global
	// source of math/rand/v2 is used.
	Rand *rand.Rand
}

// DefaultSettings returns the default settings for univariate root finders.
// The tolerance and either XInit or both bounds have to be set before use.
func DefaultSettings() *Settings {
	return &Settings{
		CommonSettings:    common.DefaultCommonSettings(),
		ToleranceSettings: common.DefaultToleranceSettings(),
		XMin:              math.NaN(),
		XMax:              math.NaN(),
		XInit:             math.NaN(),
	}
}

// Helper is a helper struct for root finders. Not intended for use by
// callers of FindRoot, but exported to aid others who are building
// root finding algorithms
//
// Implementers should call Init() at the beginning of a search
// and should call Status() to check tolerances. After every completed step
// Iterate() should be called.
type Helper struct {
	*common.Common
	*common.Convergence

	start float64
	loc   float64
	fun   float64
	deriv float64

	trace Trace
}

// NewHelper creates a new Helper and adds itself to the data adders
func NewHelper() *Helper {
	u := &Helper{
		Common:      common.NewCommon(),
		Convergence: common.NewConvergence(),
	}
	u.AddDataAdder(u)
	return u
}

func (u *Helper) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "Loc", Value: u.loc})
	v = append(v, &write.Value{Heading: "Fun", Value: u.fun})
	v = append(v, &write.Value{Heading: "Deriv", Value: u.deriv})
	return v
}

func (u *Helper) Init(s *Settings, function interface{}, initLoc float64) error {
	u.start = initLoc
	u.loc = initLoc
	u.fun = math.NaN()
	u.deriv = math.NaN()
	u.trace = Trace{}

	u.Convergence.Init(s.ToleranceSettings, initLoc)
	return u.Common.Init(s.CommonSettings, function, fmt.Sprintf("Start %v ======", initLoc))
}

// Iterate records a completed step. The superseded iterate is appended to
// the trace before the iteration count is increased.
func (u *Helper) Iterate(step Step) error {
	u.trace.locs = append(u.trace.locs, step.Prev)
	u.loc = step.Loc
	u.fun = step.Fun
	u.deriv = step.Deriv
	u.Convergence.Iterate(step.Loc, step.Fun)
	return u.Common.Iterate(step.FunEvals, step.DerivEvals)
}

// Stall records a step the root finder could not take. The iterate and the
// trace are left unchanged.
func (u *Helper) Stall(step Step) {
	u.deriv = step.Deriv
	u.AddEvaluations(step.FunEvals, step.DerivEvals)
}

func (u *Helper) Status() common.Status {
	status := u.Convergence.Status()
	if status != common.Continue {
		return status
	}
	return u.Common.Status()
}

func (u *Helper) Result(status common.Status) (*Result, error) {
	cr, err := u.Common.Result(status)
	if err != nil {
		return nil, err
	}
	return &Result{
		CommonResult: cr,
		Root:         u.loc,
		Fun:          u.fun,
		Start:        u.start,
		Trace:        Trace{locs: append([]float64(nil), u.trace.locs...)},
	}, nil
}

type Result struct {
	*common.CommonResult
	Root  float64 // Final iterate
	Fun   float64 // Function value at Root, NaN if it was never evaluated
	Start float64 // Initial iterate
	Trace Trace   // Iterates superseded during the search, one per iteration
}

// Summary returns the number of iterations and the final iterate.
func (r *Result) Summary() (iterations int, root float64) {
	return r.Iterations, r.Root
}
