package univariate

import (
	"errors"
	"fmt"

	"github.com/btracey/newton/common"
)

// RootFinder is an iterative method for finding a root of a univariate function
type RootFinder interface {
	Init(f Function, df Derivative, initLoc float64) error
	// Status reports a condition found by the method itself, such as a
	// derivative that does not allow a step
	Status() common.Status
	// Iterate attempts one step from the current iterate
	Iterate() (Step, error)
	// Result does any cleanup needed
	Result()
}

// Step describes one attempted iteration of a RootFinder.
type Step struct {
	Prev  float64 // Iterate the step started from
	Loc   float64 // New iterate. Equal to Prev if the step was not taken
	Fun   float64 // Function value at Loc
	Deriv float64 // Derivative value at Prev

	FunEvals   int
	DerivEvals int

	// Taken is false when the method could not move from Prev. The reason
	// is then reported by the method's Status.
	Taken bool
}

// Wrapper is a convenience wrapper around a root finding algorithm that
// allows more fine-grained control over the progress of the search. See
// FindRoot for example usage
type Wrapper struct {
	finder RootFinder
	helper *Helper
}

func NewWrapper(finder RootFinder) *Wrapper {
	return &Wrapper{
		finder: finder,
		helper: NewHelper(),
	}
}

func (w *Wrapper) Init(settings *Settings, f Function, df Derivative, initLoc float64) error {
	if err := w.finder.Init(f, df, initLoc); err != nil {
		return err
	}
	return w.helper.Init(settings, f, initLoc)
}

// Status returns the first condition that ends the search. A stalled method
// is reported before the tolerances and limits, which cannot have changed
// since the previous check.
func (w *Wrapper) Status() common.Status {
	return common.CheckStatus(w.finder, w.helper)
}

func (w *Wrapper) Iterate() (Step, error) {
	step, err := w.finder.Iterate()
	if err != nil {
		return step, err
	}
	if !step.Taken {
		w.helper.Stall(step)
		return step, nil
	}
	if err := w.helper.Iterate(step); err != nil {
		return step, fmt.Errorf("error writing iteration: %w", err)
	}
	return step, nil
}

func (w *Wrapper) Result(status common.Status) (*Result, error) {
	w.finder.Result()
	return w.helper.Result(status)
}

// FindRoot searches for a root of f starting from the point described by
// settings. The search runs to completion before FindRoot returns.
//
// If df is nil the derivative is estimated with central finite differences.
// If settings is nil DefaultSettings is used, which requires the tolerance
// and a start to be set, so in practice settings are always given.
// If finder is nil, Newton's method is used.
//
// An invalid configuration returns a *ConfigError before any evaluation. A
// failing evaluation returns an *EvaluationError and no Result. Every other
// way for the search to end, successful or not, is reported in Result.Status.
func FindRoot(f Function, df Derivative, settings *Settings, finder RootFinder) (*Result, error) {
	if f == nil {
		return nil, errors.New("univariate: function is nil")
	}
	if settings == nil {
		settings = DefaultSettings()
	}
	if finder == nil {
		finder = &Newton{}
	}
	if df == nil {
		df = FiniteDifference(f, nil)
	}

	initLoc, err := settings.start()
	if err != nil {
		return nil, err
	}

	wrapper := NewWrapper(finder)
	err = wrapper.Init(settings, f, df, initLoc)
	if err != nil {
		return nil, err
	}

	var status common.Status
	for {
		status = wrapper.Status()
		if status != common.Continue {
			break
		}

		_, err := wrapper.Iterate()
		if err != nil {
			return nil, err
		}
	}
	return wrapper.Result(status)
}
