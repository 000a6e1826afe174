package univariate

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("univariate: invalid configuration")

	// ErrNonFinite is returned when a function, its derivative or a step
	// produces NaN or an infinity.
	ErrNonFinite = errors.New("non-finite value")
)

// ConfigError reports settings that do not allow a search to start.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return "univariate: " + e.Setting + " " + e.Reason
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

const (
	opFunction   = "function"
	opDerivative = "derivative"
	opStep       = "step"
)

// EvaluationError wraps a failure to evaluate the function or its
// derivative. It aborts the search.
type EvaluationError struct {
	Op   string  // function, derivative or step
	Iter int     // Iteration during which the failure happened
	Loc  float64 // Point of evaluation
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("univariate: %s evaluation failed at iteration %d, x = %v: %v", e.Op, e.Iter, e.Loc, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// evaluate calls fn at x and converts errors and non-finite results into
// an *EvaluationError.
func evaluate(fn func(float64) (float64, error), op string, iter int, x float64) (float64, error) {
	v, err := fn(x)
	if err == nil && !isFinite(v) {
		err = fmt.Errorf("%w: %v", ErrNonFinite, v)
	}
	if err != nil {
		return v, &EvaluationError{Op: op, Iter: iter, Loc: x, Err: err}
	}
	return v, nil
}
