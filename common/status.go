package common

type Statuser interface {
	Status() Status
}

// CheckStatus checks the status of a variadic number of statusers and
// returns the first one that is not Continue
func CheckStatus(cs ...Statuser) Status {
	for _, val := range cs {
		c := val.Status()
		if c != Continue {
			return c
		}
	}
	return Continue
}

// NewStatus is used to get a unique value for Status to avoid any accidental
// collisions. The returned status counts as converged. NewStatus is not
// thread-safe as it is intended to only be used during initialization
func NewStatus(str string) Status {
	lastStatus++
	statusStrings[lastStatus] = str
	return Status(lastStatus)
}

var statusStrings map[Status]string

func init() {
	statusStrings = make(map[Status]string)
	statusStrings[Continue] = "Continue"
	statusStrings[FunAbsTol] = "FunctionAbsoluteTolerance"

	statusStrings[DerivativeZero] = "DerivativeZero"
	statusStrings[Cycling] = "IterateCycling"
	statusStrings[MaximumIterations] = "MaximumIterations"
	statusStrings[MaximumFunctionEvaluations] = "MaximumFunctionEvaluations"
	statusStrings[MaximumRuntime] = "MaximumRuntimeElapsed"
}

// Status is a type for expressing if the root finder has finished or not.
// Zero signifies the search should continue.
// Positive values indicate successful convergence
// negative values express failure for some way
//
// If a custom status value is desired, NewStatus should be called. NewStatus
// is not thread-safe as it is intended to only be used during initialization
type Status int

func (s Status) String() string {
	str, ok := statusStrings[s]
	if !ok {
		return "UnregisteredStatus"
	}
	return str
}

// Converged reports whether the search ended successfully.
func (s Status) Converged() bool { return s > 0 }

const (
	Continue Status = iota
	FunAbsTol
)

const (
	_                     = iota
	DerivativeZero Status = -1 * iota
	Cycling
	MaximumIterations
	MaximumFunctionEvaluations
	MaximumRuntime
)

var lastStatus Status = 256
