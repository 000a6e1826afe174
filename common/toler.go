package common

import "math"

// UniToler is a type for checking the convergence of a variable with either
// relative or absolute convergence values.
type UniToler struct {
	hist  []float64
	last  int // Index of the last value added
	added int // Number of values stored in hist, including the initial one

	absTol float64
	relTol float64

	recent float64
}

// Init initializes the UniToler. relativeWindow is the number of additions
// between the two values compared against the relative tolerance. If the
// relative tolerance is not positive it is ignored. If the absolute tolerance
// is NaN it is ignored.
func (t *UniToler) Init(absTol, relTol float64, relativeWindow int, initVal float64) {
	if relTol > 0 {
		size := relativeWindow + 1
		if cap(t.hist) < size {
			t.hist = make([]float64, size)
		} else {
			t.hist = t.hist[:size]
		}
		t.last = 0
		t.hist[0] = initVal
		t.added = 1
	}
	t.recent = initVal
	t.relTol = relTol
	t.absTol = absTol
}

// Add adds a new value to the toler (after an iteration)
func (t *UniToler) Add(v float64) {
	t.recent = v
	if t.relTol > 0 {
		t.last++
		if t.last == len(t.hist) {
			t.last = 0
		}
		t.hist[t.last] = v
		t.added++
	}
}

// AbsConverged returns true if the most recent value is strictly below the
// absolute tolerance
func (t *UniToler) AbsConverged() bool {
	if math.IsNaN(t.absTol) {
		return false
	}
	return t.recent < t.absTol
}

// RelConverged returns true if the absolute difference between the most recent added
// value and the value added relativeWindow times ago is less than the relative tolerance.
// It is false until relativeWindow values have been added after the initial one.
func (t *UniToler) RelConverged() bool {
	if t.relTol <= 0 || t.added < len(t.hist) {
		return false
	}
	recent := t.hist[t.last]

	prevInd := t.last + 1
	if prevInd == len(t.hist) {
		prevInd = 0
	}
	previous := t.hist[prevInd]

	return math.Abs(previous-recent) < t.relTol
}
