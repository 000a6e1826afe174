package univariate

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// FiniteDifference returns a Derivative of f estimated with gonum's finite
// difference formulas. A nil settings uses the central formula with the
// default step. The first error returned by f during an estimate is
// returned by Deriv.
func FiniteDifference(f Function, settings *fd.Settings) Derivative {
	if settings == nil {
		settings = &fd.Settings{Formula: fd.Central}
	}
	return DerivFunc(func(x float64) (float64, error) {
		var evalErr error
		g := func(x float64) float64 {
			v, err := f.Func(x)
			if err != nil && evalErr == nil {
				evalErr = err
			}
			return v
		}
		d := fd.Derivative(g, x, settings)
		if evalErr != nil {
			return math.NaN(), evalErr
		}
		return d, nil
	})
}
