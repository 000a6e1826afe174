package univariate

import (
	"math"
	"math/rand/v2"
)

// maxStartRange bounds the number of integers a random start is drawn from.
const maxStartRange = 1 << 52

// validate checks the settings that do not depend on the start.
func (s *Settings) validate() error {
	if s.CommonSettings == nil {
		return &ConfigError{Setting: "CommonSettings", Reason: "is nil"}
	}
	if s.ToleranceSettings == nil {
		return &ConfigError{Setting: "ToleranceSettings", Reason: "is nil"}
	}
	if math.IsNaN(s.FunAbsTol) {
		return &ConfigError{Setting: "FunAbsTol", Reason: "is not set"}
	}
	if s.LocCycleTol > 0 && s.LocCycleWindow < 1 {
		return &ConfigError{Setting: "LocCycleWindow", Reason: "must be positive when LocCycleTol is set"}
	}
	if math.IsInf(s.XMin, 0) || math.IsInf(s.XMax, 0) || math.IsInf(s.XInit, 0) {
		return &ConfigError{Setting: "XMin, XMax and XInit", Reason: "must be finite"}
	}
	if !math.IsNaN(s.XMin) && !math.IsNaN(s.XMax) && s.XMin >= s.XMax {
		return &ConfigError{Setting: "XMin", Reason: "must be less than XMax"}
	}
	return nil
}

// start validates the settings and returns the initial iterate. Without an
// XInit, an integer is drawn uniformly from the bounds inclusive.
func (s *Settings) start() (float64, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	if !math.IsNaN(s.XInit) {
		return s.XInit, nil
	}
	if math.IsNaN(s.XMin) || math.IsNaN(s.XMax) {
		return 0, &ConfigError{Setting: "XInit", Reason: "is not set and XMin and XMax are not both set"}
	}

	lo := math.Ceil(s.XMin)
	hi := math.Floor(s.XMax)
	if lo > hi {
		return 0, &ConfigError{Setting: "XMin and XMax", Reason: "contain no integer to start from"}
	}
	if hi-lo >= maxStartRange {
		return 0, &ConfigError{Setting: "XMin and XMax", Reason: "span too many integers to start from"}
	}
	n := int64(hi-lo) + 1
	var k int64
	if s.Rand != nil {
		k = s.Rand.Int64N(n)
	} else {
		k = rand.Int64N(n)
	}
	return lo + float64(k), nil
}
