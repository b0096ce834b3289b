package calculator

import (
	"errors"
	"math"
)

// CalculateChange computes the percentage change between the last close and
// the close `lookback` samples back (inclusive of the last sample).
func CalculateChange(closes []float64, lookback int) (float64, error) {
	if lookback <= 1 {
		return 0, errors.New("lookback must be greater than 1")
	}
	if len(closes) < lookback {
		return 0, errors.New("not enough data for change calculation")
	}
	base := closes[len(closes)-lookback]
	if base <= 0 {
		return 0, errors.New("non-positive base price")
	}
	change := (closes[len(closes)-1] - base) / base * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return 0, errors.New("change is not finite")
	}
	return change, nil
}

// CalculateWeeklyChange returns the change over the last 7 daily closes.
func CalculateWeeklyChange(closes []float64) (float64, error) {
	return CalculateChange(closes, 7)
}

// CalculateMonthlyChange returns the change over the last 30 daily closes.
func CalculateMonthlyChange(closes []float64) (float64, error) {
	return CalculateChange(closes, 30)
}
