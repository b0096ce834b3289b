package calculator

import (
	"errors"
	"math"
)

// CalculateTrendSlope fits an ordinary least squares line through the last
// `window` closes (x = 0..window-1) and returns its slope in price units
// per sample.
func CalculateTrendSlope(closes []float64, window int) (float64, error) {
	if window < 2 {
		return 0, errors.New("window must be at least 2")
	}
	if len(closes) < window {
		return 0, errors.New("not enough data for trend slope calculation")
	}
	ys := closes[len(closes)-window:]

	// With x fixed at 0..n-1 the denominator is never zero for n >= 2.
	n := float64(window)
	xMean := (n - 1) / 2
	var yMean float64
	for _, y := range ys {
		yMean += y
	}
	yMean /= n

	var num, den float64
	for i, y := range ys {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	slope := num / den
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0, errors.New("slope is not finite")
	}
	return slope, nil
}

// CalculateSixMonthTrendSlope returns the OLS slope over the last 120
// daily closes, roughly six months of trading days.
func CalculateSixMonthTrendSlope(closes []float64) (float64, error) {
	return CalculateTrendSlope(closes, 120)
}
