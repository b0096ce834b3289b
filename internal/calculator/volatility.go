package calculator

import (
	"errors"
	"math"
)

// CalculateVolatility returns the standard deviation of consecutive simple
// returns (p[i]-p[i-1])/p[i-1]. Requires at least 2 closes. With a single
// return no dispersion is measurable and the result is 0; otherwise the
// sample (n-1) estimator is used.
func CalculateVolatility(closes []float64) (float64, error) {
	if len(closes) < 2 {
		return 0, errors.New("not enough data for volatility calculation")
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev <= 0 {
			return 0, errors.New("non-positive price in series")
		}
		r := (closes[i] - prev) / prev
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, errors.New("return is not finite")
		}
		returns = append(returns, r)
	}
	if len(returns) == 1 {
		return 0, nil
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var sumSq float64
	for _, r := range returns {
		d := r - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(returns)-1))
	if math.IsNaN(std) || math.IsInf(std, 0) {
		return 0, errors.New("volatility is not finite")
	}
	return std, nil
}
