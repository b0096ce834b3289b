package metrics

import (
	"math"

	"StockScout/internal/calculator"
	"StockScout/internal/model"
)

// Compute derives the full metrics record for one company. It never fails:
// each statistic sits behind its own fault boundary, so short series,
// malformed prices, and missing or non-numeric fundamentals degrade that
// statistic to its zero default without touching the others.
//
// Compute is pure. Concurrent callers with independent inputs need no
// coordination.
func Compute(series *model.PriceSeries, funds model.Fundamentals) model.Metrics {
	var m model.Metrics

	if series.Len() > 0 {
		closes := series.Closes()
		if v, err := calculator.CalculateWeeklyChange(closes); err == nil {
			m.WeeklyChange = roundTo(v, 2)
		}
		if v, err := calculator.CalculateMonthlyChange(closes); err == nil {
			m.MonthlyChange = roundTo(v, 2)
		}
		if v, err := calculator.CalculateSixMonthTrendSlope(closes); err == nil {
			m.SixMonthTrendSlope = roundTo(v, 4)
		}
		if v, err := calculator.CalculateVolatility(closes); err == nil {
			m.Volatility = roundTo(v, 4)
		}
	}

	if v, ok := funds.Float("revenue_growth"); ok {
		m.RevenueGrowthYoY = roundTo(v, 4)
	}
	// Cap and volume pass through unrounded.
	if v, ok := funds.Float("market_cap"); ok {
		m.MarketCap = v
	}
	if v, ok := funds.Float("avg_volume"); ok {
		m.AvgVolume30d = v
	}

	// The composite score always comes last: it reads the merged,
	// already-rounded statistics above.
	m.GrowthScore = GrowthScore(&m)
	return m
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
