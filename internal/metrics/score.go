package metrics

import (
	"fmt"

	"StockScout/internal/calculator"
	"StockScout/internal/model"
)

// Normalization bands. Each raw signal is rescaled into [0,1] against its
// band before weighting; values outside the band clamp to the edges.
const (
	weeklyBandLo, weeklyBandHi   = -20.0, 20.0
	monthlyBandLo, monthlyBandHi = -50.0, 50.0
	revenueBandLo, revenueBandHi = -0.5, 1.0
	slopeBandLo, slopeBandHi     = -1.0, 1.0
	volBandLo, volBandHi         = 0.0, 0.1
)

// Component weights, summing to 1.0.
const (
	weightWeekly    = 0.25
	weightMonthly   = 0.25
	weightRevenue   = 0.25
	weightSlope     = 0.15
	weightStability = 0.10
)

// ScoreBreakdown returns the five weighted components behind the composite
// growth score, in fixed order.
func ScoreBreakdown(m *model.Metrics) []model.ScoreComponent {
	return []model.ScoreComponent{
		component("weekly change", m.WeeklyChange,
			calculator.Normalize(m.WeeklyChange, weeklyBandLo, weeklyBandHi),
			weightWeekly,
			fmt.Sprintf("%+.2f%% over 7 sessions", m.WeeklyChange)),
		component("monthly change", m.MonthlyChange,
			calculator.Normalize(m.MonthlyChange, monthlyBandLo, monthlyBandHi),
			weightMonthly,
			fmt.Sprintf("%+.2f%% over 30 sessions", m.MonthlyChange)),
		component("revenue growth", m.RevenueGrowthYoY,
			calculator.Normalize(m.RevenueGrowthYoY, revenueBandLo, revenueBandHi),
			weightRevenue,
			fmt.Sprintf("%+.1f%% YoY", m.RevenueGrowthYoY*100)),
		component("trend slope", m.SixMonthTrendSlope,
			calculator.Normalize(m.SixMonthTrendSlope, slopeBandLo, slopeBandHi),
			weightSlope,
			fmt.Sprintf("%+.4f per session", m.SixMonthTrendSlope)),
		stabilityComponent(m.Volatility),
	}
}

// stabilityComponent rewards calm price action by inverting volatility.
// A volatility <= 0 (zero-sample default or constant series) carries no
// signal either way, so it contributes the neutral 0.5.
func stabilityComponent(vol float64) model.ScoreComponent {
	normalized := 0.5
	commentary := "no measurable volatility"
	if vol > 0 {
		normalized = 1 - calculator.Normalize(vol, volBandLo, volBandHi)
		commentary = fmt.Sprintf("daily return stddev %.4f", vol)
	}
	return component("stability", vol, normalized, weightStability, commentary)
}

func component(name string, value, normalized, weight float64, commentary string) model.ScoreComponent {
	return model.ScoreComponent{
		Name:       name,
		Value:      value,
		Normalized: normalized,
		Weight:     weight,
		Weighted:   normalized * weight,
		Commentary: commentary,
	}
}

// GrowthScore folds the weighted components into a single 0~10 figure,
// rounded to 2 decimals.
func GrowthScore(m *model.Metrics) float64 {
	var total float64
	for _, c := range ScoreBreakdown(m) {
		total += c.Weighted
	}
	return roundTo(total*10, 2)
}
