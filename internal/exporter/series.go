package exporter

import (
	"fmt"

	"StockScout/internal/model"
)

type seriesDef struct {
	metric string
	title  string
	ylabel string
	value  func(m model.Metrics) float64
}

// seriesDefs maps metric keys to their chart presentation. Market caps are
// shown in billions and revenue growth as a percentage.
var seriesDefs = []seriesDef{
	{"market_cap", "Market Cap Comparison", "Market Cap (Billions USD)", func(m model.Metrics) float64 {
		if m.MarketCap > 0 {
			return m.MarketCap / 1e9
		}
		return 0
	}},
	{"monthly_change", "Monthly Price Change (%)", "Change (%)", func(m model.Metrics) float64 { return m.MonthlyChange }},
	{"revenue_growth_yoy", "Revenue Growth Year-over-Year", "Growth (%)", func(m model.Metrics) float64 { return m.RevenueGrowthYoY * 100 }},
	{"growth_score", "Growth Score Comparison", "Score (0-10)", func(m model.Metrics) float64 { return m.GrowthScore }},
	{"weekly_change", "Weekly Price Change (%)", "Change (%)", func(m model.Metrics) float64 { return m.WeeklyChange }},
	{"six_month_trend_slope", "Six-Month Trend Slope", "Slope ($/session)", func(m model.Metrics) float64 { return m.SixMonthTrendSlope }},
	{"volatility", "Daily Return Volatility", "Std Dev", func(m model.Metrics) float64 { return m.Volatility }},
	{"avg_volume_30d", "Average Daily Volume (30d)", "Shares", func(m model.Metrics) float64 { return m.AvgVolume30d }},
}

// BuildComparisonSeries prepares the standard chart series for a comparison:
// market cap, monthly change, revenue growth, and growth score, with tickers
// as labels. The market-cap series is dropped when no company reported one.
func BuildComparisonSeries(reports []model.CompanyReport) []model.ChartSeries {
	if len(reports) == 0 {
		return nil
	}

	var series []model.ChartSeries
	for _, def := range seriesDefs[:4] {
		s := buildSeries(reports, def)
		if def.metric == "market_cap" && allZero(s.Values) {
			continue
		}
		series = append(series, s)
	}
	return series
}

// BuildMetricSeries extracts a single metric across reports by key.
func BuildMetricSeries(reports []model.CompanyReport, metric string) (model.ChartSeries, error) {
	for _, def := range seriesDefs {
		if def.metric == metric {
			return buildSeries(reports, def), nil
		}
	}
	return model.ChartSeries{}, fmt.Errorf("unknown metric %q", metric)
}

func buildSeries(reports []model.CompanyReport, def seriesDef) model.ChartSeries {
	labels := make([]string, len(reports))
	values := make([]float64, len(reports))
	for i, rep := range reports {
		labels[i] = rep.Ticker
		values[i] = def.value(rep.Metrics)
	}
	return model.ChartSeries{
		Metric: def.metric,
		Title:  def.title,
		YLabel: def.ylabel,
		Labels: labels,
		Values: values,
	}
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}
