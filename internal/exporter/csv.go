package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"StockScout/internal/model"
)

var csvHeader = []string{
	"rank", "ticker", "company_name", "sector",
	"growth_score", "weekly_change", "monthly_change", "six_month_trend_slope",
	"volatility", "revenue_growth_yoy", "market_cap", "avg_volume_30d",
}

// WriteComparisonCSV writes the ranked comparison table to a CSV file,
// one row per analyzed company.
func WriteComparisonCSV(path string, result *model.ComparisonResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for i, rep := range result.Reports {
		m := rep.Metrics
		rec := []string{
			strconv.Itoa(i + 1),
			rep.Ticker,
			rep.CompanyName,
			rep.Sector,
			formatFloat(m.GrowthScore),
			formatFloat(m.WeeklyChange),
			formatFloat(m.MonthlyChange),
			formatFloat(m.SixMonthTrendSlope),
			formatFloat(m.Volatility),
			formatFloat(m.RevenueGrowthYoY),
			formatFloat(m.MarketCap),
			formatFloat(m.AvgVolume30d),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
