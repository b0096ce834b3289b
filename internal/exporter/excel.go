package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"StockScout/internal/model"
)

const (
	rankingSheet = "Ranking"
	metricsSheet = "Metrics"
	chartsSheet  = "Charts"
)

// WriteComparisonWorkbook writes the comparison as an Excel workbook with a
// ranking sheet, the full metrics table, and a bar chart per chart series.
func WriteComparisonWorkbook(path string, result *model.ComparisonResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return err
	}
	setRow(f, rankingSheet, 1, []any{"Rank", "Ticker", "Company", "Growth Score", "Risk", "Highlights"})
	for i, pick := range result.TopPicks {
		setRow(f, rankingSheet, i+2, []any{
			pick.Rank, pick.Ticker, pick.CompanyName, pick.GrowthScore,
			pick.RiskLabel, strings.Join(pick.Highlights, "; "),
		})
	}

	if _, err := f.NewSheet(metricsSheet); err != nil {
		return err
	}
	setRow(f, metricsSheet, 1, []any{
		"Rank", "Ticker", "Company", "Sector", "Growth Score", "Weekly %", "Monthly %",
		"Trend Slope", "Volatility", "Revenue Growth YoY", "Market Cap", "Avg Volume (30d)",
	})
	for i, rep := range result.Reports {
		m := rep.Metrics
		setRow(f, metricsSheet, i+2, []any{
			i + 1, rep.Ticker, rep.CompanyName, rep.Sector, m.GrowthScore,
			m.WeeklyChange, m.MonthlyChange, m.SixMonthTrendSlope, m.Volatility,
			m.RevenueGrowthYoY, m.MarketCap, m.AvgVolume30d,
		})
	}

	if err := writeCharts(f, result.Reports); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeCharts lays each series out as a label/value column pair and anchors
// one bar chart per series beneath the data block.
func writeCharts(f *excelize.File, reports []model.CompanyReport) error {
	if _, err := f.NewSheet(chartsSheet); err != nil {
		return err
	}

	series := BuildComparisonSeries(reports)
	dataRows := len(reports) + 1

	for k, s := range series {
		labelCol, err := excelize.ColumnNumberToName(k*2 + 1)
		if err != nil {
			return err
		}
		valueCol, err := excelize.ColumnNumberToName(k*2 + 2)
		if err != nil {
			return err
		}

		f.SetCellValue(chartsSheet, labelCol+"1", s.Title)
		for i := range s.Labels {
			f.SetCellValue(chartsSheet, fmt.Sprintf("%s%d", labelCol, i+2), s.Labels[i])
			f.SetCellValue(chartsSheet, fmt.Sprintf("%s%d", valueCol, i+2), s.Values[i])
		}

		anchor, err := excelize.CoordinatesToCellName(1+k*8, dataRows+2)
		if err != nil {
			return err
		}
		chart := &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$%s$1", chartsSheet, labelCol),
				Categories: fmt.Sprintf("%s!$%s$2:$%s$%d", chartsSheet, labelCol, labelCol, len(s.Labels)+1),
				Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", chartsSheet, valueCol, valueCol, len(s.Labels)+1),
			}},
			Title: []excelize.RichTextRun{{Text: s.Title}},
			YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: s.YLabel}}},
		}
		if err := f.AddChart(chartsSheet, anchor, chart); err != nil {
			return fmt.Errorf("add %s chart: %w", s.Metric, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		f.SetCellValue(sheet, cell, v)
	}
}
