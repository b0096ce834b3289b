package analyzer

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"StockScout/internal/collector"
	"StockScout/internal/model"
)

func constantSeries(ticker string, n int, price float64) *model.PriceSeries {
	points := make([]model.PricePoint, n)
	for i := range points {
		points[i] = model.PricePoint{Date: time.Now().AddDate(0, 0, i-n), Close: price}
	}
	return &model.PriceSeries{Ticker: ticker, Points: points}
}

func newTestAnalyzer(fetcher *collector.MockFetcher, opts Options) *Analyzer {
	return New(collector.NewCollector(fetcher, 180), opts)
}

func TestAnalyze_BuildsReport(t *testing.T) {
	fetcher := &collector.MockFetcher{
		BasePrice: 100,
		Funds: map[string]model.Fundamentals{
			"PLTR": {
				"company_name":   "Palantir Technologies",
				"sector":         "Technology",
				"revenue_growth": 0.25,
				"market_cap":     55e9,
			},
		},
	}
	a := newTestAnalyzer(fetcher, Options{})

	rep, err := a.Analyze(context.Background(), " pltr ")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rep.Ticker != "PLTR" {
		t.Errorf("Ticker = %q, want normalized PLTR", rep.Ticker)
	}
	if rep.CompanyName != "Palantir Technologies" {
		t.Errorf("CompanyName = %q", rep.CompanyName)
	}
	if rep.RecentTrend != "up" {
		t.Errorf("RecentTrend = %q, want up for the rising mock series", rep.RecentTrend)
	}
	if len(rep.Components) != 5 {
		t.Errorf("got %d components, want 5", len(rep.Components))
	}
	if rep.Metrics.GrowthScore <= 0 {
		t.Errorf("GrowthScore = %v, want > 0", rep.Metrics.GrowthScore)
	}
	if rep.Metrics.MarketCap != 55e9 {
		t.Errorf("MarketCap = %v, want passthrough 55e9", rep.Metrics.MarketCap)
	}
}

func TestCompare_RanksByScore(t *testing.T) {
	// Identical flat price history everywhere, so the ranking is decided
	// entirely by revenue growth.
	fetcher := &collector.MockFetcher{
		Series: map[string]*model.PriceSeries{
			"HIGH": constantSeries("HIGH", 150, 100),
			"MID":  constantSeries("MID", 150, 100),
			"LOW":  constantSeries("LOW", 150, 100),
		},
		Funds: map[string]model.Fundamentals{
			"HIGH": {"revenue_growth": 0.8},
			"MID":  {"revenue_growth": 0.2},
			"LOW":  {},
		},
	}
	a := newTestAnalyzer(fetcher, Options{MaxConcurrent: 2, FetchPerSec: 100})

	result, err := a.Compare(context.Background(), []string{"LOW", "HIGH", "MID"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	wantOrder := []string{"HIGH", "MID", "LOW"}
	if len(result.Reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(result.Reports))
	}
	for i, want := range wantOrder {
		if result.Reports[i].Ticker != want {
			t.Errorf("report[%d] = %s, want %s", i, result.Reports[i].Ticker, want)
		}
	}

	wantScores := []float64{5.92, 4.92, 4.58}
	for i, want := range wantScores {
		got := result.Reports[i].Metrics.GrowthScore
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("score[%d] = %v, want %v", i, got, want)
		}
	}

	if len(result.TopPicks) != 3 {
		t.Fatalf("got %d picks, want 3", len(result.TopPicks))
	}
	for i, pick := range result.TopPicks {
		if pick.Rank != i+1 {
			t.Errorf("pick[%d].Rank = %d, want %d", i, pick.Rank, i+1)
		}
		// Flat series has zero volatility, which carries no risk signal.
		if pick.RiskLabel != "Unknown" {
			t.Errorf("pick[%d].RiskLabel = %q, want Unknown", i, pick.RiskLabel)
		}
		if len(pick.Highlights) != 2 {
			t.Errorf("pick[%d] has %d highlights, want 2", i, len(pick.Highlights))
		}
	}
	if got := result.TopPicks[0].Highlights[0]; got != "revenue growth: +80.0% YoY" {
		t.Errorf("top highlight = %q", got)
	}
}

func TestCompare_TiesKeepRequestedOrder(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]*model.PriceSeries{
			"AAA": constantSeries("AAA", 150, 100),
			"BBB": constantSeries("BBB", 150, 100),
		},
		Funds: map[string]model.Fundamentals{
			"AAA": {"revenue_growth": 0.5},
			"BBB": {"revenue_growth": 0.5},
		},
	}
	a := newTestAnalyzer(fetcher, Options{FetchPerSec: 100})

	result, err := a.Compare(context.Background(), []string{"BBB", "AAA"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.Reports[0].Ticker != "BBB" || result.Reports[1].Ticker != "AAA" {
		t.Errorf("tie order = %s, %s; want requested order BBB, AAA",
			result.Reports[0].Ticker, result.Reports[1].Ticker)
	}
}

func TestCompare_SkipsFailures(t *testing.T) {
	fetcher := &collector.MockFetcher{
		BasePrice: 100,
		Funds: map[string]model.Fundamentals{
			"GOOD": {"revenue_growth": 0.3},
		},
		Errs: map[string]error{
			"BAD": errors.New("feed offline"),
		},
	}
	a := newTestAnalyzer(fetcher, Options{FetchPerSec: 100})

	result, err := a.Compare(context.Background(), []string{"GOOD", "BAD"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(result.Reports) != 1 || result.Reports[0].Ticker != "GOOD" {
		t.Errorf("reports = %+v, want only GOOD", result.Reports)
	}
	reason, ok := result.Skipped["BAD"]
	if !ok || reason == "" {
		t.Errorf("Skipped = %v, want BAD with a reason", result.Skipped)
	}
	if len(result.Requested) != 2 {
		t.Errorf("Requested = %v, want both tickers", result.Requested)
	}
}

func TestCompare_AllFail(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Errs: map[string]error{
			"AAA": errors.New("nope"),
			"BBB": errors.New("nope"),
		},
	}
	a := newTestAnalyzer(fetcher, Options{FetchPerSec: 100})

	if _, err := a.Compare(context.Background(), []string{"AAA", "BBB"}); err == nil {
		t.Error("expected error when every ticker fails")
	}
}

func TestCompare_NoTickers(t *testing.T) {
	a := newTestAnalyzer(&collector.MockFetcher{}, Options{})
	if _, err := a.Compare(context.Background(), []string{" ", ""}); err == nil {
		t.Error("expected error for empty request")
	}
}

func TestCompare_HonorsContext(t *testing.T) {
	a := newTestAnalyzer(&collector.MockFetcher{BasePrice: 100}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Compare(ctx, []string{"PLTR"}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRiskLabel(t *testing.T) {
	tests := []struct {
		vol  float64
		want string
	}{
		{0, "Unknown"},
		{-0.1, "Unknown"},
		{0.005, "Low"},
		{0.0199, "Low"},
		{0.02, "Medium"},
		{0.044, "Medium"},
		{0.045, "High"},
		{0.2, "High"},
	}
	for _, tt := range tests {
		if got := riskLabel(tt.vol); got != tt.want {
			t.Errorf("riskLabel(%v) = %q, want %q", tt.vol, got, tt.want)
		}
	}
}

func TestNormalizeTickers(t *testing.T) {
	got := normalizeTickers([]string{" pltr ", "PLTR", "", "snow", "Pltr"})
	want := []string{"PLTR", "SNOW"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
