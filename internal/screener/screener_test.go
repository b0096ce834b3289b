package screener

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"StockScout/internal/collector"
	"StockScout/internal/model"
	"StockScout/internal/watchlist"
)

func mkSeries(ticker string, closes ...float64) *model.PriceSeries {
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Date: time.Now().AddDate(0, 0, i-len(closes)), Close: c}
	}
	return &model.PriceSeries{Ticker: ticker, Points: points}
}

func newTestScreener(t *testing.T, sectors map[string][]string, universe []string, fetcher *collector.MockFetcher) *Screener {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.json")
	if err := watchlist.SaveState(path, &watchlist.State{Sectors: sectors, Universe: universe}); err != nil {
		t.Fatalf("seed watchlist: %v", err)
	}
	wl, err := watchlist.NewManager(path)
	if err != nil {
		t.Fatalf("watchlist: %v", err)
	}
	return New(collector.NewCollector(fetcher, 180), wl)
}

func TestScanScoresAndRanks(t *testing.T) {
	fetcher := &collector.MockFetcher{
		BasePrice: 100,
		Series: map[string]*model.PriceSeries{
			// Declining, so no momentum points.
			"DOWN": mkSeries("DOWN", 110, 108, 105, 101, 98),
		},
		Funds: map[string]model.Fundamentals{
			"ALL":  {"revenue_growth": 0.35, "market_cap": 5e9, "profit_margins": 0.20},
			"GROW": {"revenue_growth": 0.25, "market_cap": 80e9},
			"DOWN": {"revenue_growth": 0.30},
		},
		Errs: map[string]error{
			"BAD": errors.New("feed offline"),
		},
	}
	s := newTestScreener(t, map[string][]string{
		"tech": {"ALL", "GROW", "DOWN", "FLAT", "BAD"},
	}, nil, fetcher)

	result, err := s.Scan(context.Background(), Options{Sector: "tech"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	// BAD fails to fetch and is skipped before counting.
	if result.Scanned != 4 {
		t.Errorf("Scanned = %d, want 4", result.Scanned)
	}
	// FLAT only earns momentum (20) from the rising mock series and misses
	// the threshold.
	if result.Matched != 3 {
		t.Errorf("Matched = %d, want 3", result.Matched)
	}
	if len(result.Signals) != 3 {
		t.Fatalf("got %d signals, want 3", len(result.Signals))
	}

	wantOrder := []struct {
		ticker string
		score  int
	}{
		{"ALL", 100}, // growth + momentum + sweet spot + margins
		{"GROW", 50}, // growth + momentum, cap too large
		{"DOWN", 30}, // growth only
	}
	for i, want := range wantOrder {
		got := result.Signals[i]
		if got.Ticker != want.ticker || got.Score != want.score {
			t.Errorf("signal[%d] = %s/%d, want %s/%d", i, got.Ticker, got.Score, want.ticker, want.score)
		}
	}

	down := result.Signals[2]
	if len(down.Reasons) != 1 || down.Reasons[0] != "Strong revenue growth" {
		t.Errorf("DOWN reasons = %v, want only the revenue reason", down.Reasons)
	}
	if result.RunID == "" {
		t.Error("expected a run ID")
	}
}

func TestScanCapsReportedSignals(t *testing.T) {
	fetcher := &collector.MockFetcher{
		BasePrice: 50,
		Funds: map[string]model.Fundamentals{
			"AAA": {"revenue_growth": 0.50},
			"BBB": {"revenue_growth": 0.30},
		},
	}
	s := newTestScreener(t, map[string][]string{"tech": {"AAA", "BBB"}}, nil, fetcher)

	result, err := s.Scan(context.Background(), Options{MaxSignals: 1})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Matched != 2 {
		t.Errorf("Matched = %d, want 2 (cap applies after counting)", result.Matched)
	}
	if len(result.Signals) != 1 {
		t.Errorf("got %d signals, want 1", len(result.Signals))
	}
}

func TestScanMarketCapFilter(t *testing.T) {
	fetcher := &collector.MockFetcher{
		BasePrice: 50,
		Funds: map[string]model.Fundamentals{
			"IN":  {"revenue_growth": 0.50, "market_cap": 5e9},
			"OUT": {"revenue_growth": 0.50, "market_cap": 200e9},
			"NA":  {"revenue_growth": 0.50},
		},
	}
	s := newTestScreener(t, map[string][]string{"tech": {"IN", "OUT", "NA"}}, nil, fetcher)

	result, err := s.Scan(context.Background(), Options{MinCap: 1e9, MaxCap: 10e9})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Scanned != 3 {
		t.Errorf("Scanned = %d, want 3", result.Scanned)
	}
	if len(result.Signals) != 1 || result.Signals[0].Ticker != "IN" {
		t.Errorf("signals = %+v, want only IN", result.Signals)
	}
}

func TestScanEmptyWatchlist(t *testing.T) {
	s := newTestScreener(t, map[string][]string{"tech": {"PLTR"}}, nil, &collector.MockFetcher{})
	if _, err := s.Scan(context.Background(), Options{Sector: "energy"}); err == nil {
		t.Error("expected error for unknown sector")
	}
}

func TestScanHonorsContext(t *testing.T) {
	s := newTestScreener(t, map[string][]string{"tech": {"PLTR"}}, nil, &collector.MockFetcher{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Scan(ctx, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDiscoverMidCaps(t *testing.T) {
	fetcher := &collector.MockFetcher{
		BasePrice: 50,
		Funds: map[string]model.Fundamentals{
			"MID1": {"market_cap": 2e9, "revenue_growth": 0.4},  // floor inclusive
			"MID2": {"market_cap": 10e9},                        // ceiling inclusive
			"BIG":  {"market_cap": 60e9},
			"TINY": {"market_cap": 5e8},
		},
		Errs: map[string]error{"GONE": errors.New("delisted")},
	}
	universe := []string{"MID1", "MID2", "BIG", "TINY", "GONE"}
	s := newTestScreener(t, map[string][]string{"tech": {"MID1"}}, universe, fetcher)

	found, err := s.DiscoverMidCaps(context.Background(), 0)
	if err != nil {
		t.Fatalf("DiscoverMidCaps: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("got %d discoveries, want 2: %+v", len(found), found)
	}
	got := map[string]bool{}
	for _, d := range found {
		got[d.Ticker] = true
	}
	if !got["MID1"] || !got["MID2"] {
		t.Errorf("discoveries = %+v, want MID1 and MID2", found)
	}
	for _, d := range found {
		if d.Ticker == "MID1" && d.RevenueGrowth != 0.4 {
			t.Errorf("MID1 revenue growth = %v, want 0.4", d.RevenueGrowth)
		}
	}
}

func TestDiscoverMidCapsLimit(t *testing.T) {
	fetcher := &collector.MockFetcher{
		BasePrice: 50,
		Funds: map[string]model.Fundamentals{
			"AAA": {"market_cap": 3e9},
			"BBB": {"market_cap": 4e9},
			"CCC": {"market_cap": 5e9},
		},
	}
	s := newTestScreener(t, map[string][]string{"tech": {"AAA"}}, []string{"AAA", "BBB", "CCC"}, fetcher)

	found, err := s.DiscoverMidCaps(context.Background(), 2)
	if err != nil {
		t.Fatalf("DiscoverMidCaps: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("got %d discoveries, want limit of 2", len(found))
	}
}
