package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"StockScout/internal/analyzer"
	"StockScout/internal/collector"
	"StockScout/internal/model"
	"StockScout/internal/recorder"
	"StockScout/internal/screener"
	"StockScout/internal/watchlist"
)

type captureNotifier struct {
	subjects []string
	bodies   []string
}

func (c *captureNotifier) Notify(subject, body string) error {
	c.subjects = append(c.subjects, subject)
	c.bodies = append(c.bodies, body)
	return nil
}

func newTestScheduler(t *testing.T) (*Scheduler, *captureNotifier) {
	t.Helper()

	fetcher := &collector.MockFetcher{
		BasePrice: 100,
		Funds: map[string]model.Fundamentals{
			"PLTR": {"revenue_growth": 0.3, "market_cap": 5e9, "profit_margins": 0.15},
			"SNOW": {"revenue_growth": 0.1},
		},
	}
	coll := collector.NewCollector(fetcher, 180)

	path := filepath.Join(t.TempDir(), "watchlist.json")
	state := &watchlist.State{
		Sectors:  map[string][]string{"tech": {"PLTR", "SNOW"}},
		Universe: []string{"PLTR", "SNOW"},
	}
	if err := watchlist.SaveState(path, state); err != nil {
		t.Fatalf("seed watchlist: %v", err)
	}
	wl, err := watchlist.NewManager(path)
	if err != nil {
		t.Fatalf("watchlist: %v", err)
	}

	notif := &captureNotifier{}
	s := NewScheduler(
		context.Background(),
		analyzer.New(coll, analyzer.Options{FetchPerSec: 100}),
		screener.New(coll, wl),
		wl,
		notif,
		recorder.NewNoopRecorder(),
	)
	return s, notif
}

func TestScanTaskNotifies(t *testing.T) {
	s, notif := newTestScheduler(t)

	s.RunScanNow()

	if len(notif.subjects) != 1 || notif.subjects[0] != "Daily Watchlist Scan" {
		t.Fatalf("subjects = %v", notif.subjects)
	}
	if !strings.Contains(notif.bodies[0], "PLTR") {
		t.Errorf("scan digest missing signal ticker:\n%s", notif.bodies[0])
	}
}

func TestCompareTaskNotifiesAndExports(t *testing.T) {
	s, notif := newTestScheduler(t)
	s.ExportDir = filepath.Join(t.TempDir(), "exports")
	s.ExportFormat = "csv"

	s.RunCompareNow()

	if len(notif.subjects) != 1 || notif.subjects[0] != "Weekly Growth Comparison" {
		t.Fatalf("subjects = %v", notif.subjects)
	}
	body := notif.bodies[0]
	if !strings.Contains(body, "PLTR") || !strings.Contains(body, "SNOW") {
		t.Errorf("comparison digest missing tickers:\n%s", body)
	}

	entries, err := os.ReadDir(s.ExportDir)
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".csv") {
		t.Errorf("export dir entries = %v, want one csv", entries)
	}
}

func TestDiscoverTaskPromotesMidCaps(t *testing.T) {
	s, notif := newTestScheduler(t)

	s.RunDiscoverNow()

	// PLTR sits in the 2B-10B band and should now be on the discovered list.
	if len(notif.subjects) != 1 || notif.subjects[0] != "Mid-Cap Discovery" {
		t.Fatalf("subjects = %v", notif.subjects)
	}
	found := false
	for _, tk := range s.Watchlist.Tickers("discovered") {
		if tk == "PLTR" {
			found = true
		}
	}
	if !found {
		t.Errorf("discovered sector = %v, want PLTR", s.Watchlist.Tickers("discovered"))
	}
}

func TestRegisterAllRejectsBadExpression(t *testing.T) {
	s, _ := newTestScheduler(t)
	if err := s.RegisterAll("not a cron", "0 0 9 * * 1", "0 0 9 1 * *"); err == nil {
		t.Error("expected error for malformed cron expression")
	}
}
