package scheduler

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"StockScout/internal/analyzer"
	"StockScout/internal/exporter"
	"StockScout/internal/model"
	"StockScout/internal/notifier"
	"StockScout/internal/recorder"
	"StockScout/internal/screener"
	"StockScout/internal/watchlist"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  *analyzer.Analyzer
	Screener  *screener.Screener
	Watchlist *watchlist.Manager
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Ctx       context.Context

	// Task tuning, set from config before Start.
	ScanOptions   screener.Options
	DiscoverLimit int
	ExportDir     string
	ExportFormat  string // "csv", "excel", or "both"
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an *analyzer.Analyzer, sc *screener.Screener, wl *watchlist.Manager, n notifier.Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  an,
		Screener:  sc,
		Watchlist: wl,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterAll registers the scan, comparison, and discovery tasks.
func (s *Scheduler) RegisterAll(scanCron, compareCron, discoverCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(compareCron, s.compareTask); err != nil {
		return fmt.Errorf("register compare task: %w", err)
	}
	if _, err := s.Cron.AddFunc(discoverCron, s.discoverTask); err != nil {
		return fmt.Errorf("register discover task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger).
func (s *Scheduler) RunScanNow() { s.scanTask() }

// RunCompareNow executes the comparison task immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunCompareNow() { s.compareTask() }

// RunDiscoverNow executes the discovery task immediately (manual trigger).
func (s *Scheduler) RunDiscoverNow() { s.discoverTask() }

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running watchlist scan")
	result, err := s.Screener.Scan(s.Ctx, s.ScanOptions)
	if err != nil {
		log.Printf("[ERROR] scan: %v", err)
		s.tryNotify("StockScout Scan Failed", fmt.Sprintf("scan error: %v", err))
		return
	}

	s.tryNotify("Daily Watchlist Scan", notifier.FormatScanDigest(result))

	if err := s.Recorder.RecordScan(result); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}
}

func (s *Scheduler) compareTask() {
	log.Println("[INFO] running watchlist comparison")
	tickers := s.Watchlist.Tickers("")
	result, err := s.Analyzer.Compare(s.Ctx, tickers)
	if err != nil {
		log.Printf("[ERROR] compare: %v", err)
		s.tryNotify("StockScout Comparison Failed", fmt.Sprintf("compare error: %v", err))
		return
	}

	s.tryNotify("Weekly Growth Comparison", notifier.FormatComparisonDigest(result))

	if err := s.Recorder.RecordComparison(result); err != nil {
		log.Printf("[ERROR] record comparison: %v", err)
	}
	s.export(result)
}

func (s *Scheduler) discoverTask() {
	log.Println("[INFO] running mid-cap discovery")
	found, err := s.Screener.DiscoverMidCaps(s.Ctx, s.DiscoverLimit)
	if err != nil {
		log.Printf("[ERROR] discover: %v", err)
		return
	}

	// Promote discoveries into the scanned watchlist so future scans
	// cover them.
	tickers := make([]string, len(found))
	for i, d := range found {
		tickers[i] = d.Ticker
	}
	added := s.Watchlist.Add("discovered", tickers...)

	s.tryNotify("Mid-Cap Discovery", notifier.FormatDiscoveryDigest(found, added))
}

func (s *Scheduler) export(result *model.ComparisonResult) {
	if s.ExportDir == "" {
		return
	}
	stamp := time.Now().Format("20060102")

	if s.ExportFormat == "csv" || s.ExportFormat == "both" {
		path := filepath.Join(s.ExportDir, fmt.Sprintf("comparison-%s.csv", stamp))
		if err := exporter.WriteComparisonCSV(path, result); err != nil {
			log.Printf("[ERROR] export csv: %v", err)
		} else {
			log.Printf("[INFO] exported %s", path)
		}
	}
	if s.ExportFormat == "excel" || s.ExportFormat == "both" {
		path := filepath.Join(s.ExportDir, fmt.Sprintf("comparison-%s.xlsx", stamp))
		if err := exporter.WriteComparisonWorkbook(path, result); err != nil {
			log.Printf("[ERROR] export workbook: %v", err)
		} else {
			log.Printf("[INFO] exported %s", path)
		}
	}
}

func (s *Scheduler) tryNotify(subject, body string) {
	if err := s.Notifier.Notify(subject, body); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
