package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockScout/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc reads don't block scheduled writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS comparison_runs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			requested INTEGER,
			analyzed  INTEGER,
			skipped   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comparison_ts ON comparison_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS company_metrics (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			timestamp      INTEGER NOT NULL,
			rank           INTEGER,
			ticker         TEXT NOT NULL,
			company_name   TEXT,
			sector         TEXT,
			weekly_change  REAL,
			monthly_change REAL,
			trend_slope    REAL,
			volatility     REAL,
			revenue_growth REAL,
			market_cap     REAL,
			avg_volume     REAL,
			growth_score   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_run ON company_metrics(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_ticker ON company_metrics(ticker)`,

		`CREATE TABLE IF NOT EXISTS scan_runs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			sector    TEXT,
			scanned   INTEGER,
			matched   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS scan_signals (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			ticker    TEXT NOT NULL,
			sector    TEXT,
			price     REAL,
			score     INTEGER,
			reasons   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_run ON scan_signals(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordComparison(result *model.ComparisonResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	_, err := r.db.Exec(`INSERT INTO comparison_runs
		(run_id, timestamp, requested, analyzed, skipped)
		VALUES (?,?,?,?,?)`,
		result.RunID, now, len(result.Requested), len(result.Reports), len(result.Skipped),
	)
	if err != nil {
		return err
	}

	for i, rep := range result.Reports {
		m := rep.Metrics
		_, err := r.db.Exec(`INSERT INTO company_metrics
			(run_id, timestamp, rank, ticker, company_name, sector,
			 weekly_change, monthly_change, trend_slope, volatility,
			 revenue_growth, market_cap, avg_volume, growth_score)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			result.RunID, now, i+1, rep.Ticker, rep.CompanyName, rep.Sector,
			m.WeeklyChange, m.MonthlyChange, m.SixMonthTrendSlope, m.Volatility,
			m.RevenueGrowthYoY, m.MarketCap, m.AvgVolume30d, m.GrowthScore,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(result *model.ScanResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	_, err := r.db.Exec(`INSERT INTO scan_runs
		(run_id, timestamp, sector, scanned, matched)
		VALUES (?,?,?,?,?)`,
		result.RunID, now, result.Sector, result.Scanned, result.Matched,
	)
	if err != nil {
		return err
	}

	for _, sig := range result.Signals {
		_, err := r.db.Exec(`INSERT INTO scan_signals
			(run_id, timestamp, ticker, sector, price, score, reasons)
			VALUES (?,?,?,?,?,?,?)`,
			result.RunID, now, sig.Ticker, sig.Sector, sig.Price, sig.Score,
			strings.Join(sig.Reasons, "; "),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
