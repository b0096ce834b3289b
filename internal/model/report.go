package model

import "time"

// CompanyReport is the analyzed snapshot of one ticker.
type CompanyReport struct {
	Ticker      string
	CompanyName string
	Sector      string
	RecentTrend string
	Metrics     Metrics
	Components  []ScoreComponent
	GeneratedAt time.Time
}

// RankedCompany is one entry of a comparison's top picks.
type RankedCompany struct {
	Rank        int
	Ticker      string
	CompanyName string
	GrowthScore float64
	RiskLabel   string
	Highlights  []string
}

// ComparisonResult is the outcome of a multi-company comparison run.
// Reports are ordered by growth score, best first.
type ComparisonResult struct {
	RunID       string
	Requested   []string
	Reports     []CompanyReport
	TopPicks    []RankedCompany
	Skipped     map[string]string // ticker -> reason
	GeneratedAt time.Time
}

// ScanSignal is one company that cleared the scan threshold.
type ScanSignal struct {
	Ticker      string
	CompanyName string
	Sector      string
	Price       float64
	Score       int
	Reasons     []string
}

// ScanResult is the outcome of a watchlist scan.
type ScanResult struct {
	RunID       string
	Sector      string // empty means all sectors
	Scanned     int
	Matched     int
	Signals     []ScanSignal
	GeneratedAt time.Time
}

// Discovery is a mid-cap candidate surfaced by the discovery task.
type Discovery struct {
	Ticker        string
	CompanyName   string
	Sector        string
	MarketCap     float64
	RevenueGrowth float64
}

// ChartSeries is one labeled value series prepared for charting or export.
type ChartSeries struct {
	Metric string
	Title  string
	YLabel string
	Labels []string
	Values []float64
}
