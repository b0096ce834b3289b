package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		Source      string `yaml:"source"`       // "file" or "mock"
		FixturesDir string `yaml:"fixtures_dir"` // per-ticker csv/json files for the file source
		PeriodDays  int    `yaml:"period_days"`
	} `yaml:"data"`
	Watchlist struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"watchlist"`
	Analyzer struct {
		MaxConcurrent int `yaml:"max_concurrent"`
		FetchPerSec   int `yaml:"fetch_per_sec"`
		TopN          int `yaml:"top_n"`
	} `yaml:"analyzer"`
	Scan struct {
		MinScore      int     `yaml:"min_score"`
		MaxSignals    int     `yaml:"max_signals"`
		DiscoverLimit int     `yaml:"discover_limit"`
		MinCap        float64 `yaml:"min_cap"` // optional market-cap filter, 0 disables
		MaxCap        float64 `yaml:"max_cap"`
	} `yaml:"scan"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Export struct {
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"` // "csv", "excel", or "both"
	} `yaml:"export"`
	Schedule struct {
		ScanCron     string `yaml:"scan_cron"`
		CompareCron  string `yaml:"compare_cron"`
		DiscoverCron string `yaml:"discover_cron"`
	} `yaml:"schedule"`
	Notify struct {
		Channel    string `yaml:"channel"` // "console" or "file"
		ReportsDir string `yaml:"reports_dir"`
	} `yaml:"notify"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv("FIXTURES_DIR"); v != "" {
		cfg.Data.FixturesDir = v
	}
	if v := os.Getenv("PERIOD_DAYS"); v != "" {
		var days int
		if _, err := fmt.Sscanf(v, "%d", &days); err == nil {
			cfg.Data.PeriodDays = days
		}
	}
	if v := os.Getenv("WATCHLIST_FILE"); v != "" {
		cfg.Watchlist.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("EXPORT_FORMAT"); v != "" {
		cfg.Export.Format = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("COMPARE_CRON"); v != "" {
		cfg.Schedule.CompareCron = v
	}
	if v := os.Getenv("DISCOVER_CRON"); v != "" {
		cfg.Schedule.DiscoverCron = v
	}
	if v := os.Getenv("NOTIFY_CHANNEL"); v != "" {
		cfg.Notify.Channel = v
	}

	// Defaults
	if cfg.Data.Source == "" {
		cfg.Data.Source = "mock"
	}
	if cfg.Data.FixturesDir == "" {
		cfg.Data.FixturesDir = "data/fixtures"
	}
	if cfg.Data.PeriodDays == 0 {
		cfg.Data.PeriodDays = 180
	}
	if cfg.Watchlist.StateFile == "" {
		cfg.Watchlist.StateFile = "data/watchlist.json"
	}
	if cfg.Analyzer.MaxConcurrent == 0 {
		cfg.Analyzer.MaxConcurrent = 4
	}
	if cfg.Analyzer.FetchPerSec == 0 {
		cfg.Analyzer.FetchPerSec = 4
	}
	if cfg.Analyzer.TopN == 0 {
		cfg.Analyzer.TopN = 3
	}
	if cfg.Scan.MinScore == 0 {
		cfg.Scan.MinScore = 30
	}
	if cfg.Scan.MaxSignals == 0 {
		cfg.Scan.MaxSignals = 10
	}
	if cfg.Scan.DiscoverLimit == 0 {
		cfg.Scan.DiscoverLimit = 15
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockscout.db"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "data/exports"
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = "csv"
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 17 * * 1-5"
	}
	if cfg.Schedule.CompareCron == "" {
		cfg.Schedule.CompareCron = "0 0 8 * * 1"
	}
	if cfg.Schedule.DiscoverCron == "" {
		cfg.Schedule.DiscoverCron = "0 0 9 1 * *"
	}
	if cfg.Notify.Channel == "" {
		cfg.Notify.Channel = "console"
	}
	if cfg.Notify.ReportsDir == "" {
		cfg.Notify.ReportsDir = "data/reports"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Data.Source != "file" && c.Data.Source != "mock" {
		return fmt.Errorf("data.source must be \"file\" or \"mock\", got %q", c.Data.Source)
	}
	if c.Data.Source == "file" && c.Data.FixturesDir == "" {
		return fmt.Errorf("data.fixtures_dir is required for the file source")
	}
	if c.Data.PeriodDays <= 0 {
		return fmt.Errorf("data.period_days must be positive")
	}
	if c.Analyzer.MaxConcurrent <= 0 {
		return fmt.Errorf("analyzer.max_concurrent must be positive")
	}
	if c.Analyzer.FetchPerSec <= 0 {
		return fmt.Errorf("analyzer.fetch_per_sec must be positive")
	}
	if c.Analyzer.TopN <= 0 {
		return fmt.Errorf("analyzer.top_n must be positive")
	}
	if c.Scan.MinScore <= 0 {
		return fmt.Errorf("scan.min_score must be positive")
	}
	if c.Scan.MaxSignals <= 0 {
		return fmt.Errorf("scan.max_signals must be positive")
	}
	if c.Scan.DiscoverLimit <= 0 {
		return fmt.Errorf("scan.discover_limit must be positive")
	}
	if c.Scan.MaxCap > 0 && c.Scan.MaxCap < c.Scan.MinCap {
		return fmt.Errorf("scan.max_cap must not be below scan.min_cap")
	}
	switch c.Export.Format {
	case "csv", "excel", "both":
	default:
		return fmt.Errorf("export.format must be \"csv\", \"excel\", or \"both\", got %q", c.Export.Format)
	}
	switch c.Notify.Channel {
	case "console", "file":
	default:
		return fmt.Errorf("notify.channel must be \"console\" or \"file\", got %q", c.Notify.Channel)
	}
	if c.Notify.Channel == "file" && c.Notify.ReportsDir == "" {
		return fmt.Errorf("notify.reports_dir is required for the file channel")
	}
	if c.Schedule.ScanCron == "" || c.Schedule.CompareCron == "" || c.Schedule.DiscoverCron == "" {
		return fmt.Errorf("schedule crons must not be empty")
	}
	return nil
}
