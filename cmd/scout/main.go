package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"StockScout/internal/analyzer"
	"StockScout/internal/collector"
	"StockScout/internal/config"
	"StockScout/internal/notifier"
	"StockScout/internal/recorder"
	"StockScout/internal/scheduler"
	"StockScout/internal/screener"
	"StockScout/internal/watchlist"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Optional .env for local runs
	_ = godotenv.Load()

	var (
		cfgFlag    = flag.String("config", "", "path to config file (overrides CONFIG_PATH)")
		onceFlag   = flag.String("once", "", "run one task and exit: scan, compare, or discover")
		tickerFlag = flag.String("tickers", "", "comma-separated tickers for an ad-hoc comparison")
	)
	flag.Parse()

	log.Println("[INFO] StockScout starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	if *cfgFlag != "" {
		cfgPath = *cfgFlag
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.Data.Source == "file" {
		fetcher = collector.NewFileFetcher(cfg.Data.FixturesDir)
	} else {
		fetcher = &collector.MockFetcher{}
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.Data.PeriodDays)

	// Init watchlist manager
	wl, err := watchlist.NewManager(cfg.Watchlist.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init watchlist: %v", err)
	}

	// Init analyzer and screener
	an := analyzer.New(col, analyzer.Options{
		MaxConcurrent: cfg.Analyzer.MaxConcurrent,
		FetchPerSec:   cfg.Analyzer.FetchPerSec,
		TopN:          cfg.Analyzer.TopN,
	})
	sc := screener.New(col, wl)

	// Init notifier
	var notif notifier.Notifier
	if cfg.Notify.Channel == "file" {
		fn, err := notifier.NewFileNotifier(cfg.Notify.ReportsDir)
		if err != nil {
			log.Fatalf("[FATAL] init file notifier: %v", err)
		}
		notif = fn
	} else {
		notif = notifier.ConsoleNotifier{}
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ad-hoc comparison: print the digest and exit
	if *tickerFlag != "" {
		result, err := an.Compare(ctx, strings.Split(*tickerFlag, ","))
		if err != nil {
			log.Fatalf("[FATAL] compare: %v", err)
		}
		if err := rec.RecordComparison(result); err != nil {
			log.Printf("[ERROR] record comparison: %v", err)
		}
		fmt.Println(notifier.FormatComparisonDigest(result))
		return
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, an, sc, wl, notif, rec)
	sched.ScanOptions = screener.Options{
		MinScore:   cfg.Scan.MinScore,
		MaxSignals: cfg.Scan.MaxSignals,
		MinCap:     cfg.Scan.MinCap,
		MaxCap:     cfg.Scan.MaxCap,
	}
	sched.DiscoverLimit = cfg.Scan.DiscoverLimit
	sched.ExportDir = cfg.Export.Dir
	sched.ExportFormat = cfg.Export.Format

	// One-shot mode
	if *onceFlag != "" {
		switch *onceFlag {
		case "scan":
			sched.RunScanNow()
		case "compare":
			sched.RunCompareNow()
		case "discover":
			sched.RunDiscoverNow()
		default:
			log.Fatalf("[FATAL] unknown -once task %q (want scan, compare, or discover)", *onceFlag)
		}
		return
	}

	if err := sched.RegisterAll(cfg.Schedule.ScanCron, cfg.Schedule.CompareCron, cfg.Schedule.DiscoverCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing comparison now")
		go sched.RunCompareNow()
	}

	log.Println("[INFO] StockScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockScout stopped")
}
