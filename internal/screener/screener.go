package screener

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"StockScout/internal/collector"
	"StockScout/internal/model"
	"StockScout/internal/watchlist"
)

// Signal points per rule. A company needs at least one strong rule (or two
// weak ones) to clear the default threshold.
const (
	pointsRevenueGrowth = 30
	pointsMomentum      = 20
	pointsMidCap        = 25
	pointsMargins       = 25

	strongGrowthFloor   = 0.20
	healthyMarginFloor  = 0.10
	sweetSpotCapFloor   = 2e9
	sweetSpotCapCeiling = 50e9

	midCapFloor   = 2e9
	midCapCeiling = 10e9
)

const (
	DefaultMinScore      = 30
	DefaultMaxSignals    = 10
	DefaultDiscoverLimit = 15
)

// Options controls one scan run.
type Options struct {
	Sector     string  // empty scans every sector
	MinScore   int     // keep signals scoring at least this; 0 means default
	MaxSignals int     // cap on reported signals; 0 means default
	MinCap     float64 // when MaxCap > 0, skip companies outside [MinCap, MaxCap]
	MaxCap     float64
}

// Screener scores watchlist companies against fixed buy-signal rules and
// surfaces mid-cap candidates from the wider universe.
type Screener struct {
	collector *collector.Collector
	watchlist *watchlist.Manager
}

func New(coll *collector.Collector, wl *watchlist.Manager) *Screener {
	return &Screener{collector: coll, watchlist: wl}
}

// Scan walks the watchlist, scores each company, and reports the signals
// that clear the threshold, strongest first. Companies that fail to fetch
// are skipped; they never abort the run.
func (s *Screener) Scan(ctx context.Context, opts Options) (*model.ScanResult, error) {
	if opts.MinScore <= 0 {
		opts.MinScore = DefaultMinScore
	}
	if opts.MaxSignals <= 0 {
		opts.MaxSignals = DefaultMaxSignals
	}

	tickers := s.watchlist.Tickers(opts.Sector)
	if len(tickers) == 0 {
		return nil, fmt.Errorf("scan: no watchlist tickers for sector %q", opts.Sector)
	}

	result := &model.ScanResult{
		RunID:       uuid.NewString(),
		Sector:      opts.Sector,
		GeneratedAt: time.Now(),
	}

	var signals []model.ScanSignal
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.collector.Collect(ticker)
		if err != nil {
			log.Printf("[WARN] scan skipping %s: %v", ticker, err)
			continue
		}
		result.Scanned++
		if opts.MaxCap > 0 {
			mcap, ok := data.Fundamentals.Float("market_cap")
			if !ok || mcap < opts.MinCap || mcap > opts.MaxCap {
				continue
			}
		}
		sig := scoreSignal(data)
		if sig.Score >= opts.MinScore {
			signals = append(signals, sig)
		}
	}

	// Matched counts everything over the threshold; the reported list is
	// capped after sorting so the strongest survive.
	result.Matched = len(signals)
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Score > signals[j].Score
	})
	if len(signals) > opts.MaxSignals {
		signals = signals[:opts.MaxSignals]
	}
	result.Signals = signals

	log.Printf("[INFO] scan %s: %d scanned, %d matched", result.RunID, result.Scanned, result.Matched)
	return result, nil
}

// DiscoverMidCaps walks the discovery universe and returns companies with a
// market cap between 2B and 10B, up to limit. Fetch failures skip the
// ticker.
func (s *Screener) DiscoverMidCaps(ctx context.Context, limit int) ([]model.Discovery, error) {
	if limit <= 0 {
		limit = DefaultDiscoverLimit
	}

	var found []model.Discovery
	for _, ticker := range s.watchlist.Universe() {
		if len(found) >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.collector.Collect(ticker)
		if err != nil {
			log.Printf("[WARN] discovery skipping %s: %v", ticker, err)
			continue
		}
		mcap, ok := data.Fundamentals.Float("market_cap")
		if !ok || mcap < midCapFloor || mcap > midCapCeiling {
			continue
		}
		growth, _ := data.Fundamentals.Float("revenue_growth")
		found = append(found, model.Discovery{
			Ticker:        data.Ticker,
			CompanyName:   data.CompanyName,
			Sector:        data.Sector,
			MarketCap:     mcap,
			RevenueGrowth: growth,
		})
	}
	return found, nil
}

func scoreSignal(data *model.StockData) model.ScanSignal {
	sig := model.ScanSignal{
		Ticker:      data.Ticker,
		CompanyName: data.CompanyName,
		Sector:      data.Sector,
		Price:       data.CurrentPrice,
	}

	if growth, ok := data.Fundamentals.Float("revenue_growth"); ok && growth > strongGrowthFloor {
		sig.Score += pointsRevenueGrowth
		sig.Reasons = append(sig.Reasons, "Strong revenue growth")
	}
	if data.RecentTrend == "up" {
		sig.Score += pointsMomentum
		sig.Reasons = append(sig.Reasons, "Positive price momentum")
	}
	if mcap, ok := data.Fundamentals.Float("market_cap"); ok && mcap > sweetSpotCapFloor && mcap < sweetSpotCapCeiling {
		sig.Score += pointsMidCap
		sig.Reasons = append(sig.Reasons, "Mid-cap sweet spot")
	}
	if margins, ok := data.Fundamentals.Float("profit_margins"); ok && margins > healthyMarginFloor {
		sig.Score += pointsMargins
		sig.Reasons = append(sig.Reasons, "Healthy profit margins")
	}
	return sig
}
