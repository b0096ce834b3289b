package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"StockScout/internal/collector"
	"StockScout/internal/metrics"
	"StockScout/internal/model"
)

const (
	DefaultMaxConcurrent = 4
	DefaultFetchPerSec   = 4
	DefaultTopN          = 3
)

// Options tunes batch analysis.
type Options struct {
	MaxConcurrent int // parallel per-company analyses
	FetchPerSec   int // upstream fetch pacing
	TopN          int // ranked picks per comparison
}

// Analyzer turns collected snapshots into scored company reports and ranks
// batches of them.
type Analyzer struct {
	collector     *collector.Collector
	limiter       *rate.Limiter
	maxConcurrent int
	topN          int
}

func New(coll *collector.Collector, opts Options) *Analyzer {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.FetchPerSec <= 0 {
		opts.FetchPerSec = DefaultFetchPerSec
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	return &Analyzer{
		collector:     coll,
		limiter:       rate.NewLimiter(rate.Limit(opts.FetchPerSec), opts.FetchPerSec),
		maxConcurrent: opts.MaxConcurrent,
		topN:          opts.TopN,
	}
}

// Analyze collects one company and computes its full metrics report.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (*model.CompanyReport, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	data, err := a.collector.Collect(ticker)
	if err != nil {
		return nil, err
	}

	m := metrics.Compute(data.Series, data.Fundamentals)
	return &model.CompanyReport{
		Ticker:      data.Ticker,
		CompanyName: data.CompanyName,
		Sector:      data.Sector,
		RecentTrend: data.RecentTrend,
		Metrics:     m,
		Components:  metrics.ScoreBreakdown(&m),
		GeneratedAt: time.Now(),
	}, nil
}

// Compare analyzes a batch of tickers in parallel and ranks them by growth
// score, best first. A ticker that fails is reported in Skipped and never
// aborts the batch; ties keep the requested order.
func (a *Analyzer) Compare(ctx context.Context, tickers []string) (*model.ComparisonResult, error) {
	requested := normalizeTickers(tickers)
	if len(requested) == 0 {
		return nil, errors.New("compare: no tickers requested")
	}

	reports := make([]*model.CompanyReport, len(requested))
	skipped := make(map[string]string)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrent)
	for i, ticker := range requested {
		g.Go(func() error {
			rep, err := a.Analyze(gctx, ticker)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				log.Printf("[WARN] compare skipping %s: %v", ticker, err)
				mu.Lock()
				skipped[ticker] = err.Error()
				mu.Unlock()
				return nil
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ordered := make([]model.CompanyReport, 0, len(requested))
	for _, rep := range reports {
		if rep != nil {
			ordered = append(ordered, *rep)
		}
	}
	if len(ordered) == 0 {
		return nil, fmt.Errorf("compare: all %d tickers failed", len(requested))
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Metrics.GrowthScore > ordered[j].Metrics.GrowthScore
	})

	result := &model.ComparisonResult{
		RunID:       uuid.NewString(),
		Requested:   requested,
		Reports:     ordered,
		TopPicks:    topPicks(ordered, a.topN),
		Skipped:     skipped,
		GeneratedAt: time.Now(),
	}
	log.Printf("[INFO] compare %s: %d analyzed, %d skipped", result.RunID, len(ordered), len(skipped))
	return result, nil
}

func topPicks(reports []model.CompanyReport, n int) []model.RankedCompany {
	if n > len(reports) {
		n = len(reports)
	}
	picks := make([]model.RankedCompany, 0, n)
	for i := 0; i < n; i++ {
		rep := reports[i]
		picks = append(picks, model.RankedCompany{
			Rank:        i + 1,
			Ticker:      rep.Ticker,
			CompanyName: rep.CompanyName,
			GrowthScore: rep.Metrics.GrowthScore,
			RiskLabel:   riskLabel(rep.Metrics.Volatility),
			Highlights:  highlights(rep.Components),
		})
	}
	return picks
}

// riskBands maps daily-return volatility to a coarse label, calmest first.
var riskBands = []struct {
	Below float64
	Label string
}{
	{0.02, "Low"},
	{0.045, "Medium"},
}

func riskLabel(vol float64) string {
	if vol <= 0 {
		return "Unknown"
	}
	for _, b := range riskBands {
		if vol < b.Below {
			return b.Label
		}
	}
	return "High"
}

// highlights names the two components contributing most to the score.
func highlights(components []model.ScoreComponent) []string {
	ranked := make([]model.ScoreComponent, len(components))
	copy(ranked, components)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weighted > ranked[j].Weighted
	})
	n := 2
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]string, 0, n)
	for _, c := range ranked[:n] {
		out = append(out, fmt.Sprintf("%s: %s", c.Name, c.Commentary))
	}
	return out
}

func normalizeTickers(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
