package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"StockScout/internal/model"
)

// FormatComparisonDigest formats a comparison run into a plain-text report.
func FormatComparisonDigest(result *model.ComparisonResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 StockScout Comparison | %s\n\n", result.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Analyzed %d of %d requested companies\n\n", len(result.Reports), len(result.Requested)))

	b.WriteString("🏆 Top picks:\n")
	for _, pick := range result.TopPicks {
		b.WriteString(fmt.Sprintf("  %d. %s (%s): score %.2f, risk %s\n",
			pick.Rank, pick.Ticker, pick.CompanyName, pick.GrowthScore, pick.RiskLabel))
		for _, h := range pick.Highlights {
			b.WriteString(fmt.Sprintf("     · %s\n", h))
		}
	}

	b.WriteString("\n📈 Full ranking:\n")
	for i, rep := range result.Reports {
		m := rep.Metrics
		b.WriteString(fmt.Sprintf("  %2d. %-6s score %5.2f | wk %+6.2f%% | mo %+6.2f%% | rev %+6.1f%% | cap %s\n",
			i+1, rep.Ticker, m.GrowthScore, m.WeeklyChange, m.MonthlyChange,
			m.RevenueGrowthYoY*100, formatCap(m.MarketCap)))
		if m.AvgVolume30d > 0 {
			b.WriteString(fmt.Sprintf("      avg volume %s/day\n", humanize.Comma(int64(m.AvgVolume30d))))
		}
	}

	if len(result.Skipped) > 0 {
		b.WriteString("\n⚠️ Skipped:\n")
		for _, ticker := range sortedKeys(result.Skipped) {
			b.WriteString(fmt.Sprintf("  %s: %s\n", ticker, result.Skipped[ticker]))
		}
	}

	return b.String()
}

// FormatScanDigest formats a scan run into a plain-text report.
func FormatScanDigest(result *model.ScanResult) string {
	var b strings.Builder

	sector := result.Sector
	if sector == "" {
		sector = "all sectors"
	}
	b.WriteString(fmt.Sprintf("🔍 StockScout Scan | %s | %s\n\n", sector, result.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Scanned %d companies, %d cleared the threshold\n\n", result.Scanned, result.Matched))

	if len(result.Signals) == 0 {
		b.WriteString("No buy signals today.\n")
		return b.String()
	}
	for _, sig := range result.Signals {
		b.WriteString(fmt.Sprintf("  %-6s %3d pts | $%.2f (%s)\n", sig.Ticker, sig.Score, sig.Price, sig.Sector))
		b.WriteString(fmt.Sprintf("         %s\n", strings.Join(sig.Reasons, "; ")))
	}

	return b.String()
}

// FormatDiscoveryDigest formats mid-cap discovery results. added is how
// many tickers were newly promoted onto the watchlist.
func FormatDiscoveryDigest(discoveries []model.Discovery, added int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🧭 StockScout Mid-Cap Discovery | %s\n\n", time.Now().Format("2006-01-02")))
	if len(discoveries) == 0 {
		b.WriteString("No companies in the $2B-$10B range today.\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%d candidates (%d new to the watchlist):\n", len(discoveries), added))
	for _, d := range discoveries {
		b.WriteString(fmt.Sprintf("  %-6s cap %s | rev growth %+.1f%% (%s)\n",
			d.Ticker, formatCap(d.MarketCap), d.RevenueGrowth*100, d.Sector))
	}

	return b.String()
}

// formatCap renders a market cap like "$5.20B". Zero or negative means the
// feed had no figure.
func formatCap(mcap float64) string {
	switch {
	case mcap <= 0:
		return "n/a"
	case mcap >= 1e12:
		return fmt.Sprintf("$%.2fT", mcap/1e12)
	case mcap >= 1e9:
		return fmt.Sprintf("$%.2fB", mcap/1e9)
	case mcap >= 1e6:
		return fmt.Sprintf("$%.1fM", mcap/1e6)
	}
	return "$" + humanize.Commaf(mcap)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
