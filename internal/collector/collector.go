package collector

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"StockScout/internal/model"
)

// Collector assembles the per-ticker snapshot from a Fetcher.
type Collector struct {
	Fetcher    Fetcher
	PeriodDays int
}

// NewCollector creates a Collector fetching periodDays of daily history.
func NewCollector(fetcher Fetcher, periodDays int) *Collector {
	return &Collector{Fetcher: fetcher, PeriodDays: periodDays}
}

// Collect fetches prices and fundamentals for one ticker. Price history is
// required; a fundamentals failure degrades to an empty record instead of
// sinking the snapshot.
func (c *Collector) Collect(ticker string) (*model.StockData, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, errors.New("empty ticker")
	}

	series, err := c.Fetcher.FetchDailyCloses(symbol, c.PeriodDays)
	if err != nil {
		return nil, fmt.Errorf("fetch closes for %s: %w", symbol, err)
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("no price history for %s", symbol)
	}

	funds, err := c.Fetcher.FetchFundamentals(symbol)
	if err != nil {
		log.Printf("[WARN] fundamentals fetch failed for %s: %v, continuing with empty record", symbol, err)
		funds = model.Fundamentals{}
	}

	sd := &model.StockData{
		Ticker:       symbol,
		CompanyName:  funds.StringOr("company_name", symbol),
		Sector:       funds.StringOr("sector", "N/A"),
		Industry:     funds.StringOr("industry", "N/A"),
		Series:       series,
		Fundamentals: funds,
	}

	closes := series.Closes()
	sd.CurrentPrice = closes[len(closes)-1]
	if p, ok := funds.Float("current_price"); ok && p > 0 {
		sd.CurrentPrice = p
	}
	sd.RecentTrend = "down"
	if closes[len(closes)-1] > closes[0] {
		sd.RecentTrend = "up"
	}
	return sd, nil
}
