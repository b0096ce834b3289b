package model

import (
	"encoding/json"
	"math"
	"time"
)

// PricePoint is a single daily closing price.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds ascending daily closes for one ticker.
type PriceSeries struct {
	Ticker    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of samples in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Closes returns the closing prices in series order.
func (s *PriceSeries) Closes() []float64 {
	if s == nil {
		return nil
	}
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Fundamentals is a sparse per-ticker record as decoded from a data feed.
// Any key may be absent, or hold a non-numeric placeholder such as "N/A".
type Fundamentals map[string]any

// Float reads a numeric field. Non-numeric values, NaN, and infinities
// report ok=false so callers degrade to their documented defaults.
func (f Fundamentals) Float(key string) (float64, bool) {
	v, ok := f[key]
	if !ok {
		return 0, false
	}
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint:
		n = float64(x)
	case uint64:
		n = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// StringOr reads a string field, falling back when absent or non-string.
func (f Fundamentals) StringOr(key, fallback string) string {
	if v, ok := f[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// StockData bundles everything collected for one ticker.
type StockData struct {
	Ticker       string
	CompanyName  string
	Sector       string
	Industry     string
	CurrentPrice float64
	RecentTrend  string // "up" or "down": last close vs first close of the series
	Series       *PriceSeries
	Fundamentals Fundamentals
}
