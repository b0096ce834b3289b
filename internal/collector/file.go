package collector

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockScout/internal/model"
)

// FileFetcher reads per-ticker fixtures from a local directory:
// <TICKER>.csv holds date,close rows and <TICKER>.json the fundamentals
// record. This is the supported way to feed exported market data into the
// agent.
type FileFetcher struct {
	Dir string
}

// NewFileFetcher creates a fetcher rooted at dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

func (f *FileFetcher) Name() string { return "file" }

// FetchDailyCloses loads the ticker's CSV and returns the most recent
// `days` closes in chronological order.
func (f *FileFetcher) FetchDailyCloses(ticker string, days int) (*model.PriceSeries, error) {
	symbol := strings.ToUpper(ticker)
	path := filepath.Join(f.Dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price fixture: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read price fixture %s: %w", path, err)
	}

	points := make([]model.PricePoint, 0, len(rows))
	for i, row := range rows {
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "date") {
			continue
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad date %q: %w", path, i+1, row[0], err)
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad close %q: %w", path, i+1, row[1], err)
		}
		points = append(points, model.PricePoint{Date: date, Close: c})
	}

	// Fixtures are expected ascending, but don't rely on it.
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	if days > 0 && len(points) > days {
		points = points[len(points)-days:]
	}
	return &model.PriceSeries{Ticker: symbol, Points: points, FetchedAt: time.Now()}, nil
}

// FetchFundamentals loads the ticker's JSON record.
func (f *FileFetcher) FetchFundamentals(ticker string) (model.Fundamentals, error) {
	path := filepath.Join(f.Dir, strings.ToUpper(ticker)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fundamentals fixture: %w", err)
	}
	var funds model.Fundamentals
	if err := json.Unmarshal(data, &funds); err != nil {
		return nil, fmt.Errorf("parse fundamentals fixture %s: %w", path, err)
	}
	return funds, nil
}
