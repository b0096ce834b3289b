package collector

import (
	"time"

	"StockScout/internal/model"
)

// Fetcher supplies price history and fundamentals for a ticker.
type Fetcher interface {
	FetchDailyCloses(ticker string, days int) (*model.PriceSeries, error)
	FetchFundamentals(ticker string) (model.Fundamentals, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	BasePrice float64
	Series    map[string]*model.PriceSeries
	Funds     map[string]model.Fundamentals
	Errs      map[string]error // per-ticker injected failures
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(ticker string, days int) (*model.PriceSeries, error) {
	if err, ok := m.Errs[ticker]; ok {
		return nil, err
	}
	if s, ok := m.Series[ticker]; ok {
		return s, nil
	}
	return generateMockSeries(ticker, m.BasePrice, days), nil
}

func (m *MockFetcher) FetchFundamentals(ticker string) (model.Fundamentals, error) {
	if err, ok := m.Errs[ticker]; ok {
		return nil, err
	}
	if f, ok := m.Funds[ticker]; ok {
		return f, nil
	}
	return model.Fundamentals{}, nil
}

func generateMockSeries(ticker string, basePrice float64, count int) *model.PriceSeries {
	if basePrice <= 0 {
		basePrice = 100
	}
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Date:  time.Now().AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return &model.PriceSeries{Ticker: ticker, Points: points, FetchedAt: time.Now()}
}
