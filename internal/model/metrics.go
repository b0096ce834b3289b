package model

// Metrics is the fixed set of growth statistics computed for one company.
// Percentages and the score carry 2 decimals, slope/volatility/revenue
// growth carry 4; market cap and volume pass through unrounded.
type Metrics struct {
	WeeklyChange       float64 `json:"weekly_change"`
	MonthlyChange      float64 `json:"monthly_change"`
	SixMonthTrendSlope float64 `json:"six_month_trend_slope"`
	Volatility         float64 `json:"volatility"`
	RevenueGrowthYoY   float64 `json:"revenue_growth_yoy"`
	MarketCap          float64 `json:"market_cap"`
	AvgVolume30d       float64 `json:"avg_volume_30d"`
	GrowthScore        float64 `json:"growth_score"`
}

// ScoreComponent is one weighted contribution to the composite growth score.
type ScoreComponent struct {
	Name       string
	Value      float64 // the raw metric fed into the band
	Normalized float64 // 0.0 ~ 1.0 after banding
	Weight     float64
	Weighted   float64
	Commentary string
}
