package recorder

import "StockScout/internal/model"

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordComparison(result *model.ComparisonResult) error
	RecordScan(result *model.ScanResult) error
	Close() error
}
