package collector

import "SignalSentinel/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchBars returns up to count bars at the given interval
	// ("1h", "4h", "1d"), oldest first.
	FetchBars(symbol, interval string, count int) ([]model.OHLCV, error)
	Name() string
}
