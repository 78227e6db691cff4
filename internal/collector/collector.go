package collector

import (
	"fmt"
	"log"
	"time"

	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

const (
	primaryBars = 150
	confirmBars = 120
)

// Collector orchestrates data fetching and feature computation.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// MarketView is the per-instrument input to the decision pipeline.
type MarketView struct {
	Primary *model.FeatureSnapshot
	Confirm *model.FeatureSnapshot // nil when the confirmation fetch fails
}

// Collect fetches both timeframes for one instrument and builds snapshots.
// A failed confirmation fetch degrades to a primary-only view.
func (c *Collector) Collect(inst model.Instrument) (*MarketView, error) {
	bars, err := c.Fetcher.FetchBars(inst.Symbol, inst.Timeframe, primaryBars)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s bars: %w", inst.Symbol, inst.Timeframe, err)
	}
	primary, err := calculator.BuildSnapshot(bars)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", inst.Symbol, err)
	}

	view := &MarketView{Primary: primary}

	confBars, err := c.Fetcher.FetchBars(inst.Symbol, inst.ConfirmTimeframe, confirmBars)
	if err != nil {
		log.Printf("[WARN] %s confirmation fetch failed, primary only: %v", inst.Symbol, err)
		return view, nil
	}
	confirm, err := calculator.BuildSnapshot(confBars)
	if err != nil {
		log.Printf("[WARN] %s confirmation snapshot failed, primary only: %v", inst.Symbol, err)
		return view, nil
	}
	view.Confirm = confirm
	return view, nil
}

// FetchWindow returns the hourly bars observed since a point in time.
// It satisfies the tracker's WindowFetcher.
func (c *Collector) FetchWindow(symbol string, since time.Time) (*model.PriceWindow, error) {
	count := int(time.Since(since)/time.Hour) + 2
	if count < 24 {
		count = 24
	}
	if count > 500 {
		count = 500
	}
	bars, err := c.Fetcher.FetchBars(symbol, "1h", count)
	if err != nil {
		return nil, err
	}
	return &model.PriceWindow{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}
