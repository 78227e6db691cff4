package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceWindow is an ascending-by-time sequence of bars for one instrument.
type PriceWindow struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Since returns the bars at or after t. If no bar qualifies, the most
// recent bar is returned so callers always have at least one observation.
func (w *PriceWindow) Since(t time.Time) []OHLCV {
	for i, b := range w.Bars {
		if !b.Time.Before(t) {
			return w.Bars[i:]
		}
	}
	if len(w.Bars) == 0 {
		return nil
	}
	return w.Bars[len(w.Bars)-1:]
}

// WindowStats summarises a bar slice for lifecycle polling.
func WindowStats(bars []OHLCV) (high, low, latestClose float64, ok bool) {
	if len(bars) == 0 {
		return 0, 0, 0, false
	}
	high = bars[0].High
	low = bars[0].Low
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, bars[len(bars)-1].Close, true
}
