package calculator

import (
	"errors"
	"math"

	"SignalSentinel/internal/model"
)

// TrueRanges computes the true-range series from bars (first entry uses
// high-low only).
func TrueRanges(bars []model.OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		tr := b.High - b.Low
		if i > 0 {
			prevClose := bars[i-1].Close
			tr = math.Max(tr, math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
		}
		out[i] = tr
	}
	return out
}

// ATR computes the Wilder-smoothed average true range over the given period.
func ATR(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 0, errors.New("not enough data for ATR calculation")
	}
	trs := TrueRanges(bars)

	atr := 0.0
	for i := 1; i <= period; i++ {
		atr += trs[i]
	}
	atr /= float64(period)
	for i := period + 1; i < len(trs); i++ {
		atr = (atr*float64(period-1) + trs[i]) / float64(period)
	}
	return atr, nil
}

// DonchianChannel returns the highest high and lowest low over the `period`
// bars ending just before the latest bar, so a close beyond either edge is a
// breakout of the prior channel.
func DonchianChannel(bars []model.OHLCV, period int) (upper, lower float64, err error) {
	if len(bars) < period+1 {
		return 0, 0, errors.New("not enough data for Donchian channel")
	}
	end := len(bars) - 1 // exclude the latest bar
	start := end - period
	upper = math.Inf(-1)
	lower = math.Inf(1)
	for i := start; i < end; i++ {
		if bars[i].High > upper {
			upper = bars[i].High
		}
		if bars[i].Low < lower {
			lower = bars[i].Low
		}
	}
	return upper, lower, nil
}
