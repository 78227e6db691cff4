package calculator

import (
	"errors"

	"SignalSentinel/internal/model"
)

// Indicator periods. The snapshot builder keeps the classic fast/slow pair
// the pattern rules were tuned against.
const (
	EMAFastPeriod  = 20
	EMASlowPeriod  = 50
	RSIPeriod      = 14
	ATRPeriod      = 14
	VolumePeriod   = 20
	DonchianPeriod = 20
)

// BuildSnapshot derives a FeatureSnapshot from a bar window. It fills the
// fields a bare price feed supports; richer institutional flags (structure
// breaks, cloud state, divergence) stay unavailable and are expected from an
// external analytics source when present.
func BuildSnapshot(bars []model.OHLCV) (*model.FeatureSnapshot, error) {
	if len(bars) < EMASlowPeriod+2 {
		return nil, errors.New("not enough bars to build a snapshot")
	}

	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	snap := model.NewFeatureSnapshot()
	latest := bars[len(bars)-1]
	prev := bars[len(bars)-2]
	snap.Close = latest.Close
	snap.Open = latest.Open
	snap.High = latest.High
	snap.Low = latest.Low
	snap.PrevClose = prev.Close
	snap.PrevHigh = prev.High
	snap.PrevLow = prev.Low

	fast, err := EMASeries(closes, EMAFastPeriod)
	if err != nil {
		return nil, err
	}
	slow, err := EMASeries(closes, EMASlowPeriod)
	if err != nil {
		return nil, err
	}
	n := len(closes)
	snap.EMAFast = fast[n-1]
	snap.EMASlow = slow[n-1]

	snap.Trend = trendSign(fast[n-1], slow[n-1])
	snap.PrevTrend = trendSign(fast[n-2], slow[n-2])
	if snap.Trend != snap.PrevTrend && snap.Trend != 0 {
		snap.EMACross = snap.Trend
	}

	if rsi, err := RSI(closes, RSIPeriod); err == nil {
		snap.RSI = rsi
	}
	atr, err := ATR(bars, ATRPeriod)
	if err != nil {
		return nil, err
	}
	snap.ATR = atr

	if avgVol, err := SMA(volumes, VolumePeriod); err == nil && avgVol > 0 {
		snap.VolRatio = latest.Volume / avgVol
	}

	snap.BodyRatio = bodyRatio(latest)
	snap.Regime = classifyRegime(bars, atr)

	if upper, lower, err := DonchianChannel(bars, DonchianPeriod); err == nil {
		if latest.Close > upper {
			snap.DonBreakout = 1
		} else if latest.Close < lower {
			snap.DonBreakout = -1
		}
	}

	return snap, nil
}

func trendSign(fast, slow float64) int {
	switch {
	case fast > slow:
		return 1
	case fast < slow:
		return -1
	}
	return 0
}

func bodyRatio(b model.OHLCV) float64 {
	span := b.High - b.Low
	if span <= 0 {
		return 0.5
	}
	body := b.Close - b.Open
	if body < 0 {
		body = -body
	}
	return body / span
}

// classifyRegime approximates the market-state tags from price data alone:
// a true-range spike marks VOLATILE, compressed ranges mark SQUEEZE, a live
// EMA separation marks TRENDING, everything else RANGING.
func classifyRegime(bars []model.OHLCV, atr float64) model.Regime {
	trs := TrueRanges(bars)
	avgTR, err := SMA(trs, VolumePeriod)
	if err != nil || avgTR <= 0 {
		return model.RegimeRanging
	}
	latestTR := trs[len(trs)-1]
	switch {
	case latestTR > 1.5*avgTR:
		return model.RegimeVolatile
	case atr < 0.6*avgTR:
		return model.RegimeSqueeze
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	fast, errF := EMASeries(closes, EMAFastPeriod)
	slow, errS := EMASeries(closes, EMASlowPeriod)
	if errF == nil && errS == nil {
		spread := fast[len(fast)-1] - slow[len(slow)-1]
		if spread < 0 {
			spread = -spread
		}
		if spread > 0.25*atr {
			return model.RegimeTrending
		}
	}
	return model.RegimeRanging
}
