package model

import "math"

// Regime is the coarse market-state classification for a bar.
type Regime string

const (
	RegimeTrending Regime = "TRENDING"
	RegimeRanging  Regime = "RANGING"
	RegimeSqueeze  Regime = "SQUEEZE"
	RegimeVolatile Regime = "VOLATILE"
)

// Session is the time-of-day liquidity classification.
type Session string

const (
	SessionKillZone Session = "KILL_ZONE"
	SessionNormal   Session = "NORMAL"
	SessionThin     Session = "THIN"
)

// Divergence holds oscillator-vs-price divergence flags over the recent lookback.
type Divergence struct {
	BullRSI  bool
	BearRSI  bool
	BullMACD bool
	BearMACD bool
}

// FeatureSnapshot is the per-bar indicator view the decision core consumes.
// Optional float fields carry NaN when the upstream source could not supply
// them; use HasValue to test presence. Integer direction fields use
// +1 / -1 / 0 conventions throughout.
type FeatureSnapshot struct {
	// Latest bar OHLC.
	Close float64
	Open  float64
	High  float64
	Low   float64

	// Previous bar, needed by the pullback rule.
	PrevClose float64
	PrevHigh  float64
	PrevLow   float64

	// Moving averages and crossover state.
	EMAFast  float64
	EMASlow  float64
	EMACross int // +1 bullish cross on this bar, -1 bearish, 0 none

	// Oscillators and volatility.
	RSI       float64
	ATR       float64
	ADX       float64
	DIDiff    float64
	StochRSIK float64
	StochRSID float64

	// MACD histogram, current and previous bar.
	MACDHist     float64
	PrevMACDHist float64

	// Participation and candle quality.
	VolRatio  float64 // volume / its moving average
	BodyRatio float64

	// Trend state.
	Trend     int // +1 bullish, -1 bearish, 0 flat
	PrevTrend int
	Regime    Regime

	// ATR-banded trailing filter (SuperTrend-style).
	SuperTrendDir     int
	PrevSuperTrendDir int

	// Market structure breaks.
	BOS   int // break of structure: +1 bullish, -1 bearish
	CHoCH int // change of character (early reversal)

	// Ichimoku cloud state.
	IchiTKCross    int
	IchiAboveCloud int
	IchiBelowCloud int

	// Channel breakout beyond the prior N-bar extreme.
	DonBreakout int

	// Single-bit alignment filters.
	PSARDir  int
	HMABull  int // 1 = fast lag-reduced MA rising, 0 = falling
	VWAPBull int // 1 = price above VWAP, 0 = below

	// Unfilled imbalance-zone occupancy.
	BullFVGInZone bool
	BearFVGInZone bool

	Divergence Divergence
}

// NewFeatureSnapshot returns a snapshot with every optional indicator marked
// unavailable. Sources fill in what they can compute; consumers validate with
// Ready before classification.
func NewFeatureSnapshot() *FeatureSnapshot {
	nan := math.NaN()
	return &FeatureSnapshot{
		EMAFast:      nan,
		EMASlow:      nan,
		RSI:          nan,
		ATR:          nan,
		ADX:          nan,
		DIDiff:       nan,
		StochRSIK:    nan,
		StochRSID:    nan,
		MACDHist:     nan,
		PrevMACDHist: nan,
		VolRatio:     nan,
		BodyRatio:    0.5,
		Regime:       RegimeRanging,
	}
}

// HasValue reports whether an optional indicator value is present.
func HasValue(v float64) bool { return !math.IsNaN(v) }

// Ready reports whether the fields every pattern rule depends on are present.
// A snapshot that is not ready yields "no signal", never an error.
func (s *FeatureSnapshot) Ready() bool {
	if s == nil {
		return false
	}
	return HasValue(s.EMAFast) && HasValue(s.EMASlow) && HasValue(s.RSI) && HasValue(s.ATR)
}

// MACDAvailable reports whether both current and previous histogram values exist.
func (s *FeatureSnapshot) MACDAvailable() bool {
	return HasValue(s.MACDHist) && HasValue(s.PrevMACDHist)
}

// TrendLabel renders the trend sign for reports.
func (s *FeatureSnapshot) TrendLabel() string {
	switch s.Trend {
	case 1:
		return "Bullish"
	case -1:
		return "Bearish"
	}
	return "Neutral"
}
