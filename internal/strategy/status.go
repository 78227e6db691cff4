package strategy

import "SignalSentinel/internal/model"

// MarketStatus is the per-instrument condition line for the daily digest.
type MarketStatus struct {
	Symbol    string
	Name      string
	Class     model.InstrumentClass
	Close     float64
	RSI       float64
	ATR       float64
	Regime    model.Regime
	Trend     string
	Condition string
}

// TrendStatus summarises the current market condition for an instrument,
// independent of whether a signal fired.
func TrendStatus(snap *model.FeatureSnapshot, inst model.Instrument) *MarketStatus {
	if !snap.Ready() {
		return nil
	}

	rsi := snap.RSI
	var condition string
	switch {
	case rsi > 70:
		condition = "OVERBOUGHT"
	case rsi < 30:
		condition = "OVERSOLD"
	case snap.Trend == 1 && rsi > 50:
		condition = "STRONG BULLISH"
	case snap.Trend == 1:
		condition = "BULLISH"
	case snap.Trend == -1 && rsi < 50:
		condition = "STRONG BEARISH"
	case snap.Trend == -1:
		condition = "BEARISH"
	default:
		condition = "NEUTRAL"
	}

	return &MarketStatus{
		Symbol:    inst.Symbol,
		Name:      inst.Name,
		Class:     inst.Class,
		Close:     snap.Close,
		RSI:       rsi,
		ATR:       snap.ATR,
		Regime:    snap.Regime,
		Trend:     snap.TrendLabel(),
		Condition: condition,
	}
}
