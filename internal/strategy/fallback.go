package strategy

import "SignalSentinel/internal/model"

// Fallback score can never reach the strict acceptance floor.
const fallbackMaxScore = 3

// CheckBestOpportunity is the fallback classifier used when a scan produces
// too few strict signals. Requirements are looser (any clear trend, ADX over
// 10, oscillator off the extremes) and the score is hard-capped at 3 so a
// fallback signal can never outrank a strict one. Rejected outright during
// the thin session window.
func (e *Engine) CheckBestOpportunity(snap *model.FeatureSnapshot, inst model.Instrument) *model.TradeSignal {
	if !snap.Ready() {
		return nil
	}
	if !model.HasValue(snap.ADX) || snap.ADX < 10 {
		return nil
	}
	if snap.Trend == 0 {
		return nil
	}
	if snap.Regime == model.RegimeVolatile {
		return nil
	}
	if snap.Trend == 1 && snap.RSI > 78 {
		return nil
	}
	if snap.Trend == -1 && snap.RSI < 22 {
		return nil
	}

	dir := model.Buy
	if snap.Trend == -1 {
		dir = model.Sell
	}

	score := 1
	if snap.ADX >= 25 {
		score++
	}
	if model.HasValue(snap.VolRatio) && snap.VolRatio >= 1.0 {
		score++
	}
	if score > fallbackMaxScore {
		score = fallbackMaxScore
	}

	session := model.SessionNormal
	if inst.Class == model.ClassCommodity {
		session = SessionQuality(inst.Class, e.now())
	}
	if session == model.SessionThin {
		return nil
	}

	levels, err := e.Sizer.TradeLevels(inst, snap.Close, snap.ATR, dir, score)
	if err != nil {
		return nil
	}
	return e.buildSignal(snap, inst, dir, model.PatternTrendOpportunity, score, snap.Trend, session, levels)
}
