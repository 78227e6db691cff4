package strategy

import (
	"time"

	"SignalSentinel/internal/model"
	"SignalSentinel/internal/risk"
)

// Engine evaluates feature snapshots into trade signals. All thresholds are
// injected from configuration; Now is replaceable for tests.
type Engine struct {
	ADXFloor       float64
	BodyRatioFloor float64
	VolumeFloor    float64
	MinScore       int

	Sizer *risk.Sizer
	Now   func() time.Time
}

// Check evaluates the hard gates, the pattern-rule cascade, the volume floor
// and the scorer against one snapshot. conf is the optional
// confirmation-timeframe snapshot. Returns nil whenever any gate, rule set,
// floor or sizing step rejects — "no signal" is the normal outcome.
func (e *Engine) Check(snap, conf *model.FeatureSnapshot, inst model.Instrument) *model.TradeSignal {
	if !snap.Ready() {
		return nil
	}

	// Hard gates, checked before any pattern rule.
	if model.HasValue(snap.ADX) && snap.ADX < e.ADXFloor {
		return nil // choppy market
	}
	if snap.BodyRatio < e.BodyRatioFloor {
		return nil // indecisive bar
	}
	if snap.Regime == model.RegimeVolatile {
		return nil // news-driven, skip entirely
	}

	confirmTrend := snap.Trend
	if conf != nil && conf.Ready() {
		confirmTrend = conf.Trend
	}

	ctx := newRuleContext(snap, confirmTrend)
	dir, pattern, ok := classify(ctx)
	if !ok {
		return nil
	}

	// Uniform thin-participation floor, applied after classification.
	if model.HasValue(snap.VolRatio) && snap.VolRatio < e.VolumeFloor {
		return nil
	}

	session := model.SessionNormal
	if inst.Class == model.ClassCommodity {
		session = SessionQuality(inst.Class, e.now())
	}

	score := Score(dir, snap, confirmTrend, session)
	if score < e.MinScore {
		return nil
	}

	levels, err := e.Sizer.TradeLevels(inst, snap.Close, snap.ATR, dir, score)
	if err != nil {
		return nil // sizing never guesses
	}

	return e.buildSignal(snap, inst, dir, pattern, score, confirmTrend, session, levels)
}

func (e *Engine) buildSignal(snap *model.FeatureSnapshot, inst model.Instrument,
	dir model.Direction, pattern string, score, confirmTrend int,
	session model.Session, levels *risk.TradeLevels) *model.TradeSignal {

	return &model.TradeSignal{
		Symbol:    inst.Symbol,
		Name:      inst.Name,
		Class:     inst.Class,
		Direction: dir,
		Pattern:   pattern,
		Score:     score,
		Regime:    snap.Regime,
		Session:   session,

		Entry:    levels.Entry,
		StopLoss: levels.StopLoss,
		TP1:      levels.TP1,
		TP2:      levels.TP2,
		TP3:      levels.TP3,

		LotSize:     levels.LotSize,
		RiskAmount:  levels.RiskAmount,
		RiskPercent: levels.RiskPercent,
		SLDistance:  levels.SLDistance,
		RRTP1:       levels.RRTP1,
		RRTP2:       levels.RRTP2,

		PotentialLoss: levels.PotentialLoss,
		PotentialTP1:  levels.PotentialTP1,
		PotentialTP2:  levels.PotentialTP2,
		WasCapped:     levels.WasCapped,

		ATR:      snap.ATR,
		RSI:      snap.RSI,
		ADX:      orZero(snap.ADX),
		VolRatio: orZero(snap.VolRatio),
		Trend:    snap.TrendLabel(),

		CreatedAt: e.now(),
	}
}

// orZero keeps unavailable indicator values out of persisted records.
func orZero(v float64) float64 {
	if !model.HasValue(v) {
		return 0
	}
	return v
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}
