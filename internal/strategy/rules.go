package strategy

import (
	"math"

	"SignalSentinel/internal/model"
)

// ruleContext carries the snapshot plus the derived state the pattern rules
// share, so each rule stays a pure predicate.
type ruleContext struct {
	snap         *model.FeatureSnapshot
	confirmTrend int

	macdAvailable bool
	macdBullish   bool
	macdBearish   bool

	stFlipped bool
}

func newRuleContext(snap *model.FeatureSnapshot, confirmTrend int) *ruleContext {
	ctx := &ruleContext{snap: snap, confirmTrend: confirmTrend}
	ctx.macdAvailable = snap.MACDAvailable()
	ctx.macdBullish = ctx.macdAvailable && snap.MACDHist > 0
	ctx.macdBearish = ctx.macdAvailable && snap.MACDHist < 0
	ctx.stFlipped = snap.SuperTrendDir != 0 && snap.PrevSuperTrendDir != 0 &&
		snap.SuperTrendDir != snap.PrevSuperTrendDir
	return ctx
}

// patternRule is one admission test. Rules are mutually exclusive by
// construction: classification walks the list in priority order and the
// first match wins.
type patternRule struct {
	name  string
	match func(*ruleContext) (model.Direction, string, bool)
}

var patternRules = []patternRule{
	{"ema-crossover", matchEMACrossover},
	{"structure-break", matchStructureBreak},
	{"supertrend-flip", matchSuperTrendFlip},
	{"ichimoku-tk-cross", matchIchimokuTKCross},
	{"donchian-breakout", matchDonchianBreakout},
	{"trend-pullback", matchTrendPullback},
	{"fvg-retracement", matchFVGRetracement},
}

// classify runs the ordered rule cascade and returns the winning decision.
func classify(ctx *ruleContext) (model.Direction, string, bool) {
	for _, r := range patternRules {
		if dir, pattern, ok := r.match(ctx); ok {
			return dir, pattern, true
		}
	}
	return "", "", false
}

// Type 1: fast/slow MA crossover on this bar with momentum confirmation.
func matchEMACrossover(ctx *ruleContext) (model.Direction, string, bool) {
	s := ctx.snap
	if s.EMACross == 1 && s.RSI >= 45 && s.RSI <= 70 && ctx.confirmTrend >= 0 &&
		(!ctx.macdAvailable || ctx.macdBullish) {
		return model.Buy, model.PatternEMACrossover, true
	}
	if s.EMACross == -1 && s.RSI >= 30 && s.RSI <= 55 && ctx.confirmTrend <= 0 &&
		(!ctx.macdAvailable || ctx.macdBearish) {
		return model.Sell, model.PatternEMACrossover, true
	}
	return "", "", false
}

// Type 2: structure break. BOS continues the trend; CHoCH is the
// counter-trend early-reversal variant with its own oscillator band.
func matchStructureBreak(ctx *ruleContext) (model.Direction, string, bool) {
	s := ctx.snap
	switch {
	case s.BOS == 1 && ctx.confirmTrend >= 0 && s.RSI >= 35 && s.RSI <= 70:
		return model.Buy, model.PatternBOSBullish, true
	case s.BOS == -1 && ctx.confirmTrend <= 0 && s.RSI >= 30 && s.RSI <= 65:
		return model.Sell, model.PatternBOSBearish, true
	case s.CHoCH == 1 && s.RSI >= 30 && s.RSI <= 65:
		return model.Buy, model.PatternCHoCHBullish, true
	case s.CHoCH == -1 && s.RSI >= 35 && s.RSI <= 70:
		return model.Sell, model.PatternCHoCHBearish, true
	}
	return "", "", false
}

// Type 3: ATR-banded trailing filter flipped direction on this bar.
func matchSuperTrendFlip(ctx *ruleContext) (model.Direction, string, bool) {
	if !ctx.stFlipped {
		return "", "", false
	}
	s := ctx.snap
	if s.SuperTrendDir == 1 && ctx.confirmTrend >= 0 && s.RSI >= 35 && s.RSI <= 72 {
		return model.Buy, model.PatternSuperTrendFlip, true
	}
	if s.SuperTrendDir == -1 && ctx.confirmTrend <= 0 && s.RSI >= 28 && s.RSI <= 65 {
		return model.Sell, model.PatternSuperTrendFlip, true
	}
	return "", "", false
}

// Type 4: conversion/base-line cross while price sits on the matching side
// of the cloud.
func matchIchimokuTKCross(ctx *ruleContext) (model.Direction, string, bool) {
	s := ctx.snap
	if s.IchiTKCross == 1 && s.IchiAboveCloud == 1 &&
		ctx.confirmTrend >= 0 && s.RSI >= 35 && s.RSI <= 70 {
		return model.Buy, model.PatternIchimokuTKCross, true
	}
	if s.IchiTKCross == -1 && s.IchiBelowCloud == 1 &&
		ctx.confirmTrend <= 0 && s.RSI >= 30 && s.RSI <= 65 {
		return model.Sell, model.PatternIchimokuTKCross, true
	}
	return "", "", false
}

// Type 5: close beyond the prior channel extreme, gated by a volume surge.
func matchDonchianBreakout(ctx *ruleContext) (model.Direction, string, bool) {
	s := ctx.snap
	volSurge := model.HasValue(s.VolRatio) && s.VolRatio >= 1.2
	if !volSurge {
		return "", "", false
	}
	if s.DonBreakout == 1 && ctx.confirmTrend >= 0 && s.RSI >= 40 && s.RSI <= 75 {
		return model.Buy, model.PatternDonchianBreakout, true
	}
	if s.DonBreakout == -1 && ctx.confirmTrend <= 0 && s.RSI >= 25 && s.RSI <= 60 {
		return model.Sell, model.PatternDonchianBreakout, true
	}
	return "", "", false
}

// Type 6: pullback to the fast MA bouncing back in trend direction. Price
// must sit within half a volatility unit of the fast MA and have been on the
// far side one bar prior.
func matchTrendPullback(ctx *ruleContext) (model.Direction, string, bool) {
	s := ctx.snap
	nearEMA := math.Abs(s.Close-s.EMAFast) <= 0.5*s.ATR

	if s.Trend == 1 && ctx.confirmTrend >= 0 {
		wasLower := s.PrevLow <= s.EMAFast*1.003
		bouncingUp := s.Close > s.PrevClose
		if nearEMA && s.RSI >= 40 && s.RSI <= 65 && wasLower && bouncingUp &&
			(!ctx.macdAvailable || ctx.macdBullish) {
			return model.Buy, model.PatternPullbackBuy, true
		}
	} else if s.Trend == -1 && ctx.confirmTrend <= 0 {
		wasHigher := s.PrevHigh >= s.EMAFast*0.997
		bouncingDown := s.Close < s.PrevClose
		if nearEMA && s.RSI >= 35 && s.RSI <= 60 && wasHigher && bouncingDown &&
			(!ctx.macdAvailable || ctx.macdBearish) {
			return model.Sell, model.PatternPullbackSell, true
		}
	}
	return "", "", false
}

// Type 7: price currently occupies an unfilled imbalance zone consistent
// with trend direction.
func matchFVGRetracement(ctx *ruleContext) (model.Direction, string, bool) {
	s := ctx.snap
	if s.BullFVGInZone && s.Trend == 1 && ctx.confirmTrend >= 0 &&
		s.RSI >= 30 && s.RSI <= 65 && (!ctx.macdAvailable || ctx.macdBullish) {
		return model.Buy, model.PatternFVGBuy, true
	}
	if s.BearFVGInZone && s.Trend == -1 && ctx.confirmTrend <= 0 &&
		s.RSI >= 35 && s.RSI <= 70 && (!ctx.macdAvailable || ctx.macdBearish) {
		return model.Sell, model.PatternFVGSell, true
	}
	return "", "", false
}
