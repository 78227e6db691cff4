package strategy

import "SignalSentinel/internal/model"

// Score grades a classified decision against the snapshot, additively, then
// clamps to [0, 10].
//
// Components:
//
//	ADX strength       0-3    MACD confirmation    0-1   Cloud alignment  0-1
//	Volume ratio       0-2    SuperTrend alignment 0-1   PSAR direction   0-1
//	RSI sweet spot     0-2    StochRSI K vs D      0-1   VWAP side        0-1
//	Trend alignment    0-2    BOS confirmation     0-1   Hull MA trend    0-1
//	Divergence         0-2    FVG zone             0-1
//	Regime -1/0/+1     Session -2/0/+1
func Score(dir model.Direction, snap *model.FeatureSnapshot, confirmTrend int, session model.Session) int {
	score := 0

	// ADX strength (0-3)
	if model.HasValue(snap.ADX) {
		switch {
		case snap.ADX >= 40:
			score += 3
		case snap.ADX >= 30:
			score += 2
		case snap.ADX >= 20:
			score += 1
		}
	}

	// Volume (0-2)
	if model.HasValue(snap.VolRatio) {
		switch {
		case snap.VolRatio >= 1.5:
			score += 2
		case snap.VolRatio >= 1.0:
			score += 1
		}
	}

	// RSI position (0-2), direction-dependent sweet spot
	if model.HasValue(snap.RSI) {
		rsi := snap.RSI
		if dir == model.Buy {
			switch {
			case rsi >= 50 && rsi <= 65:
				score += 2
			case rsi >= 45 && rsi <= 70:
				score += 1
			}
		} else {
			switch {
			case rsi >= 35 && rsi <= 50:
				score += 2
			case rsi >= 30 && rsi <= 55:
				score += 1
			}
		}
	}

	// Multi-timeframe trend alignment (0-2)
	if dir == model.Buy {
		if snap.Trend == 1 && confirmTrend == 1 {
			score += 2
		} else if snap.Trend == 1 || confirmTrend >= 0 {
			score++
		}
	} else {
		if snap.Trend == -1 && confirmTrend == -1 {
			score += 2
		} else if snap.Trend == -1 || confirmTrend <= 0 {
			score++
		}
	}

	// MACD confirmation (0-1)
	if model.HasValue(snap.MACDHist) {
		if (dir == model.Buy && snap.MACDHist > 0) || (dir == model.Sell && snap.MACDHist < 0) {
			score++
		}
	}

	// SuperTrend alignment (0-1)
	if (dir == model.Buy && snap.SuperTrendDir == 1) || (dir == model.Sell && snap.SuperTrendDir == -1) {
		score++
	}

	// StochRSI ordering (0-1)
	if model.HasValue(snap.StochRSIK) && model.HasValue(snap.StochRSID) {
		if (dir == model.Buy && snap.StochRSIK > snap.StochRSID) ||
			(dir == model.Sell && snap.StochRSIK < snap.StochRSID) {
			score++
		}
	}

	// BOS confirmation (0-1)
	if (dir == model.Buy && snap.BOS == 1) || (dir == model.Sell && snap.BOS == -1) {
		score++
	}

	// Imbalance-zone occupancy (0-1)
	if (dir == model.Buy && snap.BullFVGInZone) || (dir == model.Sell && snap.BearFVGInZone) {
		score++
	}

	// Divergence (0/2) against recent price extremes
	div := snap.Divergence
	if dir == model.Buy && (div.BullRSI || div.BullMACD) {
		score += 2
	} else if dir == model.Sell && (div.BearRSI || div.BearMACD) {
		score += 2
	}

	// Cloud-side alignment (0-1)
	if (dir == model.Buy && snap.IchiAboveCloud == 1) || (dir == model.Sell && snap.IchiBelowCloud == 1) {
		score++
	}

	// Parabolic SAR direction (0-1)
	if (dir == model.Buy && snap.PSARDir == 1) || (dir == model.Sell && snap.PSARDir == -1) {
		score++
	}

	// VWAP side (0-1)
	if (dir == model.Buy && snap.VWAPBull == 1) || (dir == model.Sell && snap.VWAPBull == 0) {
		score++
	}

	// Hull MA trend (0-1)
	if (dir == model.Buy && snap.HMABull == 1) || (dir == model.Sell && snap.HMABull == 0) {
		score++
	}

	// Regime adjustment
	switch snap.Regime {
	case model.RegimeRanging:
		score--
	case model.RegimeSqueeze:
		score++
	}

	// Session adjustment
	switch session {
	case model.SessionKillZone:
		score++
	case model.SessionThin:
		score -= 2
	}

	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
