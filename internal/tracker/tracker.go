package tracker

import (
	"time"

	"SignalSentinel/internal/model"
)

// Tracker resolves open signals against fresh price windows. It is the sole
// mutator of TrackedSignal state after creation.
type Tracker struct {
	Expiry time.Duration // age after which an untouched ACTIVE signal expires
	Now    func() time.Time
}

// PollResult reports what one poll did to a signal.
type PollResult struct {
	From    model.SignalStatus
	To      model.SignalStatus
	Changed bool
}

// Poll evaluates one signal against the bars observed since its creation
// and mutates it in place.
//
// Outcomes are checked worst-case-first: a stop breach anywhere in the
// window closes the signal even when a target was also crossed, so
// performance is never overstated when both levels fall inside one
// observation window. Terminal states never change; polling twice with an
// identical window produces identical state.
func (t *Tracker) Poll(sig *model.TrackedSignal, bars []model.OHLCV) PollResult {
	res := PollResult{From: sig.Status, To: sig.Status}
	if sig.Status.Terminal() || len(bars) == 0 {
		return res
	}

	high, low, latest, ok := model.WindowStats(bars)
	if !ok {
		return res
	}
	now := t.now()

	// Excursion statistics update on every poll regardless of outcome.
	sig.CurrentPrice = latest
	sig.LastChecked = now
	sig.ChecksCount++
	if high > sig.HighestPrice {
		sig.HighestPrice = high
	}
	if low < sig.LowestPrice {
		sig.LowestPrice = low
	}
	if sig.Direction == model.Buy {
		sig.MaxFavorable = high - sig.Entry
		sig.MaxAdverse = sig.Entry - low
	} else {
		sig.MaxFavorable = sig.Entry - low
		sig.MaxAdverse = high - sig.Entry
	}

	stopBreached := low <= sig.StopLoss
	tp2Reached := high >= sig.TP2
	tp1Reached := high >= sig.TP1
	if sig.Direction == model.Sell {
		stopBreached = high >= sig.StopLoss
		tp2Reached = low <= sig.TP2
		tp1Reached = low <= sig.TP1
	}

	switch {
	case stopBreached:
		sig.Status = model.StatusSLHit
		sig.SLHit = true
		sig.SLHitTime = now
		sig.PnLAtClose = t.pnl(sig, sig.StopLoss)

	case tp2Reached:
		// TP1 is considered achieved en route even if never marked.
		sig.Status = model.StatusTP2Hit
		sig.TP1Hit = true
		sig.TP2Hit = true
		sig.TP2HitTime = now
		sig.PnLAtClose = t.pnl(sig, sig.TP2)

	case tp1Reached:
		if !sig.TP1Hit {
			sig.TP1Hit = true
			sig.TP1HitTime = now
		}
		sig.Status = model.StatusTP1Hit
		sig.PnLAtClose = t.pnl(sig, sig.TP1)
	}

	// Expiry applies only to signals still untouched by any level.
	if sig.Status == model.StatusActive && t.Expiry > 0 && now.Sub(sig.CreatedAt) > t.Expiry {
		sig.Status = model.StatusExpired
		sig.PnLAtClose = t.pnl(sig, latest)
	}

	res.To = sig.Status
	res.Changed = res.From != res.To
	return res
}

func (t *Tracker) pnl(sig *model.TrackedSignal, exit float64) float64 {
	if sig.Direction == model.Buy {
		return exit - sig.Entry
	}
	return sig.Entry - exit
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now().UTC()
}
