package tracker

import (
	"log"
	"time"

	"SignalSentinel/internal/model"
	"SignalSentinel/internal/store"
)

// WindowFetcher supplies the price bars observed since a point in time.
type WindowFetcher interface {
	FetchWindow(symbol string, since time.Time) (*model.PriceWindow, error)
}

// Runner drives one tracking batch: load open signals, fetch one window per
// symbol, poll each signal, persist updates. A fetch failure skips only that
// symbol's signals for this run.
type Runner struct {
	Store   store.SignalStore
	Fetcher WindowFetcher
	Tracker *Tracker

	// OnChange, when set, is called after each status transition.
	OnChange func(sig *model.TrackedSignal, from model.SignalStatus)
}

// Run executes one tracking batch and returns its summary.
func (r *Runner) Run() (model.RunSummary, error) {
	sum := model.RunSummary{RanAt: r.Tracker.now()}

	open, err := r.Store.LoadOpen()
	if err != nil {
		return sum, err
	}
	if len(open) == 0 {
		log.Println("[INFO] tracker: no open signals")
		return sum, nil
	}
	sum.Checked = len(open)
	log.Printf("[INFO] tracker: checking %d open signal(s)", len(open))

	// One fetch per symbol, spanning back to the oldest signal on it.
	earliest := map[string]time.Time{}
	for _, sig := range open {
		if t, ok := earliest[sig.Symbol]; !ok || sig.CreatedAt.Before(t) {
			earliest[sig.Symbol] = sig.CreatedAt
		}
	}
	windows := map[string]*model.PriceWindow{}
	for symbol, since := range earliest {
		w, err := r.Fetcher.FetchWindow(symbol, since)
		if err != nil {
			log.Printf("[WARN] tracker: fetch %s failed, skipping this cycle: %v", symbol, err)
			continue
		}
		windows[symbol] = w
	}

	for i := range open {
		sig := &open[i]
		w, ok := windows[sig.Symbol]
		if !ok || len(w.Bars) == 0 {
			continue
		}

		res := r.Tracker.Poll(sig, w.Since(sig.CreatedAt))
		if res.Changed {
			log.Printf("[INFO] tracker: %s %s %s -> %s", sig.Symbol, sig.Direction, res.From, res.To)
			switch res.To {
			case model.StatusTP1Hit:
				sum.TP1Hits++
			case model.StatusTP2Hit:
				sum.TP2Hits++
			case model.StatusSLHit:
				sum.SLHits++
			case model.StatusExpired:
				sum.Expired++
			}
			if r.OnChange != nil {
				r.OnChange(sig, res.From)
			}
		}
		if err := r.Store.Update(sig.ID, sig); err != nil {
			log.Printf("[WARN] tracker: update %s: %v", sig.ID, err)
		}
	}

	sum.StillActive = sum.Checked - sum.TP1Hits - sum.TP2Hits - sum.SLHits - sum.Expired
	log.Printf("[INFO] tracker: %d TP1 | %d TP2 | %d SL | %d expired | %d still active",
		sum.TP1Hits, sum.TP2Hits, sum.SLHits, sum.Expired, sum.StillActive)
	return sum, nil
}
