package tracker

import (
	"errors"
	"testing"
	"time"

	"SignalSentinel/internal/model"
	"SignalSentinel/internal/store"
)

// stubFetcher serves canned windows per symbol and can fail selectively.
type stubFetcher struct {
	windows map[string][]model.OHLCV
	failing map[string]bool
	calls   map[string]int
}

func (f *stubFetcher) FetchWindow(symbol string, _ time.Time) (*model.PriceWindow, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[symbol]++
	if f.failing[symbol] {
		return nil, errors.New("feed unavailable")
	}
	return &model.PriceWindow{Symbol: symbol, Bars: f.windows[symbol]}, nil
}

func seedSignal(t *testing.T, st store.SignalStore, symbol string, entry, sl, tp1, tp2 float64) *model.TrackedSignal {
	t.Helper()
	sig, created, err := st.Append(&model.TradeSignal{
		Symbol:    symbol,
		Direction: model.Buy,
		Entry:     entry,
		StopLoss:  sl,
		TP1:       tp1,
		TP2:       tp2,
		CreatedAt: trackerNow.Add(-24 * time.Hour),
	})
	if err != nil || !created {
		t.Fatalf("seed %s: created=%v err=%v", symbol, created, err)
	}
	return sig
}

func TestRun_FetchFailureSkipsSymbolOnly(t *testing.T) {
	st := store.NewMemoryStore()
	seedSignal(t, st, "GC=F", 100, 95, 105, 110)
	seedSignal(t, st, "CL=F", 70, 68, 72, 74)

	fetcher := &stubFetcher{
		windows: map[string][]model.OHLCV{
			"GC=F": window(98, 106, 104), // TP1 crossed
		},
		failing: map[string]bool{"CL=F": true},
	}
	r := &Runner{Store: st, Fetcher: fetcher, Tracker: testTracker()}

	sum, err := r.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Checked != 2 {
		t.Errorf("checked = %d, want 2", sum.Checked)
	}
	if sum.TP1Hits != 1 {
		t.Errorf("tp1 hits = %d, want 1", sum.TP1Hits)
	}

	open, _ := st.LoadOpen()
	for _, sig := range open {
		switch sig.Symbol {
		case "GC=F":
			if sig.Status != model.StatusTP1Hit {
				t.Errorf("GC=F status = %s, want TP1_HIT", sig.Status)
			}
		case "CL=F":
			if sig.Status != model.StatusActive || sig.ChecksCount != 0 {
				t.Errorf("CL=F must be untouched after its fetch failed, got %s/%d",
					sig.Status, sig.ChecksCount)
			}
		}
	}
}

func TestRun_OneFetchPerSymbol(t *testing.T) {
	st := store.NewMemoryStore()
	seedSignal(t, st, "GC=F", 100, 95, 110, 120)
	sell, _, err := st.Append(&model.TradeSignal{
		Symbol:    "GC=F",
		Direction: model.Sell,
		Entry:     100,
		StopLoss:  104,
		TP1:       96,
		TP2:       92,
		CreatedAt: trackerNow.Add(-48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seed sell: %v", err)
	}
	_ = sell

	fetcher := &stubFetcher{
		windows: map[string][]model.OHLCV{"GC=F": window(99, 101, 100)},
	}
	r := &Runner{Store: st, Fetcher: fetcher, Tracker: testTracker()}
	if _, err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if fetcher.calls["GC=F"] != 1 {
		t.Errorf("fetches for GC=F = %d, want 1 shared across signals", fetcher.calls["GC=F"])
	}
}

func TestRun_SummaryCounts(t *testing.T) {
	st := store.NewMemoryStore()
	seedSignal(t, st, "GC=F", 100, 95, 105, 110)  // will hit TP2
	seedSignal(t, st, "CL=F", 70, 68, 72, 74)     // will hit SL
	seedSignal(t, st, "SI=F", 30, 29, 31, 32)     // stays active

	fetcher := &stubFetcher{
		windows: map[string][]model.OHLCV{
			"GC=F": window(98, 112, 111),
			"CL=F": window(67.5, 71, 68),
			"SI=F": window(29.5, 30.5, 30.2),
		},
	}
	r := &Runner{Store: st, Fetcher: fetcher, Tracker: testTracker()}
	sum, err := r.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.TP2Hits != 1 || sum.SLHits != 1 || sum.StillActive != 1 {
		t.Errorf("summary = %+v, want one TP2, one SL, one active", sum)
	}
}

func TestRun_OnChangeCallback(t *testing.T) {
	st := store.NewMemoryStore()
	seedSignal(t, st, "GC=F", 100, 95, 105, 110)

	var gotFrom model.SignalStatus
	var gotTo model.SignalStatus
	r := &Runner{
		Store: st,
		Fetcher: &stubFetcher{
			windows: map[string][]model.OHLCV{"GC=F": window(98, 106, 104)},
		},
		Tracker: testTracker(),
		OnChange: func(sig *model.TrackedSignal, from model.SignalStatus) {
			gotFrom, gotTo = from, sig.Status
		},
	}
	if _, err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if gotFrom != model.StatusActive || gotTo != model.StatusTP1Hit {
		t.Errorf("callback saw %s -> %s, want ACTIVE -> TP1_HIT", gotFrom, gotTo)
	}
}
