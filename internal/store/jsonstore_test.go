package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"SignalSentinel/internal/model"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	dir := t.TempDir()
	return NewJSONStore(filepath.Join(dir, "signals.json"), filepath.Join(dir, "history.json"))
}

func sampleSignal(symbol string, dir model.Direction) *model.TradeSignal {
	return &model.TradeSignal{
		Symbol:    symbol,
		Name:      "Gold Futures",
		Direction: dir,
		Pattern:   model.PatternEMACrossover,
		Score:     6,
		Entry:     2400,
		StopLoss:  2385,
		TP1:       2420,
		TP2:       2430,
		CreatedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestAppend_AssignsIdentity(t *testing.T) {
	s := newTestStore(t)
	tracked, created, err := s.Append(sampleSignal("GC=F", model.Buy))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if !created {
		t.Fatal("expected created")
	}
	if len(tracked.ID) != 8 {
		t.Errorf("id = %q, want 8 chars", tracked.ID)
	}
	if tracked.Status != model.StatusActive {
		t.Errorf("status = %s, want ACTIVE", tracked.Status)
	}
	if tracked.CurrentPrice != 2400 || tracked.HighestPrice != 2400 || tracked.LowestPrice != 2400 {
		t.Error("price trackers must seed at entry")
	}
}

func TestAppend_DeduplicatesActive(t *testing.T) {
	s := newTestStore(t)
	first, _, err := s.Append(sampleSignal("GC=F", model.Buy))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	dup, created, err := s.Append(sampleSignal("GC=F", model.Buy))
	if err != nil {
		t.Fatalf("append dup: %v", err)
	}
	if created {
		t.Error("duplicate active signal must not be created")
	}
	if dup.ID != first.ID {
		t.Errorf("dedup returned %s, want existing %s", dup.ID, first.ID)
	}

	// Opposite direction on the same symbol is a separate position.
	_, created, err = s.Append(sampleSignal("GC=F", model.Sell))
	if err != nil {
		t.Fatalf("append sell: %v", err)
	}
	if !created {
		t.Error("opposite direction must not be deduplicated")
	}
}

func TestAppend_AllowsNewAfterResolution(t *testing.T) {
	s := newTestStore(t)
	first, _, err := s.Append(sampleSignal("GC=F", model.Buy))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	first.Status = model.StatusSLHit
	if err := s.Update(first.ID, first); err != nil {
		t.Fatalf("update: %v", err)
	}

	_, created, err := s.Append(sampleSignal("GC=F", model.Buy))
	if err != nil {
		t.Fatalf("append second: %v", err)
	}
	if !created {
		t.Error("resolved signal must not block a new one")
	}
}

func TestLoadOpen_FiltersTerminal(t *testing.T) {
	s := newTestStore(t)
	a, _, _ := s.Append(sampleSignal("GC=F", model.Buy))
	b, _, _ := s.Append(sampleSignal("CL=F", model.Buy))
	c, _, _ := s.Append(sampleSignal("SI=F", model.Buy))

	a.Status = model.StatusTP1Hit
	if err := s.Update(a.ID, a); err != nil {
		t.Fatal(err)
	}
	b.Status = model.StatusTP2Hit
	if err := s.Update(b.ID, b); err != nil {
		t.Fatal(err)
	}
	_ = c

	open, err := s.LoadOpen()
	if err != nil {
		t.Fatalf("load open: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("open = %d, want 2 (ACTIVE and TP1_HIT)", len(open))
	}
	for _, sig := range open {
		if !sig.Status.Open() {
			t.Errorf("%s leaked into the open set with status %s", sig.Symbol, sig.Status)
		}
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	s := newTestStore(t)
	sig := &model.TrackedSignal{ID: "missing1"}
	if err := s.Update("missing1", sig); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestArchiveResolved(t *testing.T) {
	s := newTestStore(t)
	a, _, _ := s.Append(sampleSignal("GC=F", model.Buy))
	s.Append(sampleSignal("CL=F", model.Buy))

	a.Status = model.StatusSLHit
	if err := s.Update(a.ID, a); err != nil {
		t.Fatal(err)
	}

	moved, err := s.ArchiveResolved()
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if moved != 1 {
		t.Errorf("moved = %d, want 1", moved)
	}
	all, _ := s.LoadAll()
	if len(all) != 1 || all[0].Symbol != "CL=F" {
		t.Errorf("active set after archive = %+v", all)
	}
	hist := s.History()
	if len(hist) != 1 || hist[0].ID != a.ID {
		t.Errorf("history after archive = %+v", hist)
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	all, err := s.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("got %d signals from a missing file", len(all))
	}
}

func TestLoad_CorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signals.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewJSONStore(path, filepath.Join(dir, "history.json"))

	all, err := s.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("corrupt file must degrade to empty, got %d", len(all))
	}

	// The store stays writable afterwards.
	if _, created, err := s.Append(sampleSignal("GC=F", model.Buy)); err != nil || !created {
		t.Errorf("append after corruption: created=%v err=%v", created, err)
	}
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, "signals.json")
	history := filepath.Join(dir, "history.json")

	s := NewJSONStore(active, history)
	tracked, _, err := s.Append(sampleSignal("GC=F", model.Buy))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	reopened := NewJSONStore(active, history)
	all, err := reopened.LoadAll()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(all) != 1 || all[0].ID != tracked.ID {
		t.Fatalf("reloaded = %+v, want the stored signal", all)
	}
	if !all[0].CreatedAt.Equal(tracked.CreatedAt) {
		t.Error("created-at timestamp drifted through persistence")
	}
}
