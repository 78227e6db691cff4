package store

import (
	"fmt"
	"sync"
	"time"

	"SignalSentinel/internal/model"

	"github.com/google/uuid"
)

// MemoryStore is an in-process SignalStore used in tests and dry runs.
type MemoryStore struct {
	mu      sync.Mutex
	active  []model.TrackedSignal
	history []model.TrackedSignal
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Append(sig *model.TradeSignal) (*model.TrackedSignal, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.active {
		existing := &m.active[i]
		if existing.Symbol == sig.Symbol && existing.Direction == sig.Direction &&
			existing.Status == model.StatusActive {
			return existing, false, nil
		}
	}

	tracked := model.TrackedSignal{
		TradeSignal:  *sig,
		ID:           uuid.NewString()[:8],
		Status:       model.StatusActive,
		CurrentPrice: sig.Entry,
		HighestPrice: sig.Entry,
		LowestPrice:  sig.Entry,
	}
	if tracked.CreatedAt.IsZero() {
		tracked.CreatedAt = time.Now().UTC()
	}
	m.active = append(m.active, tracked)
	return &tracked, true, nil
}

func (m *MemoryStore) LoadAll() ([]model.TrackedSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.TrackedSignal, len(m.active))
	copy(out, m.active)
	return out, nil
}

func (m *MemoryStore) LoadOpen() ([]model.TrackedSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var open []model.TrackedSignal
	for _, sig := range m.active {
		if sig.Status.Open() {
			open = append(open, sig)
		}
	}
	return open, nil
}

func (m *MemoryStore) Update(id string, sig *model.TrackedSignal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.active {
		if m.active[i].ID == id {
			m.active[i] = *sig
			return nil
		}
	}
	return fmt.Errorf("signal %s not found", id)
}

func (m *MemoryStore) ArchiveResolved() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var still []model.TrackedSignal
	moved := 0
	for _, sig := range m.active {
		if sig.Status.Terminal() {
			m.history = append(m.history, sig)
			moved++
		} else {
			still = append(still, sig)
		}
	}
	m.active = still
	return moved, nil
}
