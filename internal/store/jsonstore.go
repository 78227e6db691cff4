package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"SignalSentinel/internal/model"

	"github.com/google/uuid"
)

// JSONStore keeps tracked signals in two JSON files: one for the active set
// and one for archived history. A missing or corrupted file degrades to an
// empty store rather than failing the batch.
type JSONStore struct {
	mu          sync.Mutex
	activePath  string
	historyPath string
	now         func() time.Time
}

// NewJSONStore creates a store over the given file paths.
func NewJSONStore(activePath, historyPath string) *JSONStore {
	return &JSONStore{activePath: activePath, historyPath: historyPath}
}

func (s *JSONStore) Append(sig *model.TradeSignal) (*model.TrackedSignal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.load(s.activePath)
	for i := range active {
		existing := &active[i]
		if existing.Symbol == sig.Symbol && existing.Direction == sig.Direction &&
			existing.Status == model.StatusActive {
			return existing, false, nil
		}
	}

	createdAt := sig.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.timeNow()
	}
	tracked := model.TrackedSignal{
		TradeSignal:  *sig,
		ID:           uuid.NewString()[:8],
		Status:       model.StatusActive,
		CurrentPrice: sig.Entry,
		HighestPrice: sig.Entry,
		LowestPrice:  sig.Entry,
	}
	tracked.CreatedAt = createdAt

	active = append(active, tracked)
	if err := s.save(s.activePath, active); err != nil {
		return nil, false, err
	}
	return &tracked, true, nil
}

func (s *JSONStore) LoadAll() ([]model.TrackedSignal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(s.activePath), nil
}

func (s *JSONStore) LoadOpen() ([]model.TrackedSignal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var open []model.TrackedSignal
	for _, sig := range s.load(s.activePath) {
		if sig.Status.Open() {
			open = append(open, sig)
		}
	}
	return open, nil
}

func (s *JSONStore) Update(id string, sig *model.TrackedSignal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.load(s.activePath)
	for i := range active {
		if active[i].ID == id {
			active[i] = *sig
			return s.save(s.activePath, active)
		}
	}
	return fmt.Errorf("signal %s not found", id)
}

func (s *JSONStore) ArchiveResolved() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.load(s.activePath)
	history := s.load(s.historyPath)

	var still []model.TrackedSignal
	moved := 0
	for _, sig := range active {
		if sig.Status.Terminal() {
			history = append(history, sig)
			moved++
		} else {
			still = append(still, sig)
		}
	}
	if moved == 0 {
		return 0, nil
	}
	if err := s.save(s.activePath, still); err != nil {
		return 0, err
	}
	if err := s.save(s.historyPath, history); err != nil {
		return 0, err
	}
	return moved, nil
}

// History returns the archived signals.
func (s *JSONStore) History() []model.TrackedSignal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(s.historyPath)
}

func (s *JSONStore) load(path string) []model.TrackedSignal {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read %s: %v, treating as empty", path, err)
		}
		return nil
	}
	var signals []model.TrackedSignal
	if err := json.Unmarshal(data, &signals); err != nil {
		log.Printf("[WARN] corrupted store file %s: %v, treating as empty", path, err)
		return nil
	}
	return signals
}

func (s *JSONStore) save(path string, signals []model.TrackedSignal) error {
	if signals == nil {
		signals = []model.TrackedSignal{}
	}
	data, err := json.MarshalIndent(signals, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal signals: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (s *JSONStore) timeNow() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}
