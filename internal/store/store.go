package store

import "SignalSentinel/internal/model"

// SignalStore persists tracked signals. The pipeline appends, the tracker
// updates by ID, reporting archives; nothing else writes.
type SignalStore interface {
	// Append records a new signal and returns its tracked form. If an
	// ACTIVE signal for the same symbol and direction already exists, the
	// existing record is returned and created is false.
	Append(sig *model.TradeSignal) (tracked *model.TrackedSignal, created bool, err error)

	// LoadAll returns every tracked signal, resolved or not.
	LoadAll() ([]model.TrackedSignal, error)

	// LoadOpen returns the signals that still need price tracking
	// (ACTIVE and TP1_HIT).
	LoadOpen() ([]model.TrackedSignal, error)

	// Update replaces the stored record with the given ID.
	Update(id string, sig *model.TrackedSignal) error

	// ArchiveResolved moves signals in a terminal status out of the active
	// set and returns how many moved.
	ArchiveResolved() (int, error)
}
