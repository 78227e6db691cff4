package recorder

import "SignalSentinel/internal/model"

// StatusChange records one lifecycle transition observed by the tracker.
type StatusChange struct {
	SignalID string
	Symbol   string
	From     model.SignalStatus
	To       model.SignalStatus
	Price    float64
	PnL      float64
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSignal(sig *model.TrackedSignal) error
	RecordStatusChange(evt *StatusChange) error
	RecordRunSummary(sum *model.RunSummary) error
	Close() error
}
