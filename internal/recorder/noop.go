package recorder

import "SignalSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSignal(_ *model.TrackedSignal) error    { return nil }
func (n *NoopRecorder) RecordStatusChange(_ *StatusChange) error     { return nil }
func (n *NoopRecorder) RecordRunSummary(_ *model.RunSummary) error   { return nil }
func (n *NoopRecorder) Close() error                                 { return nil }
