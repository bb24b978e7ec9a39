// internal/events/sink.go
package events

import "context"

// Sink is an append-only destination for issuance events. Implementations
// must tolerate being called concurrently; a failing sink never fails the
// issuance that produced the event.
type Sink interface {
	Publish(ctx context.Context, event CodeIssued) error
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Publish(ctx context.Context, event CodeIssued) error {
	return nil
}

// MultiSink fans one event out to several sinks and returns the first error.
type MultiSink []Sink

func (m MultiSink) Publish(ctx context.Context, event CodeIssued) error {
	var firstErr error
	for _, sink := range m {
		if err := sink.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
