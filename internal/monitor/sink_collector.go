package monitor

import (
	"context"
	"sync"
)

// CollectorSink keeps delivered alerts in memory. UIs poll it for the live
// alert list; tests use it in place of real sinks.
type CollectorSink struct {
	mu     sync.Mutex
	alerts []Alert
}

// NewCollectorSink returns an empty collector.
func NewCollectorSink() *CollectorSink {
	return &CollectorSink{}
}

func (s *CollectorSink) Name() string { return "collector" }

func (s *CollectorSink) Deliver(_ context.Context, a *Alert) error {
	if a == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, *a)
	return nil
}

func (s *CollectorSink) Close(context.Context) error { return nil }

// Alerts copies the collected alerts in delivery order.
func (s *CollectorSink) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}
