package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sink consumes alerts (file, webhook, collector, ...).
type Sink interface {
	Name() string
	Deliver(context.Context, *Alert) error
	Close(context.Context) error
}

// EmitterMetrics holds delivery counters.
type EmitterMetrics struct {
	enqueued uint64
	dropped  uint64

	sinkSuccess map[string]uint64
	sinkFailure map[string]uint64
}

// Enqueued reports alerts accepted onto the queue.
func (m *EmitterMetrics) Enqueued() uint64 { return m.enqueued }

// Dropped reports alerts rejected because the queue was full or closed.
func (m *EmitterMetrics) Dropped() uint64 { return m.dropped }

// SinkSuccess reports successful deliveries for a named sink.
func (m *EmitterMetrics) SinkSuccess(name string) uint64 {
	if m == nil {
		return 0
	}
	return m.sinkSuccess[name]
}

// SinkFailure reports failed deliveries for a named sink.
func (m *EmitterMetrics) SinkFailure(name string) uint64 {
	if m == nil {
		return 0
	}
	return m.sinkFailure[name]
}

func (m *EmitterMetrics) snapshot() EmitterMetrics {
	out := EmitterMetrics{
		enqueued:    m.enqueued,
		dropped:     m.dropped,
		sinkSuccess: make(map[string]uint64, len(m.sinkSuccess)),
		sinkFailure: make(map[string]uint64, len(m.sinkFailure)),
	}
	for k, v := range m.sinkSuccess {
		out.sinkSuccess[k] = v
	}
	for k, v := range m.sinkFailure {
		out.sinkFailure[k] = v
	}
	return out
}

// Emitter buffers alerts off the generation tick and delivers them to every
// sink from background workers. Delivery order per worker follows enqueue
// order; the default single worker keeps it strictly FIFO.
type Emitter struct {
	queue           chan *Alert
	sinks           []Sink
	logger          *zap.Logger
	metrics         *EmitterMetrics
	shutdownTimeout time.Duration

	mu        sync.RWMutex
	metricsMu sync.Mutex
	closed    bool
	wg        sync.WaitGroup
}

// EmitterConfig controls queue sizing and shutdown behavior.
type EmitterConfig struct {
	QueueSize       int
	Workers         int
	ShutdownTimeout time.Duration
}

// NewEmitter starts background workers delivering to the provided sinks.
func NewEmitter(cfg EmitterConfig, sinks []Sink, logger *zap.Logger) *Emitter {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &EmitterMetrics{
		sinkSuccess: make(map[string]uint64, len(sinks)),
		sinkFailure: make(map[string]uint64, len(sinks)),
	}
	for _, s := range sinks {
		m.sinkSuccess[s.Name()] = 0
		m.sinkFailure[s.Name()] = 0
	}

	em := &Emitter{
		queue:           make(chan *Alert, queueSize),
		sinks:           sinks,
		logger:          logger,
		metrics:         m,
		shutdownTimeout: shutdownTimeout,
	}
	for i := 0; i < workers; i++ {
		em.wg.Add(1)
		go em.worker()
	}
	return em
}

// Emit enqueues without blocking the tick; full queues drop.
func (e *Emitter) Emit(ctx context.Context, a *Alert) {
	if e == nil || a == nil {
		return
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		e.metricsMu.Lock()
		e.metrics.dropped++
		e.metricsMu.Unlock()
		return
	}

	select {
	case e.queue <- a:
		e.metricsMu.Lock()
		e.metrics.enqueued++
		e.metricsMu.Unlock()
	default:
		e.metricsMu.Lock()
		e.metrics.dropped++
		e.metricsMu.Unlock()
	}
}

// Close stops accepting alerts and waits briefly for the queue to drain.
func (e *Emitter) Close(ctx context.Context) {
	if e == nil {
		return
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	waitCtx := ctx
	if waitCtx == nil {
		waitCtx = context.Background()
	}
	var cancel context.CancelFunc
	waitCtx, cancel = context.WithTimeout(waitCtx, e.shutdownTimeout)
	defer cancel()

	select {
	case <-done:
	case <-waitCtx.Done():
	}

	for _, s := range e.sinks {
		if err := s.Close(waitCtx); err != nil {
			e.logger.Warn("alert sink close failed", zap.String("sink", s.Name()), zap.Error(err))
		}
	}
}

// MetricsSnapshot safely copies current counters.
func (e *Emitter) MetricsSnapshot() EmitterMetrics {
	if e == nil || e.metrics == nil {
		return EmitterMetrics{}
	}
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()
	return e.metrics.snapshot()
}

func (e *Emitter) worker() {
	defer e.wg.Done()
	for a := range e.queue {
		e.deliver(a)
	}
}

func (e *Emitter) deliver(a *Alert) {
	for _, s := range e.sinks {
		if err := s.Deliver(context.Background(), a); err != nil {
			e.logger.Warn("alert sink delivery failed", zap.String("sink", s.Name()), zap.Error(err))
			e.metricsMu.Lock()
			e.metrics.sinkFailure[s.Name()]++
			e.metricsMu.Unlock()
			continue
		}
		e.metricsMu.Lock()
		e.metrics.sinkSuccess[s.Name()]++
		e.metricsMu.Unlock()
	}
}
