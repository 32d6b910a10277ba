package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/rakshak-app/rakshak/internal/detect"
	"github.com/rakshak-app/rakshak/internal/evidence"
	"github.com/rakshak-app/rakshak/internal/redact"
	"github.com/rakshak-app/rakshak/internal/risk"
	"github.com/rakshak-app/rakshak/internal/stats"
	"github.com/rakshak-app/rakshak/internal/telemetry"
)

const smsPreviewLen = 50

// CallHandler receives each synthesized call with its classification.
type CallHandler func(call IncomingCall, result detect.CallResult)

// SMSHandler receives each synthesized SMS with its classification.
type SMSHandler func(sms IncomingSMS, result detect.Result)

// Config controls the generation loop.
type Config struct {
	// Interval between generation ticks. Defaults to 8s.
	Interval time.Duration
	// EventProbability is the chance a tick synthesizes an event, in [0,1].
	// Defaults to 0.3.
	EventProbability float64
}

// Options are the optional collaborators a Service can be wired with. Any
// nil field is simply skipped; the classifier is the only hard dependency.
type Options struct {
	Source    risk.Source
	Emitter   *Emitter
	Recorder  *evidence.Recorder
	Counters  *stats.Counters
	Telemetry *telemetry.Provider
	Feed      *Feed
	Logger    *zap.Logger
}

// Metrics counts generation activity for introspection and tests.
type Metrics struct {
	Ticks     uint64
	Generated uint64
	Calls     uint64
	SMS       uint64
	Blocked   uint64
}

// Service drives the simulated event feed. It is either Idle or Active;
// Start and Stop are idempotent, and at most one generation loop runs per
// instance. All event synthesis and status mutation happens on the loop
// goroutine, so subscribers see alerts in generation order.
type Service struct {
	cfg       Config
	classify  *detect.Classifier
	src       risk.Source
	emitter   *Emitter
	recorder  *evidence.Recorder
	counters  *stats.Counters
	telemetry *telemetry.Provider
	feed      *Feed
	logger    *zap.Logger

	ticks     atomic.Uint64
	generated atomic.Uint64
	calls     atomic.Uint64
	sms       atomic.Uint64
	blocked   atomic.Uint64

	mu        sync.Mutex
	active    bool
	cancel    context.CancelFunc
	done      chan struct{}
	onCall    CallHandler
	onSMS     SMSHandler
	autoBlock bool
}

// New builds an Idle service around the classifier.
func New(cfg Config, classifier *detect.Classifier, opts Options) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = 8 * time.Second
	}
	if cfg.EventProbability <= 0 {
		cfg.EventProbability = 0.3
	}
	if cfg.EventProbability > 1 {
		cfg.EventProbability = 1
	}
	src := opts.Source
	if src == nil {
		src = risk.DefaultSource()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:       cfg,
		classify:  classifier,
		src:       src,
		emitter:   opts.Emitter,
		recorder:  opts.Recorder,
		counters:  opts.Counters,
		telemetry: opts.Telemetry,
		feed:      opts.Feed,
		logger:    logger,
	}
}

// Start transitions Idle -> Active and begins the generation loop. Calling
// Start while Active is a no-op: the running loop and its callbacks are kept
// as they are, and no second loop is created.
func (s *Service) Start(onCall CallHandler, onSMS SMSHandler, autoBlock bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.onCall = onCall
	s.onSMS = onSMS
	s.autoBlock = autoBlock

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	s.logger.Info("monitoring started",
		zap.Duration("interval", s.cfg.Interval),
		zap.Bool("auto_block", autoBlock))

	go s.loop(ctx, s.done)
}

// Stop transitions Active -> Idle, cancels the pending tick, and clears the
// callbacks. It does not return until the loop goroutine has exited, so no
// callback fires after Stop returns. Redundant Stop is a no-op.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.onCall = nil
	s.onSMS = nil
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("monitoring stopped")
}

// IsActive reports whether the generation loop is running.
func (s *Service) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// MetricsSnapshot copies the generation counters.
func (s *Service) MetricsSnapshot() Metrics {
	return Metrics{
		Ticks:     s.ticks.Load(),
		Generated: s.generated.Load(),
		Calls:     s.calls.Load(),
		SMS:       s.sms.Load(),
		Blocked:   s.blocked.Load(),
	}
}

func (s *Service) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// The state flip and cancel happen atomically under the service
			// mutex, so a tick that raced Stop sees a cancelled context here
			// and produces nothing.
			if ctx.Err() != nil {
				return
			}
			s.tick(ctx)
		}
	}
}

func (s *Service) tick(ctx context.Context) {
	s.ticks.Inc()

	if s.src.Float64() >= s.cfg.EventProbability {
		return
	}
	s.generated.Inc()

	if s.src.Float64() > 0.5 {
		s.synthesizeCall(ctx)
	} else {
		s.synthesizeSMS(ctx)
	}
}

func (s *Service) synthesizeCall(ctx context.Context) {
	number := sampleCallers[s.src.Intn(len(sampleCallers))]
	call := IncomingCall{
		ID:          "call-" + uuid.NewString(),
		PhoneNumber: number,
		Timestamp:   time.Now(),
		Direction:   DirectionIncoming,
		Status:      CallRinging,
	}

	result := s.classify.ClassifyNumber(number)
	s.calls.Inc()
	if s.counters != nil {
		s.counters.ScanRecorded()
	}

	if s.autoBlock && result.Label == risk.LabelScam {
		call.Status = CallBlocked
		s.blocked.Inc()
		if s.counters != nil {
			s.counters.ScamBlocked()
		}
	}

	s.telemetry.RecordScan(string(ChannelCall), string(result.Label), float64(result.ProcessingTimeMs), call.Status == CallBlocked)
	s.logger.Debug("call synthesized",
		zap.String("number", redact.Number(number)),
		zap.String("label", string(result.Label)),
		zap.Int("risk_score", result.RiskScore),
		zap.String("status", string(call.Status)))

	if s.feed != nil {
		s.feed.AddCall(call, result)
	}
	s.recordEvidence(ctx, string(ChannelCall), result.Label, result.RiskScore, result.Reasons, call.Timestamp)

	alert := callAlert(call, result)
	s.publish(ctx, alert)

	s.mu.Lock()
	onCall := s.onCall
	s.mu.Unlock()
	if onCall != nil {
		onCall(call, result)
	}
}

func (s *Service) synthesizeSMS(ctx context.Context) {
	body := sampleMessages[s.src.Intn(len(sampleMessages))]
	sender := sampleCallers[s.src.Intn(len(sampleCallers))]
	sms := IncomingSMS{
		ID:        "sms-" + uuid.NewString(),
		Sender:    sender,
		Message:   body,
		Timestamp: time.Now(),
		Status:    SMSReceived,
	}

	result := s.classify.ClassifyText(body)
	s.sms.Inc()
	if s.counters != nil {
		s.counters.ScanRecorded()
	}

	if s.autoBlock && result.Label == risk.LabelScam {
		sms.Status = SMSBlocked
		s.blocked.Inc()
		if s.counters != nil {
			s.counters.ScamBlocked()
		}
	}

	s.telemetry.RecordScan(string(ChannelSMS), string(result.Label), float64(result.ProcessingTimeMs), sms.Status == SMSBlocked)
	s.logger.Debug("sms synthesized",
		zap.String("sender", redact.Number(sender)),
		zap.String("label", string(result.Label)),
		zap.String("status", string(sms.Status)))

	if s.feed != nil {
		s.feed.AddSMS(sms, result)
	}
	s.recordEvidence(ctx, string(ChannelSMS), result.Label, 0, result.Reasons, sms.Timestamp)

	alert := smsAlert(sms, result, redact.Preview(sms.Message, smsPreviewLen))
	s.publish(ctx, alert)

	s.mu.Lock()
	onSMS := s.onSMS
	s.mu.Unlock()
	if onSMS != nil {
		onSMS(sms, result)
	}
}

func (s *Service) publish(ctx context.Context, alert Alert) {
	if s.feed != nil {
		s.feed.AddAlert(alert)
	}
	s.telemetry.RecordAlert(string(alert.Channel), string(alert.Severity))
	if s.emitter != nil {
		s.emitter.Emit(ctx, &alert)
	}
}

func (s *Service) recordEvidence(ctx context.Context, channel string, label risk.Label, score int, reasons []string, ts time.Time) {
	if s.recorder == nil || label == risk.LabelSafe {
		return
	}
	receipt, err := s.recorder.Record(ctx, evidence.Entry{
		Channel:   channel,
		Label:     label,
		RiskScore: score,
		Reasons:   reasons,
		Timestamp: ts,
	})
	if err != nil {
		// Collaborator failures are reported but never invalidate the
		// classification already produced.
		s.logger.Warn("evidence recording incomplete", zap.String("channel", channel), zap.Error(err))
		return
	}
	if receipt.LedgerHandle != "" || receipt.ContentHandle != "" {
		s.logger.Debug("evidence recorded",
			zap.String("channel", channel),
			zap.String("ledger_handle", receipt.LedgerHandle),
			zap.String("content_handle", receipt.ContentHandle))
	}
}
