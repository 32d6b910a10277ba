package evidence

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Settings are the operator toggles the recorder honors. They mirror the
// persisted user settings owned by the surrounding app; the core only reads
// them to decide which collaborators to invoke.
type Settings struct {
	VoiceAssistant bool
	BlockchainLog  bool
	IPFSUpload     bool
}

// Receipt carries whatever handles were obtained. Either field may be empty
// when the matching toggle is off or the collaborator failed.
type Receipt struct {
	LedgerHandle  string `json:"ledger_handle,omitempty"`
	ContentHandle string `json:"content_handle,omitempty"`
}

// Recorder fans an entry out to the enabled collaborators with a short
// retry budget per call. Errors are joined and reported to the caller, but
// a partial receipt is still returned.
type Recorder struct {
	ledger   Ledger
	store    ContentStore
	settings Settings
	logger   *zap.Logger

	backoff    time.Duration
	maxRetries uint64
}

// NewRecorder wires the collaborators behind the settings toggles.
func NewRecorder(ledger Ledger, store ContentStore, settings Settings, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		ledger:     ledger,
		store:      store,
		settings:   settings,
		logger:     logger,
		backoff:    50 * time.Millisecond,
		maxRetries: 2,
	}
}

// Record invokes the enabled collaborators for a non-safe classification.
func (r *Recorder) Record(ctx context.Context, e Entry) (Receipt, error) {
	var (
		receipt Receipt
		errs    []error
	)

	if r.settings.BlockchainLog && r.ledger != nil {
		handle, err := r.call(ctx, func(ctx context.Context) (string, error) {
			return r.ledger.Append(ctx, e)
		})
		if err != nil {
			r.logger.Warn("ledger append failed", zap.String("channel", e.Channel), zap.Error(err))
			errs = append(errs, err)
		} else {
			receipt.LedgerHandle = handle
		}
	}

	if r.settings.IPFSUpload && r.store != nil {
		handle, err := r.call(ctx, func(ctx context.Context) (string, error) {
			return r.store.Put(ctx, e)
		})
		if err != nil {
			r.logger.Warn("content store put failed", zap.String("channel", e.Channel), zap.Error(err))
			errs = append(errs, err)
		} else {
			receipt.ContentHandle = handle
		}
	}

	return receipt, errors.Join(errs...)
}

func (r *Recorder) call(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	var handle string
	b := retry.WithMaxRetries(r.maxRetries, retry.NewConstant(r.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		h, err := fn(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		handle = h
		return nil
	})
	return handle, err
}
