package syncer

import (
	"context"
	"time"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/remote"
)

// RetryOptions tunes the backoff schedule of a [Retryer].
type RetryOptions struct {
	// MaxRetries is the number of additional attempts after the first
	// failure. The total attempt count is MaxRetries + 1.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// Multiplier grows the delay between consecutive retries.
	Multiplier float64
	// MaxDelay caps the delay regardless of the multiplier.
	MaxDelay time.Duration
}

// DefaultRetryOptions is the schedule used by the sync engine: three retries
// at 1s, 2s, 4s.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		Multiplier: 2,
		MaxDelay:   10 * time.Second,
	}
}

// Retryer re-attempts fallible remote operations with exponential backoff.
// Error classification is delegated to [remote.IsRetryable]: terminal errors
// (permission, not-found, content-blocker, offline) propagate without
// consuming a retry.
type Retryer struct {
	opts   RetryOptions
	logger *logger.Logger

	// sleep is swapped out in tests to observe delays without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryer constructs a Retryer. Zero-valued option fields fall back to
// the defaults.
func NewRetryer(opts RetryOptions, log *logger.Logger) *Retryer {
	def := DefaultRetryOptions()
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = def.MaxRetries
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = def.BaseDelay
	}
	if opts.Multiplier <= 1 {
		opts.Multiplier = def.Multiplier
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = def.MaxDelay
	}

	return &Retryer{opts: opts, logger: log, sleep: sleepCtx}
}

// WithRetry runs op, re-attempting on retryable failures per the retryer's
// schedule. It returns the first successful result, or the last error once
// retries are exhausted or a terminal error is seen. The backoff delay
// honours ctx cancellation.
func WithRetry[T any](ctx context.Context, r *Retryer, label string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= r.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := r.sleep(ctx, r.delay(attempt-1)); err != nil {
				return zero, err
			}
		}

		result, err := op(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info().Str("op", label).Int("attempt", attempt+1).Msg("operation recovered after retry")
			}
			return result, nil
		}
		lastErr = err

		if !remote.IsRetryable(err) {
			r.logger.Debug().Err(err).Str("op", label).Msg("terminal error, not retrying")
			return zero, err
		}
		r.logger.Warn().Err(err).Str("op", label).Int("attempt", attempt+1).Msg("retryable error")
	}

	r.logger.Error().Err(lastErr).Str("op", label).Int("attempts", r.opts.MaxRetries+1).Msg("retries exhausted")
	return zero, lastErr
}

// delay returns the backoff before retry number retryIdx (zero-based):
// min(MaxDelay, BaseDelay * Multiplier^retryIdx).
func (r *Retryer) delay(retryIdx int) time.Duration {
	d := r.opts.BaseDelay
	for i := 0; i < retryIdx; i++ {
		d = time.Duration(float64(d) * r.opts.Multiplier)
		if d >= r.opts.MaxDelay {
			return r.opts.MaxDelay
		}
	}
	if d > r.opts.MaxDelay {
		return r.opts.MaxDelay
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
