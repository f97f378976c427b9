package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/remote"
)

// newTestRetryer записывает задержки вместо реального сна.
func newTestRetryer(opts RetryOptions) (*Retryer, *[]time.Duration) {
	r := NewRetryer(opts, logger.Nop())
	delays := &[]time.Duration{}
	r.sleep = func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return r, delays
}

func TestWithRetry_SuccessFirstAttempt(t *testing.T) {
	r, delays := newTestRetryer(RetryOptions{})
	attempts := 0

	result, err := WithRetry(context.Background(), r, "op", func(context.Context) (string, error) {
		attempts++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *delays)
}

func TestWithRetry_RecoversAfterTransientFailures(t *testing.T) {
	r, delays := newTestRetryer(RetryOptions{MaxRetries: 3, BaseDelay: time.Second, Multiplier: 2, MaxDelay: 10 * time.Second})
	attempts := 0

	result, err := WithRetry(context.Background(), r, "op", func(context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, remote.NewError(remote.CodeUnavailable, "op", nil)
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *delays)
}

func TestWithRetry_ExhaustsRetries(t *testing.T) {
	r, delays := newTestRetryer(RetryOptions{MaxRetries: 3, BaseDelay: time.Second, Multiplier: 2, MaxDelay: 10 * time.Second})
	attempts := 0
	failure := remote.NewError(remote.CodeUnavailable, "op", errors.New("down"))

	_, err := WithRetry(context.Background(), r, "op", func(context.Context) (struct{}, error) {
		attempts++
		return struct{}{}, failure
	})

	// initial attempt + 3 retries
	assert.Equal(t, 4, attempts)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, *delays)
}

func TestWithRetry_DelaysCappedAtMax(t *testing.T) {
	r, delays := newTestRetryer(RetryOptions{MaxRetries: 6, BaseDelay: time.Second, Multiplier: 2, MaxDelay: 10 * time.Second})

	_, _ = WithRetry(context.Background(), r, "op", func(context.Context) (struct{}, error) {
		return struct{}{}, remote.NewError(remote.CodeUnavailable, "op", nil)
	})

	require.Len(t, *delays, 6)
	prev := time.Duration(0)
	for _, d := range *delays {
		assert.GreaterOrEqual(t, d, prev, "delays must be non-decreasing")
		assert.LessOrEqual(t, d, 10*time.Second)
		prev = d
	}
	assert.Equal(t, 10*time.Second, (*delays)[5])
}

func TestWithRetry_TerminalErrorNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"blocked by client", errors.New("request failed: net::ERR_BLOCKED_BY_CLIENT")},
		{"permission denied", remote.NewError(remote.CodePermissionDenied, "op", nil)},
		{"not found", remote.NewError(remote.CodeNotFound, "op", nil)},
		{"offline", remote.NewError(remote.CodeOffline, "op", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, delays := newTestRetryer(RetryOptions{})
			attempts := 0

			_, err := WithRetry(context.Background(), r, "op", func(context.Context) (struct{}, error) {
				attempts++
				return struct{}{}, tt.err
			})

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, attempts, "terminal errors must not consume retries")
			assert.Empty(t, *delays)
		})
	}
}

func TestWithRetry_ContextCancelledDuringBackoff(t *testing.T) {
	r := NewRetryer(RetryOptions{MaxRetries: 3, BaseDelay: time.Minute}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(ctx, r, "op", func(context.Context) (struct{}, error) {
		attempts++
		return struct{}{}, remote.NewError(remote.CodeUnavailable, "op", nil)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestNewRetryer_Defaults(t *testing.T) {
	r := NewRetryer(RetryOptions{}, logger.Nop())

	assert.Equal(t, 3, r.opts.MaxRetries)
	assert.Equal(t, time.Second, r.opts.BaseDelay)
	assert.Equal(t, 2.0, r.opts.Multiplier)
	assert.Equal(t, 10*time.Second, r.opts.MaxDelay)
}
