package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestDo_SucceedsAfterRetry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	sentinel := errors.New("still broken")
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryableErrors = func(error) bool { return false }

	calls := 0
	err := Do(context.Background(), cfg, "test", func() error {
		calls++
		return errors.New("bad request")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoWithResult_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DoWithResult(ctx, fastConfig(), "test", func() (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateDelay_CapsAtMax(t *testing.T) {
	cfg := Config{InitialDelay: time.Second, MaxDelay: 3 * time.Second, Multiplier: 2}
	assert.Equal(t, time.Second, calculateDelay(0, cfg))
	assert.Equal(t, 2*time.Second, calculateDelay(1, cfg))
	assert.Equal(t, 3*time.Second, calculateDelay(5, cfg))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(errors.New("connection reset")))
}
