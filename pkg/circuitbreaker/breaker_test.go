package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_TripsAfterFailures(t *testing.T) {
	cfg := DefaultConfig("webhook")
	cfg.Timeout = time.Hour
	cb := New(cfg)

	boom := errors.New("boom")
	calls := 0
	fail := func() (int, error) {
		calls++
		return 0, boom
	}

	for i := 0; i < 3; i++ {
		_, err := Execute(cb, fail)
		require.ErrorIs(t, err, boom)
	}

	_, err := Execute(cb, fail)
	assert.True(t, IsOpen(err))
	assert.Equal(t, 3, calls)
}

func TestExecute_PassesResults(t *testing.T) {
	cb := New(DefaultConfig("ok"))

	got, err := Execute(cb, func() (string, error) { return "done", nil })
	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.False(t, IsOpen(nil))
}

func TestExecute_StaysClosedBelowMinRequests(t *testing.T) {
	cb := New(DefaultConfig("few"))

	for i := 0; i < 2; i++ {
		_, err := Execute(cb, func() (int, error) { return 0, errors.New("x") })
		assert.False(t, IsOpen(err))
	}
	_, err := Execute(cb, func() (int, error) { return 1, nil })
	assert.NoError(t, err)
}
