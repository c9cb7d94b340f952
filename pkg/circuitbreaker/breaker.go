// Package circuitbreaker stops calling a failing downstream for a while
// instead of piling up timeouts.
package circuitbreaker

import (
	"errors"
	"fmt"
	"time"

	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrOpen is returned without calling the downstream while the breaker is open
var ErrOpen = gobreaker.ErrOpenState

// Config holds circuit breaker configuration
type Config struct {
	Name        string
	MaxRequests uint32        // requests allowed through while half-open
	Interval    time.Duration // closed-state window after which counts reset
	Timeout     time.Duration // how long the breaker stays open
	MinRequests uint32        // requests in the window before the ratio is judged
	FailureRate float64       // trips at or above this ratio
}

// DefaultConfig trips after 3+ requests with a 60% failure rate and retries after 30s
func DefaultConfig(name string) Config {
	return Config{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		MinRequests: 3,
		FailureRate: 0.6,
	}
}

// New creates a breaker that logs state changes
func New(cfg Config) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// Execute runs fn through cb
func Execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("circuit breaker %s: unexpected result type %T", cb.Name(), result)
	}
	return typed, nil
}

// IsOpen reports whether err came from an open or saturated half-open breaker
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
