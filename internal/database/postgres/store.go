// Package postgres is the PostgreSQL collaborator backend built on pgx.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	backendName = "postgres"

	uniqueViolation = "23505"
)

// Store implements repository.Store on a pgx pool
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps an open pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, now: time.Now}
}

func (s *Store) Name() string { return backendName }

// Ping checks if the database connection is alive
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
		logger.Info("PostgreSQL connection pool closed")
	}
}

// observe records metrics and a log line for one operation
func observe(ctx context.Context, operation string, start time.Time, err error) {
	metrics.ObserveStore(backendName, operation, start, err)
	duration := metrics.MeasureDuration(start)
	if err != nil && !errors.Is(err, repository.ErrNotFound) && !errors.Is(err, repository.ErrDuplicateUser) {
		logger.LogAPICall(ctx, backendName, operation, "error", duration, zap.Error(err))
		return
	}
	logger.LogAPICall(ctx, backendName, operation, "success", duration)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
