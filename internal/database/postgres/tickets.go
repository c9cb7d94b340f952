package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
)

const ticketColumns = `id, title, category, status, priority, submitted_by, submitted_at, last_update, description`

// ticketLockKey serialises id allocation across API instances
const ticketLockKey = 72_001

func (s *Store) ListTickets(ctx context.Context) (tickets []*models.Ticket, err error) {
	start := time.Now()
	defer func() { observe(ctx, "listTickets", start, err) }()

	rows, err := s.pool.Query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	tickets = []*models.Ticket{}
	for rows.Next() {
		t, scanErr := scanTicket(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", scanErr)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (s *Store) CreateTicket(ctx context.Context, t *models.Ticket) (created *models.Ticket, err error) {
	start := time.Now()
	defer func() { observe(ctx, "createTicket", start, err) }()

	year := t.SubmittedAt.Year()
	prefix := models.TicketPrefix(year)

	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, lockErr := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ticketLockKey); lockErr != nil {
			return lockErr
		}

		var last *string
		if scanErr := tx.QueryRow(ctx,
			`SELECT max(id) FROM tickets WHERE id LIKE $1 || '%'`, prefix).Scan(&last); scanErr != nil {
			return scanErr
		}

		seq := 1
		if last != nil {
			if n, convErr := strconv.Atoi(strings.TrimPrefix(*last, prefix)); convErr == nil {
				seq = n + 1
			}
		}

		var scanErr error
		created, scanErr = scanTicket(tx.QueryRow(ctx, `
			INSERT INTO tickets (`+ticketColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING `+ticketColumns,
			models.TicketID(year, seq), t.Title, t.Category, t.Status, t.Priority, t.SubmittedBy,
			t.SubmittedAt, t.LastUpdate, t.Description))
		return scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateTicketStatus(ctx context.Context, id, status string, at time.Time) (updated *models.Ticket, err error) {
	start := time.Now()
	defer func() { observe(ctx, "updateTicketStatus", start, err) }()

	updated, err = scanTicket(s.pool.QueryRow(ctx, `
		UPDATE tickets SET status = $2, last_update = $3 WHERE id = $1
		RETURNING `+ticketColumns, id, status, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return updated, nil
}

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var t models.Ticket
	if err := row.Scan(&t.ID, &t.Title, &t.Category, &t.Status, &t.Priority, &t.SubmittedBy,
		&t.SubmittedAt, &t.LastUpdate, &t.Description); err != nil {
		return nil, err
	}
	return &t, nil
}
