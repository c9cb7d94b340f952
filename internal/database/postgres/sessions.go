package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
)

const sessionSelect = `
	SELECT s.id, s.title, s.description, s.mentor_id, s.mentor_name, s.area, s.date_time,
		s.duration_minutes, s.language, s.status,
		ARRAY(SELECT a.user_id FROM session_attendees a WHERE a.session_id = s.id ORDER BY a.joined_at) AS attendees
	FROM sessions s`

func (s *Store) ListSessions(ctx context.Context) (sessions []*models.Session, err error) {
	start := time.Now()
	defer func() { observe(ctx, "listSessions", start, err) }()

	return s.querySessions(ctx, sessionSelect+` ORDER BY s.date_time`)
}

func (s *Store) GetUserSessions(ctx context.Context, userID string, role models.Role) (sessions []*models.Session, err error) {
	start := time.Now()
	defer func() { observe(ctx, "getUserSessions", start, err) }()

	switch role {
	case models.RoleMentee:
		return s.querySessions(ctx, sessionSelect+`
			WHERE EXISTS (SELECT 1 FROM session_attendees a WHERE a.session_id = s.id AND a.user_id = $1)
			ORDER BY s.date_time`, userID)
	case models.RoleMentor:
		return s.querySessions(ctx, sessionSelect+` WHERE s.mentor_id = $1 ORDER BY s.date_time`, userID)
	default:
		return s.querySessions(ctx, sessionSelect+` ORDER BY s.date_time`)
	}
}

func (s *Store) GetSession(ctx context.Context, id string) (sess *models.Session, err error) {
	start := time.Now()
	defer func() { observe(ctx, "getSession", start, err) }()

	sessions, err := s.querySessions(ctx, sessionSelect+` WHERE s.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, repository.ErrNotFound
	}
	return sessions[0], nil
}

func (s *Store) CreateSession(ctx context.Context, sess *models.Session) (created *models.Session, err error) {
	start := time.Now()
	defer func() { observe(ctx, "createSession", start, err) }()

	id := sess.ID
	if id == "" {
		id = uuid.NewString()
	}

	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, `
			INSERT INTO sessions (id, title, description, mentor_id, mentor_name, area, date_time,
				duration_minutes, language, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, sess.Title, sess.Description, sess.MentorID, sess.MentorName, sess.Area,
			sess.DateTime, sess.DurationMin, sess.Language, string(sess.Status))
		if execErr != nil {
			return execErr
		}

		for i, r := range sess.Resources {
			if _, execErr = tx.Exec(ctx,
				`INSERT INTO session_resources (session_id, resource_id, position) VALUES ($1, $2, $3)`,
				id, r.ID, i); execErr != nil {
				return execErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sessions, err := s.querySessions(ctx, sessionSelect+` WHERE s.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, repository.ErrNotFound
	}
	return sessions[0], nil
}

func (s *Store) AddAttendee(ctx context.Context, sessionID, userID string) (sess *models.Session, err error) {
	start := time.Now()
	defer func() { observe(ctx, "addAttendee", start, err) }()

	_, err = s.pool.Exec(ctx, `
		INSERT INTO session_attendees (session_id, user_id, joined_at)
		SELECT id, $2, $3 FROM sessions WHERE id = $1
		ON CONFLICT (session_id, user_id) DO NOTHING`,
		sessionID, userID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to add attendee: %w", err)
	}

	sessions, err := s.querySessions(ctx, sessionSelect+` WHERE s.id = $1`, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, repository.ErrNotFound
	}
	return sessions[0], nil
}

func (s *Store) AddFeedback(ctx context.Context, fb *models.Feedback) (err error) {
	start := time.Now()
	defer func() { observe(ctx, "addFeedback", start, err) }()

	id := fb.ID
	if id == "" {
		id = uuid.NewString()
	}

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO feedback (id, session_id, user_id, rating, comments, submitted_at)
		SELECT $1, id, $3, $4, $5, $6 FROM sessions WHERE id = $2
		ON CONFLICT (session_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comments = EXCLUDED.comments, submitted_at = EXCLUDED.submitted_at`,
		id, fb.SessionID, fb.UserID, fb.Rating, fb.Comments, fb.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to add feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) querySessions(ctx context.Context, query string, args ...any) ([]*models.Session, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	byID := map[string]*models.Session{}
	ids := []string{}
	for rows.Next() {
		var (
			sess   models.Session
			status string
		)
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.Description, &sess.MentorID, &sess.MentorName,
			&sess.Area, &sess.DateTime, &sess.DurationMin, &sess.Language, &status, &sess.Attendees); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.Status = models.SessionStatus(status)
		sess.Resources = []models.Resource{}
		if sess.Attendees == nil {
			sess.Attendees = []string{}
		}
		sessions = append(sessions, &sess)
		byID[sess.ID] = &sess
		ids = append(ids, sess.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return sessions, nil
	}

	if err := s.loadFeedback(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := s.loadSessionResources(ctx, ids, byID); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *Store) loadFeedback(ctx context.Context, ids []string, byID map[string]*models.Session) error {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, user_id, rating, comments, submitted_at
		FROM feedback WHERE session_id = ANY($1) ORDER BY submitted_at`, ids)
	if err != nil {
		return fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.SessionID, &fb.UserID, &fb.Rating, &fb.Comments, &fb.SubmittedAt); err != nil {
			return fmt.Errorf("failed to scan feedback: %w", err)
		}
		if sess := byID[fb.SessionID]; sess != nil {
			sess.Feedback = append(sess.Feedback, fb)
		}
	}
	return rows.Err()
}

func (s *Store) loadSessionResources(ctx context.Context, ids []string, byID map[string]*models.Session) error {
	rows, err := s.pool.Query(ctx, `
		SELECT sr.session_id, `+resourceColumnsPrefixed+`
		FROM session_resources sr JOIN resources r ON r.id = sr.resource_id
		WHERE sr.session_id = ANY($1) ORDER BY sr.position`, ids)
	if err != nil {
		return fmt.Errorf("failed to query session resources: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID string
		r, err := scanResource(rows, &sessionID)
		if err != nil {
			return fmt.Errorf("failed to scan session resource: %w", err)
		}
		if sess := byID[sessionID]; sess != nil {
			sess.Resources = append(sess.Resources, *r)
		}
	}
	return rows.Err()
}
