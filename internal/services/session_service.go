package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nmm-portal/nmm-api/internal/cache"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/internal/validation"
	pkgerrors "github.com/nmm-portal/nmm-api/pkg/errors"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	defaultSessionLanguage = "English"
	defaultSessionMinutes  = 60
)

var sessionCSVHeader = []string{
	"id", "title", "mentorName", "area", "dateTime", "durationMinutes", "language", "status", "attendees",
}

// SessionService handles mentoring sessions
type SessionService struct {
	sessions   repository.SessionStore
	resources  repository.ResourceStore
	dashboards *cache.DashboardCache
	now        func() time.Time
}

// NewSessionService creates a new session service instance
func NewSessionService(sessions repository.SessionStore, resources repository.ResourceStore, dashboards *cache.DashboardCache) *SessionService {
	return &SessionService{
		sessions:   sessions,
		resources:  resources,
		dashboards: dashboards,
		now:        time.Now,
	}
}

// ListForUser returns the sessions the user attended (mentee), created
// (mentor) or every session (other roles)
func (s *SessionService) ListForUser(ctx context.Context, session *models.UserSession) ([]*models.Session, error) {
	return s.sessions.GetUserSessions(ctx, session.UserID, session.Role)
}

// CreateSession fills the defaults of a partial session and stores it
func (s *SessionService) CreateSession(ctx context.Context, session *models.UserSession, req *models.CreateSessionRequest) (*models.Session, error) {
	if session.Role != models.RoleMentor {
		return nil, ErrRoleNotAllowed
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationFailure(validation.ValidationErrors{
			{Field: "title", Code: validation.CodeRequired, Message: "Title is required"},
		})
	}

	sess := &models.Session{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		MentorID:    session.UserID,
		MentorName:  session.Name,
		Area:        strings.TrimSpace(req.Area),
		DateTime:    s.now().UTC(),
		DurationMin: req.DurationMin,
		Language:    strings.TrimSpace(req.Language),
		Status:      models.SessionUpcoming,
		Attendees:   []string{},
		Resources:   []models.Resource{},
	}
	if req.DateTime != nil {
		sess.DateTime = req.DateTime.UTC()
	}
	if sess.DurationMin == 0 {
		sess.DurationMin = defaultSessionMinutes
	}
	if sess.Language == "" {
		sess.Language = defaultSessionLanguage
	}

	if len(req.ResourceIDs) > 0 {
		resources, err := s.resources.GetResources(ctx, req.ResourceIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load session resources: %w", err)
		}
		for _, r := range resources {
			sess.Resources = append(sess.Resources, *r)
		}
	}

	created, err := s.sessions.CreateSession(ctx, sess)
	if err != nil {
		logger.Error("Failed to create session",
			zap.String("mentor_id", session.UserID),
			zap.Error(err))
		return nil, err
	}

	s.dashboards.Flush()
	metrics.SessionsCreated.Inc()
	logger.Info("Session created",
		zap.String("session_id", created.ID),
		zap.String("mentor_id", session.UserID))

	return created, nil
}

// Attend adds a mentee to a session
func (s *SessionService) Attend(ctx context.Context, session *models.UserSession, sessionID string) (*models.Session, error) {
	if session.Role != models.RoleMentee {
		return nil, ErrRoleNotAllowed
	}

	sess, err := s.sessions.AddAttendee(ctx, sessionID, session.UserID)
	if err != nil {
		return nil, err
	}

	s.dashboards.Flush()
	return sess, nil
}

// SubmitFeedback rates a session the user attended. A later rating from
// the same user replaces the earlier one.
func (s *SessionService) SubmitFeedback(ctx context.Context, session *models.UserSession, sessionID string, req *models.FeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, validationFailure(validation.ValidationErrors{
			{Field: "rating", Code: validation.CodeInvalid, Message: "Rating must be between 1 and 5"},
		})
	}

	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.HasAttendee(session.UserID) {
		return nil, pkgerrors.AccessDeniedError("only attendees can rate a session")
	}

	fb := &models.Feedback{
		SessionID:   sessionID,
		UserID:      session.UserID,
		Rating:      req.Rating,
		Comments:    strings.TrimSpace(req.Comments),
		SubmittedAt: s.now().UTC(),
	}
	if err := s.sessions.AddFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to store feedback: %w", err)
	}

	s.dashboards.Flush()
	return fb, nil
}

// ExportCSV renders the user's sessions as CSV with a header row
func (s *SessionService) ExportCSV(ctx context.Context, session *models.UserSession) ([]byte, error) {
	sessions, err := s.ListForUser(ctx, session)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(sessionCSVHeader); err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		if err := w.Write([]string{
			sess.ID,
			sess.Title,
			sess.MentorName,
			sess.Area,
			sess.DateTime.UTC().Format(time.RFC3339),
			strconv.Itoa(sess.DurationMin),
			sess.Language,
			string(sess.Status),
			strings.Join(sess.Attendees, ";"),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}
