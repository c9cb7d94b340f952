package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/nmm-portal/nmm-api/internal/cache"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardService builds the per-role dashboard
type DashboardService struct {
	users    repository.UserStore
	sessions repository.SessionStore
	cache    *cache.DashboardCache
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(users repository.UserStore, sessions repository.SessionStore, dashboards *cache.DashboardCache) *DashboardService {
	return &DashboardService{
		users:    users,
		sessions: sessions,
		cache:    dashboards,
		now:      time.Now,
	}
}

// GetDashboard runs the stats and session reads in parallel and joins them.
// If either read fails the dashboard fails.
func (s *DashboardService) GetDashboard(ctx context.Context, session *models.UserSession) (*models.Dashboard, error) {
	var (
		stats    any
		sessions []*models.Session
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.GetDashboardStats(gctx, session.UserID, session.Role)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = s.sessions.GetUserSessions(gctx, session.UserID, session.Role)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to load dashboard",
			zap.String("user_id", session.UserID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	out := make([]models.Session, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, *sess)
	}

	return &models.Dashboard{
		Role:     session.Role,
		Stats:    stats,
		Sessions: out,
	}, nil
}

// GetDashboardStats returns the summary for the user's role, computed from
// the session and feedback data and cached per user
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID string, role models.Role) (any, error) {
	if cached, ok := s.cache.Get(userID); ok {
		return cached, nil
	}

	var (
		stats any
		err   error
	)
	switch role {
	case models.RoleMentee:
		stats, err = s.menteeStats(ctx, userID)
	case models.RoleMentor:
		stats, err = s.mentorStats(ctx, userID)
	case models.RoleSchoolHead:
		stats, err = s.schoolHeadStats(ctx, userID)
	default:
		stats = models.EmptyStats{}
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(userID, stats)
	return stats, nil
}

func (s *DashboardService) menteeStats(ctx context.Context, userID string) (*models.MenteeStats, error) {
	attended, err := s.sessions.GetUserSessions(ctx, userID, models.RoleMentee)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &models.MenteeStats{SessionsAttended: len(attended)}
	minutes := 0
	for _, sess := range attended {
		switch {
		case isCompleted(sess, now):
			stats.CompletedSessions++
			minutes += sess.DurationMin
		case sess.Status == models.SessionUpcoming:
			stats.UpcomingSessions++
		}
	}
	stats.MentoringHours = hours(minutes)
	return stats, nil
}

func (s *DashboardService) mentorStats(ctx context.Context, userID string) (*models.MentorStats, error) {
	created, err := s.sessions.GetUserSessions(ctx, userID, models.RoleMentor)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &models.MentorStats{SessionsCreated: len(created)}
	mentees := map[string]struct{}{}
	minutes, ratings, ratingSum := 0, 0, 0
	for _, sess := range created {
		for _, id := range sess.Attendees {
			mentees[id] = struct{}{}
		}
		for _, fb := range sess.Feedback {
			ratings++
			ratingSum += fb.Rating
		}
		if isCompleted(sess, now) {
			minutes += sess.DurationMin
		}
	}

	stats.ActiveMentees = len(mentees)
	stats.TotalHours = hours(minutes)
	if ratings > 0 {
		stats.AverageRating = round1(float64(ratingSum) / float64(ratings))
	}
	return stats, nil
}

// schoolHeadStats summarises the mentees registered under the head's school
func (s *DashboardService) schoolHeadStats(ctx context.Context, userID string) (*models.SchoolHeadStats, error) {
	head, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	school := head.SchoolName()

	mentees, err := s.users.ListUsers(ctx, models.RoleMentee)
	if err != nil {
		return nil, err
	}
	teachers := map[string]struct{}{}
	for _, u := range mentees {
		if school != "" && u.SchoolName() == school {
			teachers[u.ID] = struct{}{}
		}
	}

	all, err := s.sessions.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.SchoolHeadStats{TeachersManaged: len(teachers)}
	attending := map[string]struct{}{}
	areas := map[string]struct{}{}
	for _, sess := range all {
		joined := false
		for _, id := range sess.Attendees {
			if _, ok := teachers[id]; ok {
				attending[id] = struct{}{}
				joined = true
			}
		}
		if !joined {
			continue
		}
		stats.SessionsOrganized++
		if sess.Area != "" {
			areas[sess.Area] = struct{}{}
		}
	}

	stats.ActivePrograms = len(areas)
	if len(teachers) > 0 {
		stats.AttendanceRate = round2(float64(len(attending)) / float64(len(teachers)))
	}
	return stats, nil
}

// isCompleted treats past upcoming sessions as held
func isCompleted(sess *models.Session, now time.Time) bool {
	return sess.Status == models.SessionCompleted ||
		(sess.Status == models.SessionUpcoming && sess.DateTime.Before(now))
}

func hours(minutes int) float64 {
	return round1(float64(minutes) / 60)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
