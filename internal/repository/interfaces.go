package repository

import (
	"context"
	"time"

	"github.com/nmm-portal/nmm-api/internal/models"
	pkgerrors "github.com/nmm-portal/nmm-api/pkg/errors"
)

// ErrDuplicateUser is returned by Register when the email or mobile is taken
var ErrDuplicateUser = pkgerrors.ConflictError("user already exists with this email or mobile")

// ErrNotFound is returned when a record does not exist
var ErrNotFound = pkgerrors.ErrNotFound

// UserStore owns user identities. The memory and PostgreSQL backends both
// satisfy it; services never see which one is wired.
type UserStore interface {
	// Register creates a user; ErrDuplicateUser on email or mobile collision
	Register(ctx context.Context, reg *models.Registration) (*models.User, error)

	// FindForLogin looks a user up by email or mobile and role; ErrNotFound on no match
	FindForLogin(ctx context.Context, identifier string, role models.Role) (*models.User, error)

	// GetUser fetches a user by id
	GetUser(ctx context.Context, id string) (*models.User, error)

	// ListUsers returns every user with role (all users when role is empty)
	ListUsers(ctx context.Context, role models.Role) ([]*models.User, error)
}

// SessionStore owns mentoring sessions and their feedback
type SessionStore interface {
	// ListSessions returns every session ordered by date
	ListSessions(ctx context.Context) ([]*models.Session, error)

	// GetUserSessions returns sessions attended (mentee), created (mentor) or all (others)
	GetUserSessions(ctx context.Context, userID string, role models.Role) ([]*models.Session, error)

	GetSession(ctx context.Context, id string) (*models.Session, error)

	// CreateSession stores s and returns the stored copy with its id
	CreateSession(ctx context.Context, s *models.Session) (*models.Session, error)

	// AddAttendee records userID as an attendee; a repeat join is a no-op
	AddAttendee(ctx context.Context, sessionID, userID string) (*models.Session, error)

	// AddFeedback stores one rating; a user's later rating replaces the earlier one
	AddFeedback(ctx context.Context, fb *models.Feedback) error
}

// ResourceStore owns the resource library
type ResourceStore interface {
	// ListResources returns resources in category (all when empty), newest first
	ListResources(ctx context.Context, category string) ([]*models.Resource, error)

	GetResources(ctx context.Context, ids []string) ([]*models.Resource, error)

	CreateResource(ctx context.Context, r *models.Resource) (*models.Resource, error)

	// Categories returns the distinct categories in use
	Categories(ctx context.Context) ([]string, error)
}

// TicketStore owns help desk tickets
type TicketStore interface {
	// ListTickets returns every ticket, most recently submitted first
	ListTickets(ctx context.Context) ([]*models.Ticket, error)

	// CreateTicket assigns the next HD-YYYY-NNN id for the submission year
	CreateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error)

	UpdateTicketStatus(ctx context.Context, id, status string, at time.Time) (*models.Ticket, error)
}

// Store bundles the collaborators a backend provides
type Store interface {
	UserStore
	SessionStore
	ResourceStore
	TicketStore

	// Name identifies the backend in logs and metrics
	Name() string
	Ping(ctx context.Context) error
	Close()
}
