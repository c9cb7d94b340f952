package services_test

import (
	"context"
	"time"

	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/pkg/storage"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock implementation of repository.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Register(ctx context.Context, reg *models.Registration) (*models.User, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindForLogin(ctx context.Context, identifier string, role models.Role) (*models.User, error) {
	args := m.Called(ctx, identifier, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) ListUsers(ctx context.Context, role models.Role) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockSessionStore is a mock implementation of repository.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) ListSessions(ctx context.Context) ([]*models.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionStore) GetUserSessions(ctx context.Context, userID string, role models.Role) ([]*models.Session, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) CreateSession(ctx context.Context, s *models.Session) (*models.Session, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) AddAttendee(ctx context.Context, sessionID, userID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) AddFeedback(ctx context.Context, fb *models.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

// MockResourceStore is a mock implementation of repository.ResourceStore
type MockResourceStore struct {
	mock.Mock
}

func (m *MockResourceStore) ListResources(ctx context.Context, category string) ([]*models.Resource, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Resource), args.Error(1)
}

func (m *MockResourceStore) GetResources(ctx context.Context, ids []string) ([]*models.Resource, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Resource), args.Error(1)
}

func (m *MockResourceStore) CreateResource(ctx context.Context, r *models.Resource) (*models.Resource, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resource), args.Error(1)
}

func (m *MockResourceStore) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTicketStore is a mock implementation of repository.TicketStore
type MockTicketStore struct {
	mock.Mock
}

func (m *MockTicketStore) ListTickets(ctx context.Context) ([]*models.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) CreateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) UpdateTicketStatus(ctx context.Context, id, status string, at time.Time) (*models.Ticket, error) {
	args := m.Called(ctx, id, status, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

// MockFileStore is a mock implementation of storage.FileStore
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Get(ctx context.Context, key string) (*storage.Object, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *MockFileStore) Backend() string {
	return "mock"
}
