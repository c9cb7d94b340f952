package services

import (
	"context"

	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/pkg/jwt"
	"github.com/nmm-portal/nmm-api/pkg/storage"
)

// AuthServiceInterface defines login and session token operations
type AuthServiceInterface interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	RequestOTP(ctx context.Context, req *models.OTPRequest) (*models.OTPResponse, error)
	ValidateSession(token string) (*models.UserSession, error)
	GetSessionTTL() int
	GetCookieName() string
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// RegistrationServiceInterface defines the registration submit flow
type RegistrationServiceInterface interface {
	Submit(ctx context.Context, draft *models.RegistrationDraft, files models.FileSelection) (*models.RegisterResult, error)
	Validate(draft *models.RegistrationDraft, files models.FileSelection) error
}

// DashboardServiceInterface defines the dashboard read
type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, session *models.UserSession) (*models.Dashboard, error)
}

// SessionServiceInterface defines mentoring session operations
type SessionServiceInterface interface {
	ListForUser(ctx context.Context, session *models.UserSession) ([]*models.Session, error)
	CreateSession(ctx context.Context, session *models.UserSession, req *models.CreateSessionRequest) (*models.Session, error)
	Attend(ctx context.Context, session *models.UserSession, sessionID string) (*models.Session, error)
	SubmitFeedback(ctx context.Context, session *models.UserSession, sessionID string, req *models.FeedbackRequest) (*models.Feedback, error)
	ExportCSV(ctx context.Context, session *models.UserSession) ([]byte, error)
}

// ResourceServiceInterface defines resource library operations
type ResourceServiceInterface interface {
	GetResources(ctx context.Context, filter models.ResourceFilter) ([]*models.Resource, error)
	Categories(ctx context.Context) ([]string, error)
	UploadResource(ctx context.Context, session *models.UserSession, req *models.UploadResourceRequest, file models.FileHandle) (*models.Resource, error)
	GetFile(ctx context.Context, key string) (*storage.Object, error)
}

// HelpdeskServiceInterface defines help desk operations
type HelpdeskServiceInterface interface {
	ListTickets(ctx context.Context, filter models.TicketFilter) (*models.TicketListResponse, error)
	CreateTicket(ctx context.Context, session *models.UserSession, req *models.CreateTicketRequest) (*models.Ticket, error)
	UpdateTicketStatus(ctx context.Context, session *models.UserSession, id string, req *models.UpdateTicketStatusRequest) (*models.Ticket, error)
}

// PreferencesServiceInterface defines display preference operations
type PreferencesServiceInterface interface {
	Get(ctx context.Context, ownerKey string) (models.Preferences, error)
	Update(ctx context.Context, ownerKey string, req *models.UpdatePreferencesRequest) (models.Preferences, error)
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ RegistrationServiceInterface = (*RegistrationService)(nil)
var _ DashboardServiceInterface = (*DashboardService)(nil)
var _ SessionServiceInterface = (*SessionService)(nil)
var _ ResourceServiceInterface = (*ResourceService)(nil)
var _ HelpdeskServiceInterface = (*HelpdeskService)(nil)
var _ PreferencesServiceInterface = (*PreferencesService)(nil)
