package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/nmm-portal/nmm-api/config"
	"github.com/nmm-portal/nmm-api/internal/cache"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/internal/validation"
	"github.com/nmm-portal/nmm-api/pkg/jwt"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	"github.com/nmm-portal/nmm-api/pkg/trigger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const otpDigits = 6

// AuthService handles portal login and session tokens
type AuthService struct {
	users        repository.UserStore
	otps         *cache.OTPStore
	config       *config.Config
	tokenManager *jwt.TokenManager
	notifier     *trigger.Notifier
	generateCode func() (string, error)
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserStore, otps *cache.OTPStore, cfg *config.Config, notifier *trigger.Notifier) *AuthService {
	var tokenManager *jwt.TokenManager
	if cfg.Auth.JWTSecret != "" {
		tokenManager = jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTLHours)
	}

	return &AuthService{
		users:        users,
		otps:         otps,
		config:       cfg,
		tokenManager: tokenManager,
		notifier:     notifier,
		generateCode: generateOTP,
	}
}

// Login checks the form, finds the user for the identifier and role and
// issues a session token. Any mismatch is reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	start := time.Now()

	method := req.Method
	if method == "" {
		method = models.LoginMethodPassword
	}
	identifier := strings.TrimSpace(req.EmailOrMobile)

	if errs := validation.ValidateLogin(identifier, req.Password, req.Role, method); len(errs) > 0 {
		metrics.LoginAttempts.WithLabelValues(string(method), "validation_failed").Inc()
		return nil, validationFailure(errs)
	}

	if s.tokenManager == nil {
		logger.Error("JWT secret not configured")
		metrics.LoginAttempts.WithLabelValues(string(method), "not_configured").Inc()
		return nil, ErrJWTSecretNotSet
	}

	user, err := s.users.FindForLogin(ctx, identifier, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Login for unknown identifier or role", zap.String("role", string(req.Role)))
			metrics.LoginAttempts.WithLabelValues(string(method), "invalid_credentials").Inc()
			return nil, ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues(string(method), "store_error").Inc()
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	switch method {
	case models.LoginMethodOTP:
		if !s.otps.Consume(otpKey(req.Role, user.Mobile), strings.TrimSpace(req.OTP)) {
			logger.Warn("Invalid one-time code", zap.String("user_id", user.ID))
			metrics.LoginAttempts.WithLabelValues(string(method), "invalid_otp").Inc()
			return nil, ErrInvalidOTP
		}
	default:
		// accounts registered without a password accept any password
		if user.PasswordHash != "" &&
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			logger.Warn("Password mismatch", zap.String("user_id", user.ID))
			metrics.LoginAttempts.WithLabelValues(string(method), "invalid_credentials").Inc()
			return nil, ErrInvalidCredentials
		}
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		logger.Error("Failed to generate JWT", zap.String("user_id", user.ID), zap.Error(err))
		metrics.LoginAttempts.WithLabelValues(string(method), "jwt_failed").Inc()
		return nil, fmt.Errorf("failed to generate session: %w", err)
	}

	metrics.LoginDuration.Observe(metrics.MeasureDuration(start))
	metrics.LoginAttempts.WithLabelValues(string(method), "success").Inc()

	logger.Info("User logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("method", string(method)))

	return &models.LoginResponse{
		Auth: models.AuthState{
			User:            user,
			IsAuthenticated: true,
			Role:            user.Role,
		},
		Token:      token,
		ExpiresAt:  time.Now().Add(s.tokenManager.GetExpirationTime()).UTC(),
		RedirectTo: user.Role.DashboardPath(),
	}, nil
}

// RequestOTP issues a one-time code for the mobile and role. Unknown
// numbers get the same response so the endpoint does not reveal accounts.
func (s *AuthService) RequestOTP(ctx context.Context, req *models.OTPRequest) (*models.OTPResponse, error) {
	ttl := time.Duration(s.config.OTP.TTLMinutes) * time.Minute
	response := &models.OTPResponse{
		Success:   true,
		ExpiresIn: int(ttl.Seconds()),
		Message:   "A one-time code has been sent to your mobile number",
	}

	user, err := s.users.FindForLogin(ctx, req.Mobile, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Warn("OTP requested for unknown mobile or role", zap.String("role", string(req.Role)))
			metrics.OTPRequests.WithLabelValues("unknown_user").Inc()
			return response, nil
		}
		metrics.OTPRequests.WithLabelValues("store_error").Inc()
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	code, err := s.generateCode()
	if err != nil {
		logger.Error("Failed to generate one-time code", zap.Error(err))
		metrics.OTPRequests.WithLabelValues("generation_failed").Inc()
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	expiresAt := s.otps.Issue(otpKey(req.Role, user.Mobile), code)

	if s.notifier.Enabled() {
		s.notifier.CallAsync("otp_requested", map[string]interface{}{
			"mobile":    user.Mobile,
			"name":      user.Name,
			"code":      code,
			"expiresAt": expiresAt.UTC(),
		})
	} else if s.config.IsDevelopment() {
		logger.Info("=== DEVELOPMENT LOGIN CODE ===",
			zap.String("mobile", user.Mobile),
			zap.String("role", string(req.Role)),
			zap.String("code", code))
	}

	metrics.OTPRequests.WithLabelValues("success").Inc()
	return response, nil
}

// ValidateSession turns a session token back into the identity it carries
func (s *AuthService) ValidateSession(token string) (*models.UserSession, error) {
	if s.tokenManager == nil {
		return nil, ErrJWTSecretNotSet
	}

	claims, err := s.tokenManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	session := &models.UserSession{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   models.Role(claims.Role),
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Unix()
	}
	return session, nil
}

// GetSessionTTL returns the session TTL in seconds
func (s *AuthService) GetSessionTTL() int {
	return s.config.Auth.SessionTTLHours * 3600
}

func (s *AuthService) GetCookieName() string {
	return s.config.Auth.CookieName
}

func (s *AuthService) GetCookieDomain() string {
	return s.config.Auth.CookieDomain
}

func (s *AuthService) GetCookieSecure() bool {
	return s.config.Auth.CookieSecure
}

func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

// HashPassword hashes a registration password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func otpKey(role models.Role, mobile string) string {
	return string(role) + "|" + mobile
}

// generateOTP returns a zero-padded random 6 digit code
func generateOTP() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
