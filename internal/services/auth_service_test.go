package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/nmm-portal/nmm-api/internal/cache"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mentee() *models.User {
	return &models.User{
		ID:       "1",
		Email:    "mentee@example.com",
		Mobile:   "9876543210",
		Name:     "Priya Sharma",
		Role:     models.RoleMentee,
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	users := new(MockUserStore)
	svc := services.NewAuthService(users, cache.NewOTPStore(time.Minute), testConfig(), nil)
	ctx := context.Background()

	users.On("FindForLogin", ctx, "mentee@example.com", models.RoleMentee).Return(mentee(), nil).Once()

	resp, err := svc.Login(ctx, &models.LoginRequest{
		EmailOrMobile: " mentee@example.com ",
		Password:      "anything",
		Role:          models.RoleMentee,
	})
	require.NoError(t, err)
	assert.True(t, resp.Auth.IsAuthenticated)
	assert.Equal(t, models.RoleMentee, resp.Auth.Role)
	assert.Equal(t, "/mentee/dashboard", resp.RedirectTo)
	assert.NotEmpty(t, resp.Token)

	session, err := svc.ValidateSession(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "1", session.UserID)
	assert.Equal(t, models.RoleMentee, session.Role)
}

func TestAuthService_Login_RoleMismatch(t *testing.T) {
	users := new(MockUserStore)
	svc := services.NewAuthService(users, cache.NewOTPStore(time.Minute), testConfig(), nil)
	ctx := context.Background()

	users.On("FindForLogin", ctx, "mentee@example.com", models.RoleMentor).Return(nil, repository.ErrNotFound).Once()

	_, err := svc.Login(ctx, &models.LoginRequest{
		EmailOrMobile: "mentee@example.com",
		Password:      "x",
		Role:          models.RoleMentor,
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_Login_ValidationFailure(t *testing.T) {
	users := new(MockUserStore)
	svc := services.NewAuthService(users, cache.NewOTPStore(time.Minute), testConfig(), nil)

	_, err := svc.Login(context.Background(), &models.LoginRequest{EmailOrMobile: "12345"})

	var failure *services.ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, map[string]string{
		"emailOrMobile": "Invalid mobile number format",
		"password":      "Password is required",
		"role":          "Role selection is required",
	}, failure.Fields())
	users.AssertNotCalled(t, "FindForLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_ChecksPasswordHash(t *testing.T) {
	users := new(MockUserStore)
	svc := services.NewAuthService(users, cache.NewOTPStore(time.Minute), testConfig(), nil)
	ctx := context.Background()

	hash, err := services.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := mentee()
	user.PasswordHash = hash
	users.On("FindForLogin", ctx, "9876543210", models.RoleMentee).Return(user, nil).Twice()

	_, err = svc.Login(ctx, &models.LoginRequest{EmailOrMobile: "9876543210", Password: "wrong", Role: models.RoleMentee})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{EmailOrMobile: "9876543210", Password: "s3cret-pass", Role: models.RoleMentee})
	assert.NoError(t, err)
}

func TestAuthService_OTPLogin(t *testing.T) {
	users := new(MockUserStore)
	svc := services.NewAuthService(users, cache.NewOTPStore(time.Minute), testConfig(), nil)
	ctx := context.Background()

	users.On("FindForLogin", ctx, "9876543210", models.RoleMentee).Return(mentee(), nil)

	var code string
	services.SetCodeGenerator(svc, func() (string, error) {
		code = "424242"
		return code, nil
	})

	resp, err := svc.RequestOTP(ctx, &models.OTPRequest{Mobile: "9876543210", Role: models.RoleMentee})
	require.NoError(t, err)
	assert.Equal(t, 300, resp.ExpiresIn)

	login := &models.LoginRequest{
		EmailOrMobile: "9876543210",
		Role:          models.RoleMentee,
		Method:        models.LoginMethodOTP,
		OTP:           "000000",
	}
	_, err = svc.Login(ctx, login)
	assert.ErrorIs(t, err, services.ErrInvalidOTP)

	login.OTP = code
	_, err = svc.Login(ctx, login)
	require.NoError(t, err)

	_, err = svc.Login(ctx, login)
	assert.ErrorIs(t, err, services.ErrInvalidOTP, "codes are single use")
}

func TestAuthService_RequestOTP_UnknownMobile(t *testing.T) {
	users := new(MockUserStore)
	svc := services.NewAuthService(users, cache.NewOTPStore(time.Minute), testConfig(), nil)
	ctx := context.Background()

	users.On("FindForLogin", ctx, "9000000000", models.RoleMentor).Return(nil, repository.ErrNotFound).Once()

	resp, err := svc.RequestOTP(ctx, &models.OTPRequest{Mobile: "9000000000", Role: models.RoleMentor})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestAuthService_NoSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""
	svc := services.NewAuthService(new(MockUserStore), cache.NewOTPStore(time.Minute), cfg, nil)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		EmailOrMobile: "mentee@example.com", Password: "x", Role: models.RoleMentee,
	})
	assert.ErrorIs(t, err, services.ErrJWTSecretNotSet)

	_, err = svc.ValidateSession("token")
	assert.ErrorIs(t, err, services.ErrJWTSecretNotSet)
}
