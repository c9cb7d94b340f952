package services_test

import (
	"github.com/nmm-portal/nmm-api/config"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{AppEnv: "development"},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-that-is-at-least-32-characters",
			JWTIssuer:       "nmm-api-test",
			SessionTTLHours: 24,
			CookieName:      "nmm_session",
		},
		OTP: config.OTPConfig{TTLMinutes: 5},
	}
}

func menteeSession() *models.UserSession {
	return &models.UserSession{UserID: "1", Name: "Priya Sharma", Email: "mentee@example.com", Role: models.RoleMentee}
}

func mentorSession() *models.UserSession {
	return &models.UserSession{UserID: "2", Name: "Dr. Rajesh Kumar", Email: "mentor@example.com", Role: models.RoleMentor}
}

func intPtr(n int) *int { return &n }

func validMentorDraft() *models.RegistrationDraft {
	return &models.RegistrationDraft{
		Role:        models.RoleMentor,
		Name:        "Meera Iyer",
		Email:       "meera@example.com",
		Mobile:      "9123456780",
		DateOfBirth: "1985-07-12",
		Gender:      "Female",
		Address: models.Address{
			State:    "Tamil Nadu",
			District: "Chennai",
			Pincode:  "600001",
		},
		Designation:            "Lecturer",
		ProfessionalExperience: intPtr(9),
	}
}
