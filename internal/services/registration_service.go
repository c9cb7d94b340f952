package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/nmm-portal/nmm-api/internal/cache"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/internal/validation"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	"github.com/nmm-portal/nmm-api/pkg/retry"
	"github.com/nmm-portal/nmm-api/pkg/storage"
	"github.com/nmm-portal/nmm-api/pkg/trigger"
	"go.uber.org/zap"
)

const registrationSuccessMessage = "Your registration has been submitted successfully. You will receive a confirmation email shortly."

// RegistrationService runs the registration submit flow
type RegistrationService struct {
	users      repository.UserStore
	files      storage.FileStore
	dashboards *cache.DashboardCache
	notifier   *trigger.Notifier
	retry      retry.Config

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(
	users repository.UserStore,
	files storage.FileStore,
	dashboards *cache.DashboardCache,
	notifier *trigger.Notifier,
) *RegistrationService {
	return &RegistrationService{
		users:      users,
		files:      files,
		dashboards: dashboards,
		notifier:   notifier,
		retry:      retry.StorageConfig(),
		inFlight:   make(map[string]struct{}),
	}
}

// Validate checks the draft and the selected files without submitting
func (s *RegistrationService) Validate(draft *models.RegistrationDraft, files models.FileSelection) error {
	errs := validation.ValidateRegistrationForm(draft)
	errs = append(errs, validation.ValidateFiles(files)...)
	return validationFailure(errs)
}

// Submit validates the draft, uploads its files and creates the user.
// While a submit for the same email and mobile is pending, further submits
// fail with ErrSubmissionInProgress and never reach the store.
func (s *RegistrationService) Submit(ctx context.Context, draft *models.RegistrationDraft, files models.FileSelection) (*models.RegisterResult, error) {
	role := string(draft.Role)

	if err := s.Validate(draft, files); err != nil {
		var failure *ValidationFailure
		if errors.As(err, &failure) {
			for _, ve := range failure.Errors {
				metrics.RegistrationValidationErrors.WithLabelValues(ve.Field).Inc()
			}
		}
		metrics.Registrations.WithLabelValues(role, "validation_failed").Inc()
		return nil, err
	}

	reg, errs := validation.Compose(draft)
	if len(errs) > 0 {
		metrics.Registrations.WithLabelValues(role, "validation_failed").Inc()
		return nil, validationFailure(errs)
	}

	key := draft.IdentityKey()
	if !s.acquire(key) {
		logger.Warn("Duplicate registration submit while one is pending", zap.String("role", role))
		metrics.Registrations.WithLabelValues(role, "in_progress").Inc()
		return nil, ErrSubmissionInProgress
	}
	defer s.release(key)

	if draft.Password != "" {
		hash, err := HashPassword(draft.Password)
		if err != nil {
			logger.Error("Failed to hash registration password", zap.Error(err))
			metrics.Registrations.WithLabelValues(role, "error").Inc()
			return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
		}
		reg.PasswordHash = hash
	}

	s.uploadFiles(ctx, reg, files)

	user, err := s.users.Register(ctx, reg)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			logger.Warn("Registration for existing email or mobile", zap.String("role", role))
			metrics.Registrations.WithLabelValues(role, "duplicate").Inc()
			return nil, ErrUserExists
		}
		logger.Error("Failed to register user", zap.String("role", role), zap.Error(err))
		metrics.Registrations.WithLabelValues(role, "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	s.dashboards.Flush()

	s.notifier.CallAsync("user_registered", map[string]interface{}{
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"mobile": user.Mobile,
		"role":   user.Role,
	})

	metrics.Registrations.WithLabelValues(role, "success").Inc()
	logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", role))

	return &models.RegisterResult{
		Success: true,
		User:    user,
		Message: registrationSuccessMessage,
	}, nil
}

func (s *RegistrationService) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, pending := s.inFlight[key]; pending {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *RegistrationService) release(key string) {
	s.mu.Lock()
	delete(s.inFlight, key)
	s.mu.Unlock()
}

// uploadFiles stores the selected files and links them into reg. A failed
// upload is logged and the registration goes ahead without that file.
func (s *RegistrationService) uploadFiles(ctx context.Context, reg *models.Registration, files models.FileSelection) {
	owner := uploadOwner(reg.Mobile)

	if photo, ok := files.Primary(models.FilePhoto); ok {
		if url, err := s.upload(ctx, "photos", owner, photo); err != nil {
			logger.Error("Failed to upload profile photo", zap.Error(err))
		} else {
			reg.Photo = url
		}
	}

	if reg.Details == nil {
		return
	}

	purposes := make([]string, 0, len(files))
	for purpose := range files {
		if purpose != models.FilePhoto {
			purposes = append(purposes, string(purpose))
		}
	}
	sort.Strings(purposes)

	for _, p := range purposes {
		purpose := models.FilePurpose(p)
		for _, f := range files[purpose] {
			url, err := s.upload(ctx, "documents/"+p, owner, f)
			if err != nil {
				logger.Error("Failed to upload registration document",
					zap.String("purpose", p),
					zap.Error(err))
				continue
			}
			reg.Details.AttachDocument(purpose, url)
		}
	}
}

func (s *RegistrationService) upload(ctx context.Context, prefix, owner string, f models.FileHandle) (string, error) {
	key := storage.GenerateKey(prefix, owner, f.Name)
	return retry.DoWithResult(ctx, s.retry, "upload_"+prefix, func() (string, error) {
		return s.files.Put(ctx, key, f.ContentType, f.Data)
	})
}

func uploadOwner(mobile string) string {
	owner := strings.TrimSpace(mobile)
	if owner == "" {
		return "anonymous"
	}
	return owner
}
