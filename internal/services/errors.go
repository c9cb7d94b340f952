package services

import (
	"errors"

	"github.com/nmm-portal/nmm-api/internal/validation"
	pkgerrors "github.com/nmm-portal/nmm-api/pkg/errors"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials or role")
	ErrInvalidOTP           = errors.New("invalid or expired one-time code")
	ErrJWTSecretNotSet      = errors.New("JWT secret not configured")
	ErrUserExists           = pkgerrors.ConflictError("user already exists with this email or mobile")
	ErrSubmissionInProgress = pkgerrors.ConflictError("a registration for this email and mobile is already in progress")
	ErrRegistrationFailed   = errors.New("registration failed")
	ErrRoleNotAllowed       = pkgerrors.AccessDeniedError("role not allowed for this action")
)

// ValidationFailure carries field errors back to the form. No collaborator
// is called when a service returns it.
type ValidationFailure struct {
	Errors validation.ValidationErrors
}

func (f *ValidationFailure) Error() string {
	return f.Errors.Error()
}

// Fields returns the error map the form renders
func (f *ValidationFailure) Fields() map[string]string {
	return f.Errors.ToMap()
}

func validationFailure(errs validation.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationFailure{Errors: errs}
}
