package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/middleware"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/services"
	"github.com/nmm-portal/nmm-api/internal/validation"
	pkgerrors "github.com/nmm-portal/nmm-api/pkg/errors"
)

// attachError records err on the context for the request log
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends {"error": message}
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// requestLanguage reads ?lang, then X-Language, then Accept-Language
func requestLanguage(c *gin.Context) models.Language {
	return i18n.ParseLanguage(c.Query("lang"), c.GetHeader("X-Language"), c.GetHeader("Accept-Language"))
}

// responder renders errors in the caller's language
type responder struct {
	tr *i18n.Translator
}

func (r responder) message(c *gin.Context, text string) string {
	if r.tr == nil {
		return text
	}
	return r.tr.Message(requestLanguage(c), text)
}

func (r responder) fail(c *gin.Context, status int, text string, err error) {
	respondError(c, status, r.message(c, text), err)
}

// validation sends 400 with per-field details
func (r responder) validation(c *gin.Context, errs validation.ValidationErrors, err error) {
	if r.tr != nil {
		errs = r.tr.Localize(requestLanguage(c), errs)
	}
	if errs == nil {
		errs = validation.ValidationErrors{}
	}
	respondErrorWithDetails(c, http.StatusBadRequest, r.message(c, "Validation failed"), errs, err)
}

// bindError reports a failed ShouldBind: field details for validator
// errors, a generic message for malformed bodies
func (r responder) bindError(c *gin.Context, err error) {
	if r.tr != nil {
		if errs := r.tr.BindingErrors(requestLanguage(c), err); len(errs) > 0 {
			respondErrorWithDetails(c, http.StatusBadRequest, r.message(c, "Validation failed"), errs, err)
			return
		}
	}
	r.fail(c, http.StatusBadRequest, "Invalid request body", err)
}

// currentSession reads the session set by the session middleware
func (r responder) currentSession(c *gin.Context) (*models.UserSession, bool) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		r.fail(c, http.StatusUnauthorized, "Authentication required", err)
		return nil, false
	}
	return session, true
}

// serviceError maps service errors onto statuses; fallback is the message
// used for anything unexpected
func (r responder) serviceError(c *gin.Context, err error, fallback string) {
	var vf *services.ValidationFailure
	switch {
	case errors.As(err, &vf):
		r.validation(c, vf.Errors, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		r.fail(c, http.StatusUnauthorized, "Invalid credentials or role", err)
	case errors.Is(err, services.ErrInvalidOTP):
		r.fail(c, http.StatusUnauthorized, "Invalid or expired OTP", err)
	case errors.Is(err, services.ErrUserExists):
		r.fail(c, http.StatusConflict, "User already exists with this email or mobile", err)
	case errors.Is(err, services.ErrSubmissionInProgress):
		r.fail(c, http.StatusConflict, "A submission is already in progress", err)
	case errors.Is(err, pkgerrors.ErrConflict):
		r.fail(c, http.StatusConflict, "Conflict", err)
	case errors.Is(err, pkgerrors.ErrNotFound):
		r.fail(c, http.StatusNotFound, "Not found", err)
	case errors.Is(err, pkgerrors.ErrAccessDenied):
		r.fail(c, http.StatusForbidden, "Access denied", err)
	case errors.Is(err, services.ErrJWTSecretNotSet):
		r.fail(c, http.StatusServiceUnavailable, "Service temporarily unavailable", err)
	default:
		r.fail(c, http.StatusInternalServerError, fallback, err)
	}
}
