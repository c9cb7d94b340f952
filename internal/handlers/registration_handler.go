package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/services"
)

// RegistrationHandler handles the registration form
type RegistrationHandler struct {
	service services.RegistrationServiceInterface
	responder
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(service services.RegistrationServiceInterface, tr *i18n.Translator) *RegistrationHandler {
	return &RegistrationHandler{service: service, responder: responder{tr: tr}}
}

// Register handles POST /api/v1/register
// Accepts a JSON draft or a multipart form with files keyed by purpose
func (h *RegistrationHandler) Register(c *gin.Context) {
	draft, files, ok := h.readDraft(c)
	if !ok {
		return
	}

	result, err := h.service.Submit(c.Request.Context(), draft, files)
	if err != nil {
		h.serviceError(c, err, "Registration failed. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Validate handles POST /api/v1/register/validate
// Runs every check without submitting and returns the field error map
func (h *RegistrationHandler) Validate(c *gin.Context) {
	draft, files, ok := h.readDraft(c)
	if !ok {
		return
	}

	err := h.service.Validate(draft, files)
	var vf *services.ValidationFailure
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"valid": true, "errors": gin.H{}})
	case errors.As(err, &vf):
		errs := vf.Errors
		if h.tr != nil {
			errs = h.tr.Localize(requestLanguage(c), errs)
		}
		c.JSON(http.StatusOK, gin.H{"valid": false, "errors": errs.ToMap(), "details": errs})
	default:
		h.serviceError(c, err, "Validation failed")
	}
}

func (h *RegistrationHandler) readDraft(c *gin.Context) (*models.RegistrationDraft, models.FileSelection, bool) {
	if !isMultipart(c) {
		var draft models.RegistrationDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			h.bindError(c, err)
			return nil, nil, false
		}
		return &draft, models.FileSelection{}, true
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body", err)
		return nil, nil, false
	}

	draft, files, errs, err := parseRegistrationForm(c.Request.MultipartForm)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body", err)
		return nil, nil, false
	}
	if len(errs) > 0 {
		h.validation(c, errs, nil)
		return nil, nil, false
	}

	return draft, files, true
}
