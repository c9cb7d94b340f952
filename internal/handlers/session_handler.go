package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/services"
)

// SessionHandler handles mentoring session endpoints
type SessionHandler struct {
	service services.SessionServiceInterface
	responder
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(service services.SessionServiceInterface, tr *i18n.Translator) *SessionHandler {
	return &SessionHandler{service: service, responder: responder{tr: tr}}
}

// ListSessions handles GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	sessions, err := h.service.ListForUser(c.Request.Context(), session)
	if err != nil {
		h.serviceError(c, err, "Failed to fetch sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "total": len(sessions)})
}

// ExportSessions handles GET /api/v1/sessions/export
func (h *SessionHandler) ExportSessions(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	data, err := h.service.ExportCSV(c.Request.Context(), session)
	if err != nil {
		h.serviceError(c, err, "Failed to export sessions")
		return
	}

	filename := fmt.Sprintf("sessions-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	created, err := h.service.CreateSession(c.Request.Context(), session, &req)
	if err != nil {
		h.serviceError(c, err, "Failed to create session")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Attend handles POST /api/v1/sessions/:id/attend
func (h *SessionHandler) Attend(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	updated, err := h.service.Attend(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		h.serviceError(c, err, "Failed to join session")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// SubmitFeedback handles POST /api/v1/sessions/:id/feedback
func (h *SessionHandler) SubmitFeedback(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	feedback, err := h.service.SubmitFeedback(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		h.serviceError(c, err, "Failed to submit feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedback})
}
