package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/middleware"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/services"
)

// AuthHandler handles login, one-time codes and the session cookie
type AuthHandler struct {
	service services.AuthServiceInterface
	responder
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface, tr *i18n.Translator) *AuthHandler {
	return &AuthHandler{service: service, responder: responder{tr: tr}}
}

// Login handles POST /api/v1/auth/login
// Sets the session cookie and returns the dashboard to open
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.serviceError(c, err, "Login failed. Please try again.")
		return
	}

	middleware.SetSessionCookie(
		c,
		h.service.GetCookieName(),
		resp.Token,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, resp)
}

// RequestOTP handles POST /api/v1/auth/otp
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req models.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	resp, err := h.service.RequestOTP(c.Request.Context(), &req)
	if err != nil {
		h.serviceError(c, err, "Failed to send login code")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(
		c,
		h.service.GetCookieName(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSession handles GET /api/v1/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session":    session,
		"redirectTo": session.Role.DashboardPath(),
	})
}
