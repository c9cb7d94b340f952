package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/middleware"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/services"
)

const (
	// ClientCookieName identifies an anonymous browser for its preferences
	ClientCookieName = "nmm_client"

	clientCookieTTL = 180 * 24 * 60 * 60
)

// PreferencesHandler serves display preferences for signed-in users and
// anonymous visitors
type PreferencesHandler struct {
	service      services.PreferencesServiceInterface
	cookieDomain string
	cookieSecure bool
	responder
}

// NewPreferencesHandler creates a new PreferencesHandler
func NewPreferencesHandler(service services.PreferencesServiceInterface, tr *i18n.Translator, cookieDomain string, cookieSecure bool) *PreferencesHandler {
	return &PreferencesHandler{
		service:      service,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
		responder:    responder{tr: tr},
	}
}

// GetPreferences handles GET /api/v1/preferences
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.service.Get(c.Request.Context(), h.ownerKey(c))
	if err != nil {
		h.serviceError(c, err, "Failed to load preferences")
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /api/v1/preferences
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	prefs, err := h.service.Update(c.Request.Context(), h.ownerKey(c), &req)
	if err != nil {
		h.serviceError(c, err, "Failed to save preferences")
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// ownerKey is the user id when signed in, otherwise the client cookie,
// issuing a fresh client id when the cookie is missing or malformed
func (h *PreferencesHandler) ownerKey(c *gin.Context) string {
	if session, err := middleware.GetUserSession(c); err == nil {
		return "user:" + session.UserID
	}

	clientID, err := c.Cookie(ClientCookieName)
	if _, parseErr := uuid.Parse(clientID); err != nil || parseErr != nil {
		clientID = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ClientCookieName, clientID, clientCookieTTL, "/", h.cookieDomain, h.cookieSecure, true)
	}
	return "client:" + clientID
}
