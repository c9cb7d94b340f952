package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/services"
)

type DashboardHandler struct {
	service services.DashboardServiceInterface
	responder
}

func NewDashboardHandler(service services.DashboardServiceInterface, tr *i18n.Translator) *DashboardHandler {
	return &DashboardHandler{service: service, responder: responder{tr: tr}}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), session)
	if err != nil {
		h.serviceError(c, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
