package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/services"
)

// HelpdeskHandler handles help desk ticket endpoints
type HelpdeskHandler struct {
	service services.HelpdeskServiceInterface
	responder
}

// NewHelpdeskHandler creates a new HelpdeskHandler
func NewHelpdeskHandler(service services.HelpdeskServiceInterface, tr *i18n.Translator) *HelpdeskHandler {
	return &HelpdeskHandler{service: service, responder: responder{tr: tr}}
}

// ListTickets handles GET /api/v1/helpdesk/tickets?search=&category=&status=&priority=
func (h *HelpdeskHandler) ListTickets(c *gin.Context) {
	var filter models.TicketFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.bindError(c, err)
		return
	}

	resp, err := h.service.ListTickets(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "Failed to fetch tickets")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateTicket handles POST /api/v1/helpdesk/tickets
func (h *HelpdeskHandler) CreateTicket(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	ticket, err := h.service.CreateTicket(c.Request.Context(), session, &req)
	if err != nil {
		h.serviceError(c, err, "Failed to create ticket")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// UpdateTicketStatus handles POST /api/v1/helpdesk/tickets/:id/status
func (h *HelpdeskHandler) UpdateTicketStatus(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	var req models.UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	ticket, err := h.service.UpdateTicketStatus(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		h.serviceError(c, err, "Failed to update ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}
