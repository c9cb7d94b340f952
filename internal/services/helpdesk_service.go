package services

import (
	"context"
	"strings"
	"time"

	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/internal/validation"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	"github.com/nmm-portal/nmm-api/pkg/trigger"
	"go.uber.org/zap"
)

// HelpdeskService handles support tickets
type HelpdeskService struct {
	tickets  repository.TicketStore
	notifier *trigger.Notifier
	now      func() time.Time
}

// NewHelpdeskService creates a new help desk service instance
func NewHelpdeskService(tickets repository.TicketStore, notifier *trigger.Notifier) *HelpdeskService {
	return &HelpdeskService{
		tickets:  tickets,
		notifier: notifier,
		now:      time.Now,
	}
}

// ListTickets returns the tickets passing filter together with the
// filter options of the page
func (s *HelpdeskService) ListTickets(ctx context.Context, filter models.TicketFilter) (*models.TicketListResponse, error) {
	all, err := s.tickets.ListTickets(ctx)
	if err != nil {
		return nil, err
	}

	tickets := make([]models.Ticket, 0, len(all))
	for _, t := range all {
		if filter.Matches(t) {
			tickets = append(tickets, *t)
		}
	}

	return &models.TicketListResponse{
		Tickets:    tickets,
		Total:      len(tickets),
		Categories: models.TicketCategories,
		Statuses:   models.TicketStatuses,
		Priorities: models.TicketPriorities,
	}, nil
}

// CreateTicket opens a ticket in the Open state
func (s *HelpdeskService) CreateTicket(ctx context.Context, session *models.UserSession, req *models.CreateTicketRequest) (*models.Ticket, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	var errs validation.ValidationErrors
	if title == "" {
		errs = append(errs, validation.ValidationError{Field: "title", Code: validation.CodeRequired, Message: "Title is required"})
	}
	if description == "" {
		errs = append(errs, validation.ValidationError{Field: "description", Code: validation.CodeRequired, Message: "Description is required"})
	}
	if err := validationFailure(errs); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.tickets.CreateTicket(ctx, &models.Ticket{
		Title:       title,
		Category:    req.Category,
		Status:      models.TicketStatusOpen,
		Priority:    req.Priority,
		SubmittedBy: session.Name,
		SubmittedAt: now,
		LastUpdate:  now,
		Description: description,
	})
	if err != nil {
		logger.Error("Failed to create ticket", zap.String("user_id", session.UserID), zap.Error(err))
		return nil, err
	}

	metrics.HelpdeskTickets.WithLabelValues(created.Category, created.Priority).Inc()
	s.notifier.CallAsync("ticket_created", created)

	logger.Info("Help desk ticket created",
		zap.String("ticket_id", created.ID),
		zap.String("category", created.Category),
		zap.String("priority", created.Priority))

	return created, nil
}

// UpdateTicketStatus moves a ticket to a new status. Reviewer and admin
// roles only.
func (s *HelpdeskService) UpdateTicketStatus(ctx context.Context, session *models.UserSession, id string, req *models.UpdateTicketStatusRequest) (*models.Ticket, error) {
	if !session.Role.IsAdmin() {
		return nil, ErrRoleNotAllowed
	}

	updated, err := s.tickets.UpdateTicketStatus(ctx, id, req.Status, s.now().UTC())
	if err != nil {
		return nil, err
	}

	logger.Info("Help desk ticket status changed",
		zap.String("ticket_id", id),
		zap.String("status", req.Status),
		zap.String("by", session.UserID))

	return updated, nil
}
