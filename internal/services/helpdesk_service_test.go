package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seededTickets() []*models.Ticket {
	return []*models.Ticket{
		{ID: "HD-2024-001", Title: "Unable to upload session materials", Category: "Technical", Status: "Open", Priority: "High", SubmittedBy: "Priya Sharma"},
		{ID: "HD-2024-002", Title: "Session scheduling conflict", Category: "Scheduling", Status: "In Progress", Priority: "Medium", SubmittedBy: "Dr. Rajesh Kumar"},
		{ID: "HD-2024-003", Title: "Account access issue", Category: "Account", Status: "Resolved", Priority: "High", SubmittedBy: "Maya Patel"},
		{ID: "HD-2024-004", Title: "Mobile app not syncing", Category: "Technical", Status: "Open", Priority: "Low", SubmittedBy: "Amit Singh"},
	}
}

func TestHelpdeskService_ListTickets(t *testing.T) {
	tests := []struct {
		name   string
		filter models.TicketFilter
		want   []string
	}{
		{"no filter", models.TicketFilter{}, []string{"HD-2024-001", "HD-2024-002", "HD-2024-003", "HD-2024-004"}},
		{"sentinels", models.TicketFilter{Category: models.AllCategories, Status: models.AllStatus, Priority: models.AllPriority},
			[]string{"HD-2024-001", "HD-2024-002", "HD-2024-003", "HD-2024-004"}},
		{"category", models.TicketFilter{Category: "Technical"}, []string{"HD-2024-001", "HD-2024-004"}},
		{"status and priority", models.TicketFilter{Status: "Open", Priority: "High"}, []string{"HD-2024-001"}},
		{"search by submitter", models.TicketFilter{Search: "maya"}, []string{"HD-2024-003"}},
		{"search by id", models.TicketFilter{Search: "hd-2024-002"}, []string{"HD-2024-002"}},
		{"no match", models.TicketFilter{Search: "billing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockTicketStore)
			svc := services.NewHelpdeskService(store, nil)
			store.On("ListTickets", mock.Anything).Return(seededTickets(), nil).Once()

			resp, err := svc.ListTickets(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := []string{}
			for _, tk := range resp.Tickets {
				ids = append(ids, tk.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), resp.Total)
			assert.Equal(t, models.TicketStatuses, resp.Statuses)
		})
	}
}

func TestHelpdeskService_CreateTicket(t *testing.T) {
	store := new(MockTicketStore)
	svc := services.NewHelpdeskService(store, nil)
	ctx := context.Background()

	store.On("CreateTicket", ctx, mock.MatchedBy(func(tk *models.Ticket) bool {
		return tk.Status == models.TicketStatusOpen &&
			tk.SubmittedBy == "Priya Sharma" &&
			tk.Title == "Cannot join session" &&
			tk.SubmittedAt.Equal(tk.LastUpdate)
	})).Return(&models.Ticket{ID: "HD-2026-001", Category: "Technical", Priority: "High"}, nil).Once()

	created, err := svc.CreateTicket(ctx, menteeSession(), &models.CreateTicketRequest{
		Title: " Cannot join session ", Category: "Technical", Priority: "High", Description: "Link is broken",
	})
	require.NoError(t, err)
	assert.Equal(t, "HD-2026-001", created.ID)
	store.AssertExpectations(t)
}

func TestHelpdeskService_CreateTicketBlankText(t *testing.T) {
	store := new(MockTicketStore)
	svc := services.NewHelpdeskService(store, nil)

	_, err := svc.CreateTicket(context.Background(), menteeSession(), &models.CreateTicketRequest{
		Title: "   ", Category: "Technical", Priority: "High", Description: "\t",
	})

	var vf *services.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, []string{"title", "description"}, vf.Errors.Fields())
	store.AssertNotCalled(t, "CreateTicket", mock.Anything, mock.Anything)
}

func TestHelpdeskService_UpdateTicketStatus(t *testing.T) {
	store := new(MockTicketStore)
	svc := services.NewHelpdeskService(store, nil)
	ctx := context.Background()
	admin := &models.UserSession{UserID: "99", Role: models.RoleStateAdmin}

	store.On("UpdateTicketStatus", ctx, "HD-2024-001", "Resolved", mock.AnythingOfType("time.Time")).
		Return(&models.Ticket{ID: "HD-2024-001", Status: "Resolved", LastUpdate: time.Now()}, nil).Once()
	store.On("UpdateTicketStatus", ctx, "HD-1999-001", "Closed", mock.AnythingOfType("time.Time")).
		Return(nil, repository.ErrNotFound).Once()

	updated, err := svc.UpdateTicketStatus(ctx, admin, "HD-2024-001", &models.UpdateTicketStatusRequest{Status: "Resolved"})
	require.NoError(t, err)
	assert.Equal(t, "Resolved", updated.Status)

	_, err = svc.UpdateTicketStatus(ctx, admin, "HD-1999-001", &models.UpdateTicketStatusRequest{Status: "Closed"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.UpdateTicketStatus(ctx, menteeSession(), "HD-2024-001", &models.UpdateTicketStatusRequest{Status: "Closed"})
	assert.ErrorIs(t, err, services.ErrRoleNotAllowed)
}
