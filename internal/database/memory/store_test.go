package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registration(email, mobile string) *models.Registration {
	return &models.Registration{
		Role:    models.RoleMentor,
		Name:    "Meera Iyer",
		Email:   email,
		Mobile:  mobile,
		Address: models.Address{State: "Tamil Nadu", District: "Chennai", Pincode: "600001"},
		Details: &models.MentorDetails{Designation: "Lecturer", ProfessionalExperience: 9},
	}
}

func TestStore_Register(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	user, err := s.Register(ctx, registration("meera@example.com", "9000000001"))
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsActive)
	assert.IsType(t, &models.MentorDetails{}, user.Details)

	_, err = s.Register(ctx, registration("MENTEE@example.com", "9000000002"))
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)

	_, err = s.Register(ctx, registration("new@example.com", "9876543210"))
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)
}

func TestStore_FindForLogin(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	user, err := s.FindForLogin(ctx, "mentee@example.com", models.RoleMentee)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", user.Name)

	user, err = s.FindForLogin(ctx, "9876543211", models.RoleMentor)
	require.NoError(t, err)
	assert.Equal(t, "2", user.ID)

	_, err = s.FindForLogin(ctx, "mentee@example.com", models.RoleMentor)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	user, err := s.GetUser(ctx, "1")
	require.NoError(t, err)
	user.Name = "changed"
	user.Address.State = "changed"

	again, err := s.GetUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", again.Name)
	assert.Equal(t, "Delhi", again.Address.State)
}

func TestStore_GetUserSessions(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	mentee, err := s.GetUserSessions(ctx, "1", models.RoleMentee)
	require.NoError(t, err)
	assert.Len(t, mentee, 1)

	mentor, err := s.GetUserSessions(ctx, "2", models.RoleMentor)
	require.NoError(t, err)
	assert.Len(t, mentor, 1)

	none, err := s.GetUserSessions(ctx, "2", models.RoleMentee)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := s.GetUserSessions(ctx, "99", models.RoleMainAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_AttendAndFeedback(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	sess, err := s.AddAttendee(ctx, "1", "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "7"}, sess.Attendees)

	sess, err = s.AddAttendee(ctx, "1", "7")
	require.NoError(t, err)
	assert.Len(t, sess.Attendees, 2)

	require.NoError(t, s.AddFeedback(ctx, &models.Feedback{SessionID: "1", UserID: "1", Rating: 3}))
	require.NoError(t, s.AddFeedback(ctx, &models.Feedback{SessionID: "1", UserID: "1", Rating: 5}))

	sess, err = s.GetSession(ctx, "1")
	require.NoError(t, err)
	require.Len(t, sess.Feedback, 1)
	assert.Equal(t, 5, sess.Feedback[0].Rating)

	assert.ErrorIs(t, s.AddFeedback(ctx, &models.Feedback{SessionID: "nope"}), repository.ErrNotFound)
	_, err = s.AddAttendee(ctx, "nope", "1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_Resources(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	all, err := s.ListResources(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 7)

	strategies, err := s.ListResources(ctx, "Teaching Strategies")
	require.NoError(t, err)
	assert.Len(t, strategies, 2)

	created, err := s.CreateResource(ctx, &models.Resource{Title: "New", Category: "General", UploadedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, cats, "General")

	byID, err := s.GetResources(ctx, []string{"3", "missing", created.ID})
	require.NoError(t, err)
	require.Len(t, byID, 2)
	assert.Equal(t, "3", byID[0].ID)
}

func TestStore_Tickets(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	tickets, err := s.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 4)
	assert.Equal(t, "HD-2024-001", tickets[0].ID)

	created, err := s.CreateTicket(ctx, &models.Ticket{Title: "x", SubmittedAt: mustTime("2024-12-30T10:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, "HD-2024-005", created.ID)

	created, err = s.CreateTicket(ctx, &models.Ticket{Title: "y", SubmittedAt: mustTime("2025-01-02T10:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, "HD-2025-001", created.ID)

	at := mustTime("2025-01-03T00:00:00Z")
	updated, err := s.UpdateTicketStatus(ctx, "HD-2024-001", "Resolved", at)
	require.NoError(t, err)
	assert.Equal(t, "Resolved", updated.Status)
	assert.Equal(t, at, updated.LastUpdate)

	_, err = s.UpdateTicketStatus(ctx, "HD-1999-001", "Closed", at)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_LatencyHonoursCancellation(t *testing.T) {
	s := NewStore(WithLatency(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.ListTickets(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStore_ConcurrentRegister(t *testing.T) {
	ctx := context.Background()
	s := NewStore(WithoutSeed())

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Register(ctx, registration("same@example.com", "9000000009"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}
