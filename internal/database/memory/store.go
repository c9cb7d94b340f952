// Package memory is the in-process collaborator backend. It is seeded with
// demo data and can simulate network latency.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
)

const backendName = "memory"

// Store keeps every collection behind one RWMutex. Reads return copies.
type Store struct {
	mu        sync.RWMutex
	users     []*models.User
	sessions  []*models.Session
	resources []*models.Resource
	tickets   []*models.Ticket

	latency time.Duration
	now     func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithLatency delays every call, honouring context cancellation
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutSeed starts with empty collections
func WithoutSeed() Option {
	return func(s *Store) {
		s.users, s.sessions, s.resources, s.tickets = nil, nil, nil, nil
	}
}

// NewStore returns a seeded store
func NewStore(opts ...Option) *Store {
	s := &Store{
		users:     seedUsers(),
		sessions:  seedSessions(),
		resources: seedResources(),
		tickets:   seedTickets(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Name() string { return backendName }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() {}

// wait simulates collaborator latency
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Store) begin(ctx context.Context, operation string) (func(error), error) {
	start := time.Now()
	if err := s.wait(ctx); err != nil {
		metrics.ObserveStore(backendName, operation, start, err)
		return nil, err
	}
	return func(err error) { metrics.ObserveStore(backendName, operation, start, err) }, nil
}

// Users

func (s *Store) Register(ctx context.Context, reg *models.Registration) (user *models.User, err error) {
	done, err := s.begin(ctx, "registerUser")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, reg.Email) || u.Mobile == reg.Mobile {
			return nil, repository.ErrDuplicateUser
		}
	}

	addr := reg.Address
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        reg.Email,
		Mobile:       reg.Mobile,
		Name:         reg.Name,
		Role:         reg.Role,
		DateOfBirth:  reg.DateOfBirth,
		Gender:       reg.Gender,
		Photo:        reg.Photo,
		Address:      &addr,
		Details:      reg.Details,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
		PasswordHash: reg.PasswordHash,
	}
	s.users = append(s.users, u)
	return cloneUser(u), nil
}

func (s *Store) FindForLogin(ctx context.Context, identifier string, role models.Role) (user *models.User, err error) {
	done, err := s.begin(ctx, "loginUser")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	identifier = strings.TrimSpace(identifier)
	isEmail := strings.Contains(identifier, "@")
	for _, u := range s.users {
		if u.Role != role {
			continue
		}
		if (isEmail && strings.EqualFold(u.Email, identifier)) || (!isEmail && u.Mobile == identifier) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) GetUser(ctx context.Context, id string) (user *models.User, err error) {
	done, err := s.begin(ctx, "getUser")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListUsers(ctx context.Context, role models.Role) (users []*models.User, err error) {
	done, err := s.begin(ctx, "listUsers")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if role == "" || u.Role == role {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

// Sessions

func (s *Store) ListSessions(ctx context.Context) (out []*models.Session, err error) {
	done, err := s.begin(ctx, "listSessions")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		out = append(out, cloneSession(sess))
	}
	sortSessions(out)
	return out, nil
}

func (s *Store) GetUserSessions(ctx context.Context, userID string, role models.Role) (out []*models.Session, err error) {
	done, err := s.begin(ctx, "getUserSessions")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out = []*models.Session{}
	for _, sess := range s.sessions {
		switch role {
		case models.RoleMentee:
			if !sess.HasAttendee(userID) {
				continue
			}
		case models.RoleMentor:
			if sess.MentorID != userID {
				continue
			}
		}
		out = append(out, cloneSession(sess))
	}
	sortSessions(out)
	return out, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (sess *models.Session, err error) {
	done, err := s.begin(ctx, "getSession")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if found := s.findSession(id); found != nil {
		return cloneSession(found), nil
	}
	return nil, repository.ErrNotFound
}

func (s *Store) CreateSession(ctx context.Context, sess *models.Session) (created *models.Session, err error) {
	done, err := s.begin(ctx, "createSession")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneSession(sess)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	s.sessions = append(s.sessions, stored)
	return cloneSession(stored), nil
}

func (s *Store) AddAttendee(ctx context.Context, sessionID, userID string) (sess *models.Session, err error) {
	done, err := s.begin(ctx, "addAttendee")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.findSession(sessionID)
	if found == nil {
		return nil, repository.ErrNotFound
	}
	if !found.HasAttendee(userID) {
		found.Attendees = append(found.Attendees, userID)
	}
	return cloneSession(found), nil
}

func (s *Store) AddFeedback(ctx context.Context, fb *models.Feedback) (err error) {
	done, err := s.begin(ctx, "addFeedback")
	if err != nil {
		return err
	}
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.findSession(fb.SessionID)
	if found == nil {
		return repository.ErrNotFound
	}

	stored := *fb
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	for i := range found.Feedback {
		if found.Feedback[i].UserID == fb.UserID {
			stored.ID = found.Feedback[i].ID
			found.Feedback[i] = stored
			return nil
		}
	}
	found.Feedback = append(found.Feedback, stored)
	return nil
}

func (s *Store) findSession(id string) *models.Session {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

// Resources

func (s *Store) ListResources(ctx context.Context, category string) (out []*models.Resource, err error) {
	done, err := s.begin(ctx, "getResources")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out = []*models.Resource{}
	for _, r := range s.resources {
		if category == "" || r.Category == category {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (s *Store) GetResources(ctx context.Context, ids []string) (out []*models.Resource, err error) {
	done, err := s.begin(ctx, "getResourcesByID")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out = []*models.Resource{}
	for _, id := range ids {
		for _, r := range s.resources {
			if r.ID == id {
				cp := *r
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (s *Store) CreateResource(ctx context.Context, r *models.Resource) (created *models.Resource, err error) {
	done, err := s.begin(ctx, "uploadResource")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *r
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	s.resources = append(s.resources, &stored)
	cp := stored
	return &cp, nil
}

func (s *Store) Categories(ctx context.Context) (out []string, err error) {
	done, err := s.begin(ctx, "resourceCategories")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	out = []string{}
	for _, r := range s.resources {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Tickets

func (s *Store) ListTickets(ctx context.Context) (out []*models.Ticket, err error) {
	done, err := s.begin(ctx, "listTickets")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out = []*models.Ticket{}
	for _, t := range s.tickets {
		cp := *t
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (s *Store) CreateTicket(ctx context.Context, t *models.Ticket) (created *models.Ticket, err error) {
	done, err := s.begin(ctx, "createTicket")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *t
	stored.ID = models.TicketID(t.SubmittedAt.Year(), s.nextTicketSeq(t.SubmittedAt.Year()))
	s.tickets = append(s.tickets, &stored)
	cp := stored
	return &cp, nil
}

// nextTicketSeq returns one past the highest sequence used in year
func (s *Store) nextTicketSeq(year int) int {
	prefix := models.TicketPrefix(year)
	highest := 0
	for _, t := range s.tickets {
		if rest, ok := strings.CutPrefix(t.ID, prefix); ok {
			if n, err := strconv.Atoi(rest); err == nil && n > highest {
				highest = n
			}
		}
	}
	return highest + 1
}

func (s *Store) UpdateTicketStatus(ctx context.Context, id, status string, at time.Time) (updated *models.Ticket, err error) {
	done, err := s.begin(ctx, "updateTicketStatus")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tickets {
		if t.ID == id {
			t.Status = status
			t.LastUpdate = at
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	if u.Address != nil {
		addr := *u.Address
		cp.Address = &addr
	}
	switch d := u.Details.(type) {
	case *models.MenteeDetails:
		v := *d
		cp.Details = &v
	case *models.MentorDetails:
		v := *d
		v.SupportingDocuments = append([]string(nil), d.SupportingDocuments...)
		cp.Details = &v
	case *models.SchoolHeadDetails:
		v := *d
		cp.Details = &v
	}
	return &cp
}

func cloneSession(s *models.Session) *models.Session {
	cp := *s
	cp.Attendees = append([]string{}, s.Attendees...)
	cp.Resources = append([]models.Resource{}, s.Resources...)
	if s.Feedback != nil {
		cp.Feedback = append([]models.Feedback{}, s.Feedback...)
	}
	return &cp
}

func sortSessions(sessions []*models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].DateTime.Before(sessions[j].DateTime) })
}
