package models

import "time"

// SessionStatus is the lifecycle state of a mentoring session
type SessionStatus string

const (
	SessionUpcoming  SessionStatus = "upcoming"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
	SessionRequested SessionStatus = "requested"
)

// Session is a mentoring session run by a mentor
type Session struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	MentorID    string        `json:"mentorId"`
	MentorName  string        `json:"mentorName"`
	Area        string        `json:"area"`
	DateTime    time.Time     `json:"dateTime"`
	DurationMin int           `json:"durationMinutes"`
	Language    string        `json:"language"`
	Status      SessionStatus `json:"status"`
	Attendees   []string      `json:"attendees"`
	Resources   []Resource    `json:"resources"`
	Feedback    []Feedback    `json:"feedback,omitempty"`
}

// HasAttendee reports whether userID joined the session
func (s *Session) HasAttendee(userID string) bool {
	for _, id := range s.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// Feedback is a rating left on a session
type Feedback struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	UserID      string    `json:"userId"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// CreateSessionRequest is the partial session a mentor submits
type CreateSessionRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Area        string     `json:"area" binding:"max=100"`
	DateTime    *time.Time `json:"dateTime"`
	DurationMin int        `json:"durationMinutes" binding:"omitempty,min=15,max=480"`
	Language    string     `json:"language" binding:"max=50"`
	ResourceIDs []string   `json:"resourceIds"`
}

// FeedbackRequest rates a session
type FeedbackRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments" binding:"max=2000"`
}
