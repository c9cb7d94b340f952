package models

// MenteeStats is the mentee dashboard summary
type MenteeStats struct {
	MentoringHours    float64 `json:"mentoringHours"`
	SessionsAttended  int     `json:"sessionsAttended"`
	UpcomingSessions  int     `json:"upcomingSessions"`
	CompletedSessions int     `json:"completedSessions"`
}

// MentorStats is the mentor dashboard summary
type MentorStats struct {
	SessionsCreated int     `json:"sessionsCreated"`
	ActiveMentees   int     `json:"activeMentees"`
	AverageRating   float64 `json:"averageRating"`
	TotalHours      float64 `json:"totalHours"`
}

// SchoolHeadStats is the school head dashboard summary
type SchoolHeadStats struct {
	TeachersManaged   int     `json:"teachersManaged"`
	SessionsOrganized int     `json:"sessionsOrganized"`
	AttendanceRate    float64 `json:"attendanceRate"` // fraction in [0, 1]
	ActivePrograms    int     `json:"activePrograms"`
}

// EmptyStats is returned for roles without a dashboard summary; it renders as {}
type EmptyStats struct{}

// Dashboard joins the stats and session reads
type Dashboard struct {
	Role     Role      `json:"role"`
	Stats    any       `json:"stats"`
	Sessions []Session `json:"sessions"`
}
