package models

import "strings"

// Role is the user category that decides which form fields and dashboard apply
type Role string

const (
	RoleMentee     Role = "mentee"
	RoleMentor     Role = "mentor"
	RoleSchoolHead Role = "school-head"
	RoleReviewer   Role = "reviewer"
	RoleStateAdmin Role = "state-admin"
	RoleMainAdmin  Role = "main-admin"
)

// AllRoles lists every role in display order
var AllRoles = []Role{RoleMentee, RoleMentor, RoleSchoolHead, RoleReviewer, RoleStateAdmin, RoleMainAdmin}

// SelfServiceRoles are the roles offered on the public registration and login forms
var SelfServiceRoles = []Role{RoleMentee, RoleMentor, RoleSchoolHead}

var roleLabels = map[Role]string{
	RoleMentee:     "Mentee",
	RoleMentor:     "Mentor",
	RoleSchoolHead: "School Head",
	RoleReviewer:   "Reviewer",
	RoleStateAdmin: "State Admin",
	RoleMainAdmin:  "Main Admin",
}

var roleDescriptions = map[Role]string{
	RoleMentee:     "Teachers seeking professional development and mentoring support",
	RoleMentor:     "Experienced educators providing guidance and support",
	RoleSchoolHead: "School administrators managing teacher development programs",
	RoleReviewer:   "Subject matter experts reviewing mentor applications",
	RoleStateAdmin: "State-level administrators overseeing regional programs",
	RoleMainAdmin:  "System administrators with full platform access",
}

// IsValid reports whether r is a declared role
func (r Role) IsValid() bool {
	_, ok := roleLabels[r]
	return ok
}

// IsAdmin reports whether r moderates help desk tickets
func (r Role) IsAdmin() bool {
	return r == RoleReviewer || r == RoleStateAdmin || r == RoleMainAdmin
}

// Label returns the human-readable role name
func (r Role) Label() string {
	return roleLabels[r]
}

// Description returns the one-line role description
func (r Role) Description() string {
	return roleDescriptions[r]
}

// DashboardPath is "/" + role without hyphens + "/dashboard"
func (r Role) DashboardPath() string {
	return "/" + strings.ReplaceAll(string(r), "-", "") + "/dashboard"
}
