package models

import (
	"fmt"
	"strings"
	"time"
)

// Sentinel filter values meaning "no filter"
const (
	AllCategories = "All Categories"
	AllStatus     = "All Status"
	AllPriority   = "All Priority"
)

var (
	TicketCategories = []string{"Technical", "Account", "Scheduling", "General", "Billing"}
	TicketStatuses   = []string{"Open", "In Progress", "Resolved", "Closed"}
	TicketPriorities = []string{"Low", "Medium", "High", "Critical"}
)

const TicketStatusOpen = "Open"

// Ticket is a help desk request
type Ticket struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	SubmittedBy string    `json:"submittedBy"`
	SubmittedAt time.Time `json:"submittedAt"`
	LastUpdate  time.Time `json:"lastUpdate"`
	Description string    `json:"description"`
}

// TicketFilter narrows the ticket list. Empty fields and the "All …"
// sentinels mean no filter.
type TicketFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
}

// Matches reports whether t passes the filter. Search is case-insensitive
// over title, id and submitter.
func (f TicketFilter) Matches(t *Ticket) bool {
	if f.Category != "" && f.Category != AllCategories && t.Category != f.Category {
		return false
	}
	if f.Status != "" && f.Status != AllStatus && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && f.Priority != AllPriority && t.Priority != f.Priority {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.ID), term) ||
			strings.Contains(strings.ToLower(t.SubmittedBy), term)
	}
	return true
}

// TicketID formats the n-th ticket of a year as HD-YYYY-NNN
func TicketID(year, n int) string {
	return fmt.Sprintf("HD-%04d-%03d", year, n)
}

// TicketPrefix is the id prefix shared by a year's tickets
func TicketPrefix(year int) string {
	return fmt.Sprintf("HD-%04d-", year)
}

// CreateTicketRequest opens a ticket
type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=200"`
	Category    string `json:"category" binding:"required,oneof=Technical Account Scheduling General Billing"`
	Priority    string `json:"priority" binding:"required,oneof=Low Medium High Critical"`
	Description string `json:"description" binding:"required,notblank,max=5000"`
}

// UpdateTicketStatusRequest moves a ticket through its lifecycle
type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Open 'In Progress' Resolved Closed"`
}

// TicketListResponse is the help desk page payload
type TicketListResponse struct {
	Tickets    []Ticket `json:"tickets"`
	Total      int      `json:"total"`
	Categories []string `json:"categories"`
	Statuses   []string `json:"statuses"`
	Priorities []string `json:"priorities"`
}
