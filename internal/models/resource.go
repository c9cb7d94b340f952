package models

import (
	"strings"
	"time"
)

// ResourceType is the kind of a library item
type ResourceType string

const (
	ResourcePDF   ResourceType = "pdf"
	ResourcePPT   ResourceType = "ppt"
	ResourceVideo ResourceType = "video"
	ResourceDoc   ResourceType = "doc"
)

// DefaultResourceCategory is used when an upload names none
const DefaultResourceCategory = "General"

// ResourceTypeFor derives the type from a declared media type
func ResourceTypeFor(contentType string) ResourceType {
	switch {
	case strings.Contains(contentType, "pdf"):
		return ResourcePDF
	case strings.Contains(contentType, "video"):
		return ResourceVideo
	default:
		return ResourceDoc
	}
}

// Resource is an item in the resource library
type Resource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ResourceType `json:"type"`
	URL         string       `json:"url"`
	UploadedBy  string       `json:"uploadedBy"`
	UploadedAt  time.Time    `json:"uploadedAt"`
	Category    string       `json:"category"`
}

// AllTypes and AllResourceCategories are the "no filter" values of the library page
const (
	AllTypes              = "All Types"
	AllResourceCategories = "All Categories"
)

// ResourceCategories are the library's browse categories
var ResourceCategories = []string{
	"Teaching Strategies", "Classroom Management", "Assessment Methods", "Technology Integration",
	"Professional Development", "Subject-Specific", "Special Education",
}

var resourceTypeLabels = map[string]ResourceType{
	"PDF Documents":       ResourcePDF,
	"Video Tutorials":     ResourceVideo,
	"Presentations":       ResourcePPT,
	"Interactive Content": ResourceDoc,
}

// ParseResourceType accepts a type code or its page label. Empty and
// AllTypes mean no filter.
func ParseResourceType(s string) (ResourceType, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == AllTypes {
		return "", true
	}
	if t, ok := resourceTypeLabels[s]; ok {
		return t, true
	}
	switch t := ResourceType(strings.ToLower(s)); t {
	case ResourcePDF, ResourcePPT, ResourceVideo, ResourceDoc:
		return t, true
	}
	return "", false
}

// ResourceFilter narrows a resource listing; zero values match everything
type ResourceFilter struct {
	Category string
	Search   string
	Type     ResourceType
}

// Matches reports whether r passes the filter. Search is case-insensitive
// over title, description and category.
func (f ResourceFilter) Matches(r *Resource) bool {
	if f.Category != "" && f.Category != AllResourceCategories && r.Category != f.Category {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return strings.Contains(strings.ToLower(r.Title), term) ||
			strings.Contains(strings.ToLower(r.Description), term) ||
			strings.Contains(strings.ToLower(r.Category), term)
	}
	return true
}

// UploadResourceRequest carries the optional metadata of an upload
type UploadResourceRequest struct {
	Title       string `form:"title" binding:"max=200"`
	Description string `form:"description" binding:"max=5000"`
	Category    string `form:"category" binding:"max=100"`
}
