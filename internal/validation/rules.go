// Package validation holds the pure form rules of the portal: field
// predicates, the registration and login validators, and the composer that
// turns a valid draft into a role-specific registration.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/nmm-portal/nmm-api/internal/models"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// ValidateEmail reports whether s looks like local@domain.tld
func ValidateEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidateMobile reports whether s is a 10-digit Indian mobile number starting 6-9
func ValidateMobile(s string) bool {
	return mobileRegex.MatchString(s)
}

// ValidateRequired is true for non-blank strings and any non-nil value
func ValidateRequired(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return !rv.IsNil()
	}
	return true
}

// ValidateMinLength reports whether s has at least n characters
func ValidateMinLength(s string, n int) bool {
	return len([]rune(s)) >= n
}

// ValidateFileSize reports whether the file fits in maxMB megabytes
func ValidateFileSize(file models.FileHandle, maxMB float64) bool {
	return float64(file.Size) <= maxMB*1024*1024
}

// ValidateFileType reports whether the declared media type contains any of
// the allowed substrings. Two extensions to the plain substring rule: "*"
// allows every type, and a trailing wildcard ("image/*") is matched as
// "image/".
func ValidateFileType(file models.FileHandle, allowed []string) bool {
	for _, a := range allowed {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if a == "*" {
			return true
		}
		if strings.Contains(file.ContentType, strings.TrimSuffix(a, "*")) {
			return true
		}
	}
	return false
}
