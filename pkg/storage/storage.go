// Package storage keeps uploaded files (profile photos, library resources)
// either in an S3-compatible bucket or in process memory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// Object is a stored file
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// FileStore stores files and returns the URL they are reachable under
type FileStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Get(ctx context.Context, key string) (*Object, error)
	Backend() string
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// GenerateKey builds an object key like "photos/<owner>-<unix>.jpg"
func GenerateKey(prefix, owner, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-")
	if base == "" {
		base = "file"
	}
	if len(base) > 40 {
		base = base[:40]
	}
	return fmt.Sprintf("%s/%s-%d-%s%s", prefix, owner, time.Now().UnixNano(), base, ext)
}
