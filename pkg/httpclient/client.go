package httpclient

import (
	"net/http"
	"time"
)

// Client defines an interface for making HTTP requests.
// *http.Client satisfies it; tests substitute a fake.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewStandardClient creates an HTTP client with default settings
func NewStandardClient() Client {
	return &http.Client{Timeout: 30 * time.Second}
}
