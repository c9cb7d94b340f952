package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nmm-portal/nmm-api/pkg/metrics"
)

// MemoryStore keeps files in process memory and serves them under baseURL
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]*Object
	baseURL string
}

// NewMemoryStore creates an in-memory file store. baseURL is the route prefix
// files are served from, e.g. "/api/v1/files".
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]*Object),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Backend names the store for metrics and logs
func (m *MemoryStore) Backend() string {
	return "memory"
}

// Put stores a copy of data
func (m *MemoryStore) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	start := time.Now()
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[key] = &Object{Key: key, ContentType: contentType, Data: buf}
	m.mu.Unlock()

	metrics.StorageRequestDuration.WithLabelValues(m.Backend(), "putObject", "success").Observe(metrics.MeasureDuration(start))
	metrics.StorageRequestTotal.WithLabelValues(m.Backend(), "putObject", "success").Inc()

	return m.baseURL + "/" + key, nil
}

// Get returns a stored object
func (m *MemoryStore) Get(_ context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[strings.TrimPrefix(key, "/")]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return obj, nil
}
