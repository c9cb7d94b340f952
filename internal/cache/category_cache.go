package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const categoriesCacheKey = "resource:categories"

// CategorySource loads the distinct resource categories
type CategorySource interface {
	Categories(ctx context.Context) ([]string, error)
}

// CategoryCache keeps the resource category list between uploads
type CategoryCache struct {
	cache  *gocache.Cache
	source CategorySource
	ttl    time.Duration
	mu     sync.Mutex
}

// NewCategoryCache creates a category cache refreshed from source
func NewCategoryCache(source CategorySource, ttlSeconds int) *CategoryCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &CategoryCache{
		cache:  gocache.New(ttl, 10*time.Minute),
		source: source,
		ttl:    ttl,
	}
}

// Get returns the cached categories, loading them on a miss
func (c *CategoryCache) Get(ctx context.Context) ([]string, error) {
	if data, found := c.cache.Get(categoriesCacheKey); found {
		if categories, ok := data.([]string); ok {
			metrics.CacheHits.WithLabelValues("resource_categories").Inc()
			return append([]string(nil), categories...), nil
		}
		logger.Error("Invalid category cache data type")
		c.cache.Delete(categoriesCacheKey)
	}

	metrics.CacheMisses.WithLabelValues("resource_categories").Inc()
	return c.refresh(ctx)
}

// Invalidate drops the cached list; the next Get reloads it
func (c *CategoryCache) Invalidate() {
	c.cache.Delete(categoriesCacheKey)
}

func (c *CategoryCache) refresh(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// another caller may have refreshed while we waited
	if data, found := c.cache.Get(categoriesCacheKey); found {
		if categories, ok := data.([]string); ok {
			return append([]string(nil), categories...), nil
		}
	}

	categories, err := c.source.Categories(ctx)
	if err != nil {
		logger.Error("Failed to refresh category cache", zap.Error(err))
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	c.cache.Set(categoriesCacheKey, categories, c.ttl)
	logger.Debug("Category cache refreshed", zap.Int("count", len(categories)))

	return append([]string(nil), categories...), nil
}
