package cache

import (
	"time"

	"github.com/nmm-portal/nmm-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

const dashboardKeyPrefix = "dashboard:stats:"

// DashboardCache holds computed dashboard stats per user. Writes that
// change sessions or feedback call Flush, so entries never outlive the
// data they were computed from by more than one request.
type DashboardCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewDashboardCache creates a stats cache with the given TTL
func NewDashboardCache(ttlSeconds int) *DashboardCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &DashboardCache{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Get returns the stats cached for userID
func (c *DashboardCache) Get(userID string) (any, bool) {
	data, found := c.cache.Get(dashboardKeyPrefix + userID)
	if !found {
		metrics.CacheMisses.WithLabelValues("dashboard_stats").Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues("dashboard_stats").Inc()
	return data, true
}

// Set caches stats for userID
func (c *DashboardCache) Set(userID string, stats any) {
	if c.ttl <= 0 {
		return
	}
	c.cache.Set(dashboardKeyPrefix+userID, stats, c.ttl)
}

// Invalidate drops the entries of the given users
func (c *DashboardCache) Invalidate(userIDs ...string) {
	for _, id := range userIDs {
		c.cache.Delete(dashboardKeyPrefix + id)
	}
}

// Flush drops every entry. Mentor averages and school-head totals span
// many users, so session writes flush rather than invalidate.
func (c *DashboardCache) Flush() {
	c.cache.Flush()
}
