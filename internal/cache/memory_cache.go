package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/epeers/marketwatch/internal/models"
)

// MemoryCache provides an in-memory L1 cache for fetched price series
type MemoryCache struct {
	series map[string]seriesEntry
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
}

type seriesEntry struct {
	data      models.AssetSeries
	fetchedAt time.Time
}

// NewMemoryCache creates a new in-memory cache whose entries expire after ttl
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		series: make(map[string]seriesEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// seriesCacheKey generates a cache key for a symbol and calendar date range
func seriesCacheKey(symbol string, startDate, endDate time.Time) string {
	return strings.ToUpper(symbol) + "|" + startDate.Format("2006-01-02") + "|" + endDate.Format("2006-01-02")
}

// GetSeries retrieves a cached series if it is still fresh
func (c *MemoryCache) GetSeries(symbol string, startDate, endDate time.Time) (models.AssetSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.series[seriesCacheKey(symbol, startDate, endDate)]
	if !exists {
		return models.AssetSeries{}, false
	}
	if c.now().Sub(entry.fetchedAt) > c.ttl {
		return models.AssetSeries{}, false
	}
	return entry.data, true
}

// SetSeries caches a series
func (c *MemoryCache) SetSeries(symbol string, startDate, endDate time.Time, data models.AssetSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.series[seriesCacheKey(symbol, startDate, endDate)] = seriesEntry{
		data:      data,
		fetchedAt: c.now(),
	}
}

// Purge drops expired entries and returns how many were removed
func (c *MemoryCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.series {
		if c.now().Sub(entry.fetchedAt) > c.ttl {
			delete(c.series, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries, fresh or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.series)
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.series = make(map[string]seriesEntry)
	c.mu.Unlock()
}
