package cache

import (
	"context"
	"sync"
	"time"

	"MarketLens/internal/model"
)

type entry struct {
	report    *model.Report
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache. Expired entries are dropped lazily
// on read.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[ReportKey]entry
	now     func() time.Time
}

// NewMemoryCache creates a MemoryCache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[ReportKey]entry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key ReportKey) (*model.Report, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.report, true
}

func (c *MemoryCache) Set(_ context.Context, key ReportKey, report *model.Report) {
	c.mu.Lock()
	c.entries[key] = entry{report: report, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
