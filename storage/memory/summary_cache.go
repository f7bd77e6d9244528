package memorystore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/facture-ma/dashkit/projects"
)

// SummaryCache is an in-memory TTL cache for computed dashboard summaries.
// The engine itself never caches; this is the collaborator that owns it
// when Redis is not available.
type SummaryCache struct {
	mu     sync.Mutex
	ttl    time.Duration
	data   map[uuid.UUID]summaryItem
	closed chan struct{}
}

type summaryItem struct {
	v   projects.Summary
	exp time.Time
}

// NewSummaryCache creates a cache with the given TTL (default 10 minutes)
// and starts a background goroutine that prunes expired entries every
// minute.
func NewSummaryCache(ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c := &SummaryCache{ttl: ttl, data: make(map[uuid.UUID]summaryItem), closed: make(chan struct{})}
	go c.cleanupLoop()
	return c
}

func (c *SummaryCache) Put(_ context.Context, companyID uuid.UUID, s projects.Summary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[companyID] = summaryItem{v: s, exp: time.Now().Add(c.ttl)}
	return nil
}

func (c *SummaryCache) Get(_ context.Context, companyID uuid.UUID) (projects.Summary, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.data[companyID]
	if !ok {
		return projects.Summary{}, false, nil
	}
	if time.Now().After(it.exp) {
		delete(c.data, companyID)
		return projects.Summary{}, false, nil
	}
	return it.v, true, nil
}

func (c *SummaryCache) Del(_ context.Context, companyID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, companyID)
	return nil
}

func (c *SummaryCache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.closed:
			return
		}
	}
}

func (c *SummaryCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, v := range c.data {
		if now.After(v.exp) {
			delete(c.data, k)
		}
	}
}

// Close stops the background cleanup goroutine.
func (c *SummaryCache) Close() error {
	close(c.closed)
	return nil
}
