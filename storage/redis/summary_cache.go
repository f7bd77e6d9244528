// Package redisstore caches computed dashboard summaries in Redis. Caching
// stays outside the engine; this collaborator owns the lifetime of derived
// results.
package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/facture-ma/dashkit/projects"
)

type SummaryCache struct {
	rdb   *redis.Client
	keyNS string
	ttl   time.Duration
}

func NewSummaryCache(rdb *redis.Client, keyPrefix string, ttl time.Duration) *SummaryCache {
	if keyPrefix == "" {
		keyPrefix = "dash:summary:"
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SummaryCache{rdb: rdb, keyNS: keyPrefix, ttl: ttl}
}

func (c *SummaryCache) key(companyID uuid.UUID) string { return c.keyNS + companyID.String() }

func (c *SummaryCache) Put(ctx context.Context, companyID uuid.UUID, s projects.Summary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(companyID), b, c.ttl).Err()
}

func (c *SummaryCache) Get(ctx context.Context, companyID uuid.UUID) (projects.Summary, bool, error) {
	val, err := c.rdb.Get(ctx, c.key(companyID)).Bytes()
	if err == redis.Nil {
		return projects.Summary{}, false, nil
	}
	if err != nil {
		return projects.Summary{}, false, err
	}
	var s projects.Summary
	if err := json.Unmarshal(val, &s); err != nil {
		return projects.Summary{}, false, err
	}
	return s, true, nil
}

func (c *SummaryCache) Del(ctx context.Context, companyID uuid.UUID) error {
	return c.rdb.Del(ctx, c.key(companyID)).Err()
}
