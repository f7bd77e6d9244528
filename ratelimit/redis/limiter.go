// Package redislimiter rate-limits the dashboard endpoints across replicas
// with a Redis ZSET sliding window.
package redislimiter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limit caps requests per window for one named bucket.
type Limit struct {
	Requests int
	Window   time.Duration
}

const keyNS = "dash:rl:"

// Limiter is safe to share across goroutines.
type Limiter struct {
	rdb    *redis.Client
	limits map[string]Limit
}

// New builds a limiter with the given per-bucket limits. Buckets without an
// entry fall back to "default", then to a built-in 120/min.
func New(rdb *redis.Client, limits map[string]Limit) *Limiter {
	if limits == nil {
		limits = map[string]Limit{}
	}
	return &Limiter{rdb: rdb, limits: limits}
}

func (l *Limiter) limitFor(bucket string) Limit {
	if v, ok := l.limits[bucket]; ok {
		return v
	}
	if v, ok := l.limits["default"]; ok {
		return v
	}
	return Limit{Requests: 120, Window: time.Minute}
}

// AllowNamed reports whether key may make another request against bucket.
// The request is written first and rolled back on deny, which keeps the
// pipeline a single round trip in the common allow case.
func (l *Limiter) AllowNamed(bucket, key string) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}
	if bucket == "" || key == "" {
		return false, fmt.Errorf("bucket and key required")
	}

	lim := l.limitFor(bucket)
	ctx := context.Background()
	now := time.Now().UnixMilli()
	cutoff := now - lim.Window.Milliseconds()
	k := keyNS + bucket + ":" + key

	pipe := l.rdb.TxPipeline()
	pipe.ZAdd(ctx, k, redis.Z{Score: float64(now), Member: now})
	pipe.ZRemRangeByScore(ctx, k, "0", strconv.FormatInt(cutoff, 10))
	countCmd := pipe.ZCard(ctx, k)
	pipe.Expire(ctx, k, lim.Window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	count, err := countCmd.Result()
	if err != nil {
		return false, err
	}
	if count > int64(lim.Requests) {
		l.rdb.ZRem(ctx, k, now)
		return false, nil
	}
	return true, nil
}
