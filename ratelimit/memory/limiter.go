// Package memorylimiter is a single-node sliding-window limiter for the
// dashboard read endpoints. Use the redis limiter when running more than
// one replica.
package memorylimiter

import (
	"fmt"
	"sync"
	"time"
)

// Limit caps requests per window for one named bucket.
type Limit struct {
	Requests int
	Window   time.Duration
}

// DefaultLimits suits the dashboard's read-only surface: menus and account
// screens refresh often, the project dashboard is heavier.
func DefaultLimits() map[string]Limit {
	return map[string]Limit{
		"default":                {Requests: 120, Window: time.Minute},
		"projects_dashboard_get": {Requests: 30, Window: time.Minute},
	}
}

// Limiter tracks request times per client-and-bucket pair in memory.
type Limiter struct {
	mu     sync.Mutex
	limits map[string]Limit
	seen   map[string][]time.Time
}

// New builds a limiter with the given per-bucket limits. Buckets without an
// entry fall back to "default", then to a built-in 120/min.
func New(limits map[string]Limit) *Limiter {
	if limits == nil {
		limits = DefaultLimits()
	}
	return &Limiter{
		limits: limits,
		seen:   make(map[string][]time.Time),
	}
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
// A denied request is not recorded, so a throttled client recovers as soon
// as older requests age out of the window.
func (l *Limiter) AllowNamed(bucket, key string) (bool, error) {
	if l == nil {
		return true, nil
	}
	if bucket == "" || key == "" {
		return false, fmt.Errorf("bucket and key required")
	}

	lim := l.limitFor(bucket)
	now := time.Now()
	cutoff := now.Add(-lim.Window)
	k := bucket + ":" + key

	l.mu.Lock()
	defer l.mu.Unlock()

	hits := l.seen[k]
	live := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			live = append(live, t)
		}
	}

	if len(live) >= lim.Requests {
		l.seen[k] = live
		return false, nil
	}

	live = append(live, now)
	l.seen[k] = live
	return true, nil
}
