// Package cache provides byte-level caching for scoreboard payloads. The
// memory store backs a single process; the redis store lets several boards
// share one upstream poll budget.
package cache

import (
	"context"
	"time"
)

// Store is a byte cache with per-entry TTLs. Get reports a miss, not an
// error, for absent or expired entries; maxAge tightens the read side below
// the write TTL when zero is not passed.
type Store interface {
	Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
