// Package kvstore provides the shared expiring key-value store behind the
// AI search cache and the per-user rate limit counters. Keys are namespaced
// by prefix so both concerns can live in one store.
package kvstore

import (
	"context"
	"time"
)

// Store is an expiring key-value store. Read returns (nil, nil) when the
// key is absent or expired; Write replaces any existing entry and re-arms
// its TTL.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
