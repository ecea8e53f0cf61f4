package usecase

import (
	"context"
	"time"
)

// Cache is the narrow contract the engine needs from the shared store:
// JSON-valued string keys with storage-layer TTLs, a compare-and-set
// primitive for the fetch lock, and an atomic counter for rate limiting.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Increment(ctx context.Context, key string, expiry time.Duration) (int64, error)
}
