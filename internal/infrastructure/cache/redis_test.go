package cache

import (
	"context"
	"testing"
	"time"
)

// A client pointed at a closed port drops into bypass mode: reads miss,
// writes no-op, and the lock primitive reports acquired so callers keep
// working pass-through for the duration of the outage.
func TestRedisBypassMode(t *testing.T) {
	t.Setenv("REDIS_HOST", "127.0.0.1")
	t.Setenv("REDIS_PORT", "1")
	t.Setenv("REDIS_PASSWORD", "")

	r := NewRedis(nil)
	ctx := context.Background()

	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping to fail in bypass mode")
	}

	acquired, err := r.SetIfNotExists(ctx, "listings:lock:indeed:1", "1", time.Second)
	if err != nil {
		t.Fatalf("SetIfNotExists: %v", err)
	}
	if !acquired {
		t.Fatalf("bypass mode must report the lock as acquired")
	}

	var out []string
	found, err := r.GetJSON(ctx, "listings:indeed:1", &out)
	if err != nil || found {
		t.Fatalf("bypass GetJSON: found=%t err=%v", found, err)
	}
	if err := r.SetJSON(ctx, "listings:indeed:1", []string{"v"}, time.Second); err != nil {
		t.Fatalf("bypass SetJSON: %v", err)
	}
	n, err := r.Increment(ctx, "ratelimit:indeed:1", time.Second)
	if err != nil || n != 0 {
		t.Fatalf("bypass Increment: n=%d err=%v", n, err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
