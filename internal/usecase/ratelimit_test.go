package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
)

func TestRateLimiter_CountsPerMinuteBucket(t *testing.T) {
	cur := time.Unix(1_700_000_000, 0)
	now := func() time.Time { return cur }

	fc := newFakeCache()
	fc.now = now
	limiter := NewRateLimiter(fc, 10, nil)
	limiter.now = now

	ctx := context.Background()
	minute := cur.Unix() / 60

	for want := int64(1); want <= 5; want++ {
		got, err := limiter.Increment(ctx, listing.PortalIndeed, minute)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if got != want {
			t.Fatalf("expected count %d, got %d", want, got)
		}
	}

	got, err := limiter.Increment(ctx, listing.PortalIndeed, minute+1)
	if err != nil {
		t.Fatalf("increment next bucket: %v", err)
	}
	if got != 1 {
		t.Fatalf("next minute bucket must start at 1, got %d", got)
	}
}

func TestRateLimiter_CounterSelfExpires(t *testing.T) {
	cur := time.Unix(1_700_000_000, 0)
	now := func() time.Time { return cur }

	fc := newFakeCache()
	fc.now = now
	limiter := NewRateLimiter(fc, 10, nil)
	limiter.now = now

	ctx := context.Background()
	minute := cur.Unix() / 60

	if _, err := limiter.Increment(ctx, listing.PortalIndeed, minute); err != nil {
		t.Fatalf("increment: %v", err)
	}

	cur = cur.Add(61 * time.Second)
	n, err := limiter.CurrentCount(ctx, listing.PortalIndeed, minute)
	if err != nil {
		t.Fatalf("current count: %v", err)
	}
	if n != 0 {
		t.Fatalf("counter should be gone after 60s, got %d", n)
	}
}

func TestRateLimiter_AllowEnforcesCeiling(t *testing.T) {
	fc := newFakeCache()
	limiter := NewRateLimiter(fc, 2, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, listing.PortalLinkedIn)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !allowed {
			t.Fatalf("call %d should be within budget", i+1)
		}
	}

	allowed, err := limiter.Allow(ctx, listing.PortalLinkedIn)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatalf("third call must exceed ceiling of 2")
	}
}
