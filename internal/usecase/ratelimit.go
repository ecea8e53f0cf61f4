package usecase

import (
	"context"
	"log"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
)

// rateLimitWindow is how long a (portal, minute) counter lives after its
// first increment.
const rateLimitWindow = 60 * time.Second

// RateLimiter bounds outbound scrape calls per portal with sliding-minute
// counters in the shared store. It is not a hard gate on its own: callers
// compare the returned count against the ceiling and refuse to fetch when it
// is exceeded.
type RateLimiter struct {
	cache   Cache
	ceiling int64
	logger  *log.Logger
	now     func() time.Time
}

func NewRateLimiter(cache Cache, ceilingPerMinute int64, logger *log.Logger) *RateLimiter {
	if ceilingPerMinute < 0 {
		ceilingPerMinute = 0
	}
	return &RateLimiter{cache: cache, ceiling: ceilingPerMinute, logger: logger, now: time.Now}
}

// Increment bumps the counter for (portal, minuteEpoch) and returns the new
// count. The key self-expires 60 seconds after creation.
func (l *RateLimiter) Increment(ctx context.Context, portal listing.Portal, minuteEpoch int64) (int64, error) {
	return l.cache.Increment(ctx, RateLimitKey(portal, minuteEpoch), rateLimitWindow)
}

// CurrentCount reads the counter for (portal, minuteEpoch) without mutating
// it. A missing key counts as zero.
func (l *RateLimiter) CurrentCount(ctx context.Context, portal listing.Portal, minuteEpoch int64) (int64, error) {
	var n int64
	hit, err := l.cache.GetJSON(ctx, RateLimitKey(portal, minuteEpoch), &n)
	if err != nil {
		return 0, err
	}
	if !hit {
		return 0, nil
	}
	return n, nil
}

// Allow consumes one unit of the portal's budget for the current minute and
// reports whether the fetch may proceed.
func (l *RateLimiter) Allow(ctx context.Context, portal listing.Portal) (bool, error) {
	n, err := l.Increment(ctx, portal, l.minuteEpoch())
	if err != nil {
		return false, err
	}
	allowed := n <= l.ceiling
	if !allowed && l.logger != nil {
		l.logger.Printf("[RateLimit] portal=%s count=%d ceiling=%d refused", portal, n, l.ceiling)
	}
	return allowed, nil
}

// Check reports whether the portal still has budget left this minute without
// consuming any.
func (l *RateLimiter) Check(ctx context.Context, portal listing.Portal) (bool, error) {
	n, err := l.CurrentCount(ctx, portal, l.minuteEpoch())
	if err != nil {
		return false, err
	}
	return n < l.ceiling, nil
}

func (l *RateLimiter) minuteEpoch() int64 {
	return l.now().Unix() / 60
}
