package usecase

import (
	"context"
	"log"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
)

const (
	// DefaultListingTTL balances external-source freshness against re-fetch
	// cost.
	DefaultListingTTL = 4 * time.Hour

	// staleGrace is how long an expired entry stays physically retrievable
	// for stale-serve before the storage layer drops it. It matches the
	// recommendation TTL, so a recommendation never references a listing
	// older than its own staleness bound.
	staleGrace = 24 * time.Hour
)

// listingEnvelope is the stored shape of one (portal, page) entry. Logical
// expiry lives in the payload; the storage TTL runs longer by staleGrace.
type listingEnvelope struct {
	Listings  []listing.JobListing `json:"listings"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// ListingCache holds the current raw postings per (portal, page). Entries are
// replaced wholesale on refresh, never merged.
type ListingCache struct {
	cache      Cache
	logger     *log.Logger
	defaultTTL time.Duration
	now        func() time.Time
}

func NewListingCache(cache Cache, logger *log.Logger, defaultTTL time.Duration) *ListingCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultListingTTL
	}
	return &ListingCache{cache: cache, logger: logger, defaultTTL: defaultTTL, now: time.Now}
}

func (c *ListingCache) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Put overwrites the whole entry for (portal, page) in a single write.
func (c *ListingCache) Put(ctx context.Context, portal listing.Portal, page int, listings []listing.JobListing, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if listings == nil {
		listings = []listing.JobListing{}
	}
	env := listingEnvelope{Listings: listings, ExpiresAt: c.now().Add(ttl)}
	return c.cache.SetJSON(ctx, ListingCacheKey(portal, page), env, ttl+staleGrace)
}

// Get returns the entry for (portal, page). ok is false on miss or decode
// failure; fresh is false once the logical TTL has lapsed, in which case the
// returned listings are the stale-serve candidate. Decode failures are
// treated exactly like misses.
func (c *ListingCache) Get(ctx context.Context, portal listing.Portal, page int) (items []listing.JobListing, fresh bool, ok bool) {
	key := ListingCacheKey(portal, page)
	var env listingEnvelope
	hit, err := c.cache.GetJSON(ctx, key, &env)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[Cache] listing entry unreadable, treating as miss key=%s err=%v", key, err)
		}
		return nil, false, false
	}
	if !hit || env.Listings == nil {
		return nil, false, false
	}
	return env.Listings, c.now().Before(env.ExpiresAt), true
}
