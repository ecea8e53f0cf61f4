package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/dedup"
	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
)

// ScraperClient is the upstream fetch dependency. It returns raw listing
// records for one (portal, page); records arrive without IDs, ingestion
// assigns content hashes.
type ScraperClient interface {
	FetchListings(ctx context.Context, portal listing.Portal, page int) ([]listing.JobListing, error)
}

type ListingUsecase interface {
	GetCachedListings(ctx context.Context, portal listing.Portal, page int) ([]listing.JobListing, bool, error)
	RefreshListings(ctx context.Context, portal listing.Portal, page int, ttl time.Duration) ([]listing.JobListing, error)
	CheckRateLimit(ctx context.Context, portal listing.Portal) (bool, error)
}

// Listings orchestrates the fetch cycle: cache check, fetch lock, rate
// limiting, dedup, whole-entry cache replacement. Every failure short of
// "nothing cached at all" degrades to serving the last known value.
type Listings struct {
	cache        Cache
	store        *ListingCache
	limiter      *RateLimiter
	scraper      ScraperClient
	logger       *log.Logger
	fetchTimeout time.Duration
	now          func() time.Time
}

func NewListingUsecase(cache Cache, store *ListingCache, limiter *RateLimiter, scraper ScraperClient, logger *log.Logger, fetchTimeout time.Duration) *Listings {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &Listings{
		cache:        cache,
		store:        store,
		limiter:      limiter,
		scraper:      scraper,
		logger:       logger,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

// GetCachedListings returns the fresh cached entry for (portal, page), or
// found=false when the entry is missing or past its logical TTL. found=false
// means "needs refresh", never "empty result".
func (u *Listings) GetCachedListings(ctx context.Context, portal listing.Portal, page int) ([]listing.JobListing, bool, error) {
	if !portal.Valid() || page <= 0 {
		return nil, false, ErrInvalidInput
	}
	items, fresh, ok := u.store.Get(ctx, portal, page)
	if !ok || !fresh {
		return nil, false, nil
	}
	return items, true, nil
}

// CheckRateLimit reports whether the portal still has fetch budget this
// minute, without consuming any.
func (u *Listings) CheckRateLimit(ctx context.Context, portal listing.Portal) (bool, error) {
	if !portal.Valid() {
		return false, ErrInvalidInput
	}
	return u.limiter.Check(ctx, portal)
}

// RefreshListings returns fresh listings for (portal, page), fetching
// upstream when the cache is stale or missing. At most one fetch per key runs
// at a time; concurrent callers and any fetch failure fall back to the last
// known value when one exists.
func (u *Listings) RefreshListings(ctx context.Context, portal listing.Portal, page int, ttl time.Duration) ([]listing.JobListing, error) {
	if !portal.Valid() || page <= 0 {
		return nil, ErrInvalidInput
	}
	if ttl <= 0 {
		ttl = u.store.DefaultTTL()
	}

	stale, fresh, ok := u.store.Get(ctx, portal, page)
	if ok && fresh {
		if u.logger != nil {
			u.logger.Printf("[Fetch] Cache HIT portal=%s page=%d", portal, page)
		}
		return stale, nil
	}
	if u.logger != nil {
		u.logger.Printf("[Fetch] Cache MISS portal=%s page=%d stale_available=%t", portal, page, ok)
	}

	lockKey := FetchLockKey(portal, page)
	acquired, lockErr := u.cache.SetIfNotExists(ctx, lockKey, "1", u.fetchTimeout)
	if lockErr == nil && !acquired {
		// Another fetch is in flight. Serve stale if we have it; otherwise
		// wait briefly for the winner to populate the cache, never launching
		// a second fetch.
		if ok {
			if u.logger != nil {
				u.logger.Printf("[Fetch] Lock held, serving stale portal=%s page=%d", portal, page)
			}
			return stale, nil
		}
		jitter := time.Duration(u.now().UnixNano()%201) * time.Millisecond
		time.Sleep(300*time.Millisecond + jitter)
		if items, _, ok2 := u.store.Get(ctx, portal, page); ok2 {
			return items, nil
		}
		return nil, ErrNoListings
	}

	if acquired {
		// Re-check under the lock: a fetch that completed between our first
		// read and the lock grant already did the work.
		if items, fresh2, ok2 := u.store.Get(ctx, portal, page); ok2 && fresh2 {
			_ = u.cache.Delete(ctx, lockKey)
			return items, nil
		}
	}

	allowed, rlErr := u.limiter.Allow(ctx, portal)
	if rlErr == nil && !allowed {
		if acquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
		if ok {
			if u.logger != nil {
				u.logger.Printf("[Fetch] Rate limited, serving stale portal=%s page=%d", portal, page)
			}
			return stale, nil
		}
		return nil, ErrRateLimitExceeded
	}

	fctx, cancel := context.WithTimeout(ctx, u.fetchTimeout)
	defer cancel()
	raw, err := u.scraper.FetchListings(fctx, portal, page)
	if err != nil {
		if acquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
		ferr := ErrUpstreamFetch
		if errors.Is(err, context.DeadlineExceeded) {
			ferr = ErrFetchTimeout
		}
		if u.logger != nil {
			u.logger.Printf("[Fetch] Upstream error portal=%s page=%d err=%v", portal, page, err)
		}
		if ok {
			return stale, nil
		}
		return nil, ferr
	}

	items := u.ingest(portal, raw)
	if err := u.store.Put(ctx, portal, page, items, ttl); err != nil && u.logger != nil {
		// The fetched result is still good; the next reader re-fetches.
		u.logger.Printf("[Fetch] Cache write failed portal=%s page=%d err=%v", portal, page, err)
	}
	if acquired {
		_ = u.cache.Delete(ctx, lockKey)
	}
	if u.logger != nil {
		u.logger.Printf("[Fetch] Refreshed portal=%s page=%d listings=%d", portal, page, len(items))
	}
	return items, nil
}

// ingest runs the dedup filter over one fetch batch and stamps identity and
// scrape time. The filter is scoped to this batch only; cross-batch dedup is
// unnecessary because entries are replaced wholesale.
func (u *Listings) ingest(portal listing.Portal, raw []listing.JobListing) []listing.JobListing {
	filter := dedup.NewFilter()
	scrapedAt := u.now()

	items := make([]listing.JobListing, 0, len(raw))
	for _, it := range raw {
		if !filter.ShouldIngest(it.Title, it.Company) {
			continue
		}
		if it.ID == "" {
			it.ID = dedup.Hash(it.Title, it.Company)
		}
		if it.Portal == "" {
			it.Portal = portal
		}
		if it.ScrapedAt.IsZero() {
			it.ScrapedAt = scrapedAt
		}
		items = append(items, it)
	}
	if d := filter.Duplicates(); d > 0 && u.logger != nil {
		u.logger.Printf("[Fetch] Dedup portal=%s accepted=%d duplicates=%d", portal, len(items), d)
	}
	return items
}
