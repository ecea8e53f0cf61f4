package usecase

import (
	"context"
	"log"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"

	"github.com/google/uuid"
)

// DefaultRecommendationTTL bounds how stale a served recommendation may be
// relative to the listings it was computed from.
const DefaultRecommendationTTL = 24 * time.Hour

// RankedListing is one recommendation entry: a cached listing plus the match
// score it was ranked by.
type RankedListing struct {
	Listing listing.JobListing `json:"listing"`
	Score   float64            `json:"score"`
}

// RecommendationCache stores ranked match results per resume. It is strictly
// derived state: safe to drop and recompute at any time, never invalidated
// eagerly when the listing cache refreshes.
type RecommendationCache struct {
	cache  Cache
	logger *log.Logger
	ttl    time.Duration
}

func NewRecommendationCache(cache Cache, logger *log.Logger, ttl time.Duration) *RecommendationCache {
	if ttl <= 0 {
		ttl = DefaultRecommendationTTL
	}
	return &RecommendationCache{cache: cache, logger: logger, ttl: ttl}
}

func (c *RecommendationCache) Put(ctx context.Context, resumeID uuid.UUID, ranked []RankedListing) error {
	if ranked == nil {
		ranked = []RankedListing{}
	}
	return c.cache.SetJSON(ctx, RecommendationCacheKey(resumeID), ranked, c.ttl)
}

func (c *RecommendationCache) Get(ctx context.Context, resumeID uuid.UUID) ([]RankedListing, bool) {
	key := RecommendationCacheKey(resumeID)
	var ranked []RankedListing
	hit, err := c.cache.GetJSON(ctx, key, &ranked)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[Cache] recommendation entry unreadable, treating as miss key=%s err=%v", key, err)
		}
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return ranked, true
}
