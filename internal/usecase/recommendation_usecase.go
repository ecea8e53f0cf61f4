package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
	"github.com/Fatal777/ApplyX-sub001/internal/domain/matching"
	"github.com/Fatal777/ApplyX-sub001/internal/repository"

	"github.com/google/uuid"
)

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, resumeID uuid.UUID) ([]RankedListing, bool, error)
	ComputeAndCacheRecommendations(ctx context.Context, resumeID uuid.UUID, topN int) ([]RankedListing, error)
}

// listingSource is what Recommendations needs from the fetch orchestrator.
type listingSource interface {
	RefreshListings(ctx context.Context, portal listing.Portal, page int, ttl time.Duration) ([]listing.JobListing, error)
}

// Recommendations derives ranked matches per resume from the listing cache
// and stores them with their own, longer TTL.
type Recommendations struct {
	resumes  repository.ResumeRepository
	listings listingSource
	store    *RecommendationCache
	portals  []listing.Portal
	pages    int
	logger   *log.Logger
}

func NewRecommendationUsecase(resumes repository.ResumeRepository, listings listingSource, store *RecommendationCache, portals []listing.Portal, pagesPerPortal int, logger *log.Logger) *Recommendations {
	if pagesPerPortal <= 0 {
		pagesPerPortal = 1
	}
	return &Recommendations{
		resumes:  resumes,
		listings: listings,
		store:    store,
		portals:  portals,
		pages:    pagesPerPortal,
		logger:   logger,
	}
}

// GetRecommendations serves the cached ranked set for a resume. found=false
// on miss or expiry; callers recompute in that case.
func (u *Recommendations) GetRecommendations(ctx context.Context, resumeID uuid.UUID) ([]RankedListing, bool, error) {
	if resumeID == uuid.Nil {
		return nil, false, ErrInvalidInput
	}
	ranked, ok := u.store.Get(ctx, resumeID)
	if !ok {
		if u.logger != nil {
			u.logger.Printf("[Recs] Cache MISS resume=%s", resumeID)
		}
		return nil, false, nil
	}
	if u.logger != nil {
		u.logger.Printf("[Recs] Cache HIT resume=%s", resumeID)
	}
	return ranked, true, nil
}

// ComputeAndCacheRecommendations gathers current listings across all
// configured portals, ranks them against the resume profile, and caches the
// result. Per-portal fetch failures are absorbed; ranking proceeds with
// whatever listings are available.
func (u *Recommendations) ComputeAndCacheRecommendations(ctx context.Context, resumeID uuid.UUID, topN int) ([]RankedListing, error) {
	if resumeID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if topN <= 0 {
		topN = 20
	}
	if topN > 50 {
		topN = 50
	}
	if u.resumes == nil {
		return nil, ErrInternal
	}

	profile, err := u.resumes.FindProfileByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, ErrInternal
	}

	var all []listing.JobListing
	for _, portal := range u.portals {
		for page := 1; page <= u.pages; page++ {
			items, err := u.listings.RefreshListings(ctx, portal, page, 0)
			if err != nil {
				if u.logger != nil {
					u.logger.Printf("[Recs] Listing fetch skipped portal=%s page=%d err=%v", portal, page, err)
				}
				continue
			}
			all = append(all, items...)
		}
	}
	if len(all) == 0 {
		return nil, ErrNoListings
	}

	scored := matching.Rank(matching.Profile{
		Keywords:        profile.Keywords,
		Skills:          profile.Skills,
		ExperienceYears: profile.ExperienceYears,
		ExperienceLevel: profile.ExperienceLevel,
	}, all, topN)

	ranked := make([]RankedListing, 0, len(scored))
	for _, s := range scored {
		ranked = append(ranked, RankedListing{Listing: s.Listing, Score: s.Score})
	}

	if err := u.store.Put(ctx, resumeID, ranked); err != nil && u.logger != nil {
		u.logger.Printf("[Recs] Cache write failed resume=%s err=%v", resumeID, err)
	}
	if u.logger != nil {
		u.logger.Printf("[Recs] Computed resume=%s listings=%d ranked=%d", resumeID, len(all), len(ranked))
	}
	return ranked, nil
}
