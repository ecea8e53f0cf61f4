package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
	"github.com/Fatal777/ApplyX-sub001/internal/repository"

	"github.com/google/uuid"
)

type stubResumeRepo struct {
	profile repository.ResumeProfile
	err     error
}

func (s stubResumeRepo) FindProfileByID(context.Context, uuid.UUID) (repository.ResumeProfile, error) {
	if s.err != nil {
		return repository.ResumeProfile{}, s.err
	}
	return s.profile, nil
}

type stubListingSource struct {
	items []listing.JobListing
	err   error
}

func (s stubListingSource) RefreshListings(context.Context, listing.Portal, int, time.Duration) ([]listing.JobListing, error) {
	return s.items, s.err
}

func newTestRecommendations(fc *fakeCache, resumes repository.ResumeRepository, source listingSource) *Recommendations {
	store := NewRecommendationCache(fc, nil, time.Hour)
	return NewRecommendationUsecase(resumes, source, store, []listing.Portal{listing.PortalIndeed}, 1, nil)
}

func TestComputeAndCacheRecommendations(t *testing.T) {
	resumeID := uuid.New()
	fc := newFakeCache()
	repo := stubResumeRepo{profile: repository.ResumeProfile{
		ResumeID: resumeID,
		Keywords: []string{"python", "fastapi", "sql"},
		Skills:   []string{"docker", "redis"},
	}}
	source := stubListingSource{items: []listing.JobListing{
		{ID: "1", Title: "Python Developer", Skills: []string{"python", "fastapi", "redis"}},
		{ID: "2", Title: "Frontend Engineer", Skills: []string{"react", "css"}},
	}}
	u := newTestRecommendations(fc, repo, source)

	ranked, err := u.ComputeAndCacheRecommendations(context.Background(), resumeID, 2)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("zero-overlap listings are excluded, expected 1 result, got %d", len(ranked))
	}
	if ranked[0].Listing.Title != "Python Developer" || ranked[0].Score <= 0 {
		t.Fatalf("unexpected top match: %+v", ranked[0])
	}

	// The computed set is now served from cache.
	cached, found, err := u.GetRecommendations(context.Background(), resumeID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found || len(cached) != 1 || cached[0].Listing.ID != ranked[0].Listing.ID {
		t.Fatalf("expected cached recommendations, found=%t cached=%v", found, cached)
	}
}

func TestGetRecommendations_Miss(t *testing.T) {
	fc := newFakeCache()
	u := newTestRecommendations(fc, stubResumeRepo{}, stubListingSource{})

	_, found, err := u.GetRecommendations(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("empty cache must be a miss")
	}
}

func TestComputeRecommendations_ResumeNotFound(t *testing.T) {
	fc := newFakeCache()
	u := newTestRecommendations(fc, stubResumeRepo{err: repository.ErrResumeNotFound}, stubListingSource{})

	_, err := u.ComputeAndCacheRecommendations(context.Background(), uuid.New(), 5)
	if !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
}

func TestComputeRecommendations_NoListings(t *testing.T) {
	fc := newFakeCache()
	repo := stubResumeRepo{profile: repository.ResumeProfile{Keywords: []string{"go"}}}
	u := newTestRecommendations(fc, repo, stubListingSource{err: ErrRateLimitExceeded})

	_, err := u.ComputeAndCacheRecommendations(context.Background(), uuid.New(), 5)
	if !errors.Is(err, ErrNoListings) {
		t.Fatalf("expected ErrNoListings when every portal fetch fails, got %v", err)
	}
}

func TestComputeRecommendations_InvalidResume(t *testing.T) {
	fc := newFakeCache()
	u := newTestRecommendations(fc, stubResumeRepo{}, stubListingSource{})

	_, err := u.ComputeAndCacheRecommendations(context.Background(), uuid.Nil, 5)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
