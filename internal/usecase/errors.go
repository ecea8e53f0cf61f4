package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	// ErrRateLimitExceeded means the per-portal fetch budget for the current
	// minute is spent. Retryable; stale cache keeps being served meanwhile.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	ErrFetchTimeout  = errors.New("upstream fetch timeout")
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrNoListings is returned only when both fresh and stale data are
	// absent for a key. It is the single non-absorbed outcome of the read
	// path.
	ErrNoListings = errors.New("no listings available")

	ErrResumeNotFound = errors.New("resume not found")
)
