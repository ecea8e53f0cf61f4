package usecase

import (
	"fmt"
	"strconv"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"

	"github.com/google/uuid"
)

// Cache keys live in one place so prefixes never drift between writers and
// readers.

func ListingCacheKey(portal listing.Portal, page int) string {
	return "listings:" + portal.String() + ":" + strconv.Itoa(page)
}

func FetchLockKey(portal listing.Portal, page int) string {
	return "listings:lock:" + portal.String() + ":" + strconv.Itoa(page)
}

func RecommendationCacheKey(resumeID uuid.UUID) string {
	return "recs:" + resumeID.String()
}

func RateLimitKey(portal listing.Portal, minuteEpoch int64) string {
	return fmt.Sprintf("ratelimit:%s:%d", portal, minuteEpoch)
}
