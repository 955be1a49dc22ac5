package match

import (
	"net/http"

	"github.com/hirestack/beacon/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("MATCH")

var (
	CodeRecommendationFailed = ErrRegistry.Register("RECOMMENDATION_FAILED", errx.TypeUnavailable, http.StatusBadGateway, "Failed to compute job recommendations")
	CodeRateLimited          = ErrRegistry.Register("RATE_LIMITED", errx.TypeRateLimit, http.StatusTooManyRequests, "Too many recommendation requests")
)

// ErrRecommendationFailed - the completion call for matching failed.
// Callers may show "no recommendations available" and allow a retry.
func ErrRecommendationFailed() *errx.Error {
	return ErrRegistry.New(CodeRecommendationFailed)
}

func ErrRateLimited() *errx.Error {
	return ErrRegistry.New(CodeRateLimited)
}
