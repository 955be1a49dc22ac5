package match

import "context"

// RateLimiter guards the recommendation endpoint. Each recommendation
// request costs one completion call, so requests are limited per candidate.
type RateLimiter interface {
	// Allow reports whether the keyed caller may proceed
	Allow(ctx context.Context, key string) (bool, error)
}
