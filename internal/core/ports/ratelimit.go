package ports

import (
	"context"
	"time"
)

// RateLimitRepository stores fixed-window request counters.
type RateLimitRepository interface {
	IncrementWindow(ctx context.Context, userID int64, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

// RateLimiterService decides whether a request may proceed.
// Returns (allowed, remaining, limit, reset, err); implementations fail open.
type RateLimiterService interface {
	Allow(ctx context.Context, userID int64) (bool, int, int, time.Time, error)
}
