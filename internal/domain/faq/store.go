package faq

import (
	"context"
	"time"
)

// Store defines the persistence contract for the result cache.
type Store interface {
	// Get returns false with a nil error on a miss.
	Get(ctx context.Context, fingerprint string) (CachedAnswer, bool, error)
	// Put writes the answer and its expiry in one operation. ttl must be positive.
	Put(ctx context.Context, fingerprint string, answer CachedAnswer, ttl time.Duration) error
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}
