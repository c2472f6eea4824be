package redis

import (
	"context"
	"time"
)

// ResponseCacheInterface defines the interface for idempotent response storage.
type ResponseCacheInterface interface {
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Set(ctx context.Context, key string, response *CachedResponse, ttl time.Duration) error
}

// RateLimiterInterface defines the interface for request rate limiting.
type RateLimiterInterface interface {
	Allow(ctx context.Context, subject string, limit int, window time.Duration) (bool, error)
}

// Ensure concrete types implement interfaces.
var (
	_ ResponseCacheInterface = (*ResponseCache)(nil)
	_ RateLimiterInterface   = (*RateLimiter)(nil)
)
