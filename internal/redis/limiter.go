package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter counts requests per subject in fixed windows.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a new RateLimiter.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow records one hit for subject in the current window and reports whether
// it is within limit.
func (s *RateLimiter) Allow(ctx context.Context, subject string, limit int, window time.Duration) (bool, error) {
	bucket := time.Now().UnixNano() / int64(window)
	key := fmt.Sprintf("%s%s:%d", rateLimitPrefix, subject, bucket)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(limit), nil
}
