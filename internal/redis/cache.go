package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseTTL is how long a replayable response is kept.
const ResponseTTL = 24 * time.Hour

const responseCachePrefix = "idempotency:"

// CachedResponse is a stored HTTP response for a repeated mutating request.
type CachedResponse struct {
	Fingerprint string          `json:"fingerprint"` // method, path and body of the original request
	StatusCode  int             `json:"status_code"`
	ContentType string          `json:"content_type"`
	Body        json.RawMessage `json:"body"`
}

// ResponseCache stores responses keyed by caller and Idempotency-Key.
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache creates a new ResponseCache.
func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

// Get returns the stored response for key.
// Returns nil on a cache miss.
func (s *ResponseCache) Get(ctx context.Context, key string) (*CachedResponse, error) {
	data, err := s.client.Get(ctx, responseCachePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var cached CachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

// Set stores a response for key.
func (s *ResponseCache) Set(ctx context.Context, key string, response *CachedResponse, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, responseCachePrefix+key, data, ttl).Err()
}
