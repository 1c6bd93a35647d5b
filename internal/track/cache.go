package track

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds how stale a cached tracking snapshot may get.
// Shipment status changes on the order of hours, so ten minutes of staleness
// is acceptable.
const DefaultCacheTTL = 10 * time.Minute

// Cache memoises tracking results in Redis for a fixed TTL. Expiry is lazy:
// Redis drops the key, the next lookup is simply a miss. There is no
// invalidation API and empty results are cached the same as populated ones.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs the result cache. A nil client yields a no-op cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// CacheKey derives the cache key for a carrier/code pair. Both parts are
// lowercased and trimmed so equivalent requests share an entry.
func CacheKey(carrierID, code string) string {
	return "track:" + strings.ToLower(strings.TrimSpace(carrierID)) + ":" + strings.ToLower(strings.TrimSpace(code))
}

// Get unmarshals a cached result into dst. It reports whether the key existed.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.client == nil || key == "" {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Put serialises v as JSON and stores it with the configured TTL.
func (c *Cache) Put(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil || key == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
