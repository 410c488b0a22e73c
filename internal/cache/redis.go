package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores fetched pages so an aborted run can be resumed without
// re-hitting the source for documents it already pulled.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client.
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify the connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// SetPage stores a fetched page body under its URL.
func (rc *RedisCache) SetPage(ctx context.Context, url, body string, ttl time.Duration) error {
	return rc.client.Set(ctx, pageKey(url), body, ttl).Err()
}

// GetPage retrieves a cached page body. Returns redis.Nil when absent.
func (rc *RedisCache) GetPage(ctx context.Context, url string) (string, error) {
	return rc.client.Get(ctx, pageKey(url)).Result()
}

// IsMiss reports whether an error from GetPage means "not cached".
func IsMiss(err error) bool {
	return err == redis.Nil
}

func pageKey(url string) string {
	return "page:" + url
}
