package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pay-chain.backend/internal/domain/entities"
	domainRepos "pay-chain.backend/internal/domain/repositories"
)

const profileKeyPrefix = "profile:"

// RedisProfileCache is the Redis-backed read-through profile cache. Entries
// expire after a fixed TTL; all operations are best-effort and callers are
// expected to swallow errors.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProfileCache creates a new profile cache on the given client
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) *RedisProfileCache {
	return &RedisProfileCache{client: client, ttl: ttl}
}

// NewClient builds a Redis client from a URL; the caller owns the handle
func NewClient(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// Get returns the cached profile or ErrCacheMiss
func (c *RedisProfileCache) Get(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	raw, err := c.client.Get(ctx, profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainRepos.ErrCacheMiss
		}
		return nil, err
	}

	var profile entities.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		// A corrupt entry is as good as a miss; the store is authoritative.
		return nil, domainRepos.ErrCacheMiss
	}
	return &profile, nil
}

// Set writes the profile through to the cache with the configured TTL
func (c *RedisProfileCache) Set(ctx context.Context, profile *entities.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(profile.UserID), raw, c.ttl).Err()
}

// Delete invalidates the cached profile (delete-on-write)
func (c *RedisProfileCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, profileKey(userID)).Err()
}

func profileKey(userID uuid.UUID) string {
	return profileKeyPrefix + userID.String()
}
