package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mvidal0/nexo/internal/config"
	"github.com/mvidal0/nexo/internal/domain"
	"github.com/redis/go-redis/v9"
)

func Connect(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	return client, nil
}

const profileTTL = 5 * time.Minute

// ProfileCache keeps rendered profiles in Redis. It is best-effort: a miss
// and a Redis error look the same to callers.
type ProfileCache struct {
	rdb *redis.Client
}

func NewProfileCache(rdb *redis.Client) *ProfileCache {
	return &ProfileCache{rdb: rdb}
}

func profileKey(userID string) string {
	return "profile:" + userID
}

func (c *ProfileCache) Get(ctx context.Context, userID string) *domain.Profile {
	data, err := c.rdb.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		return nil
	}

	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil
	}
	return &profile
}

func (c *ProfileCache) Set(ctx context.Context, userID string, profile *domain.Profile) {
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, profileKey(userID), data, profileTTL)
}

func (c *ProfileCache) Invalidate(ctx context.Context, userID string) {
	c.rdb.Del(ctx, profileKey(userID))
}
