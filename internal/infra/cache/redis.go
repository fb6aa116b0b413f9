package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
)

// NewRedisClient builds a client from the service configuration.
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisUserCache(client *redis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{client: client, ttl: ttl}
}

func verifiedKey(id uint) string {
	return fmt.Sprintf("verified_user:%d", id)
}

func (c *RedisUserCache) Get(ctx context.Context, id uint) (*user.Verified, error) {
	val, err := c.client.Get(ctx, verifiedKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get verified user: %w", err)
	}

	var v user.Verified
	if err := json.Unmarshal([]byte(val), &v); err != nil {
		return nil, fmt.Errorf("decode verified user: %w", err)
	}
	return &v, nil
}

func (c *RedisUserCache) Put(ctx context.Context, v user.Verified) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode verified user: %w", err)
	}
	if err := c.client.Set(ctx, verifiedKey(v.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set verified user: %w", err)
	}
	return nil
}

func (c *RedisUserCache) Invalidate(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, verifiedKey(id)).Err(); err != nil {
		return fmt.Errorf("invalidate verified user: %w", err)
	}
	return nil
}

var _ user.VerifiedCache = (*RedisUserCache)(nil)
