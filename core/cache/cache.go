package cache

import (
	"context"
	"fmt"
	"time"

	"plansync/core/constants"
	"plansync/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the redis-backed cache used for token blacklisting, login attempt
// blocking and short-lived free-busy snapshots.
type Cache interface {
	AddToTokenBlacklist(ctx context.Context, token string) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	IncrementLoginAttempt(ctx context.Context, key string) error
	IsLoginBlocked(ctx context.Context, key string) (bool, error)

	SetFreeBusy(ctx context.Context, key string, payload string) error
	GetFreeBusy(ctx context.Context, key string) (string, error)

	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Client() *redis.Client
}

type redisCache struct {
	client *redis.Client
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewCache(cfg RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:NewCache:Ping:Error:", err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis initialized successfully", "host", cfg.Host, "port", cfg.Port, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) AddToTokenBlacklist(ctx context.Context, token string) error {
	key := constants.RedisKeyTokenBlacklist + token
	// Blacklist entries only need to outlive the longest-lived token.
	return c.client.Set(ctx, key, "1", 7*24*time.Hour).Err()
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := constants.RedisKeyTokenBlacklist + token
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisCache) IncrementLoginAttempt(ctx context.Context, key string) error {
	fullKey := constants.RedisKeyLoginAttempt + key
	count, err := c.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return c.client.Expire(ctx, fullKey, constants.BlockDuration).Err()
	}
	return nil
}

func (c *redisCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	fullKey := constants.RedisKeyLoginAttempt + key
	count, err := c.client.Get(ctx, fullKey).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= constants.MaxLoginAttempts, nil
}

func (c *redisCache) SetFreeBusy(ctx context.Context, key string, payload string) error {
	return c.client.Set(ctx, constants.RedisKeyFreeBusy+key, payload, constants.FreeBusyCacheTTL).Err()
}

func (c *redisCache) GetFreeBusy(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, constants.RedisKeyFreeBusy+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, constants.RedisKeyLoginAttempt+key, ttl).Err()
}

func (c *redisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, constants.RedisKeyLoginAttempt+key).Err()
}

func (c *redisCache) Client() *redis.Client {
	return c.client
}
