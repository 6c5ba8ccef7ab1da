package utils

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()

const revokedTokenPrefix = "revoked_token__"

// TokenDenylist records sessions invalidated by sign-out. A token stays on
// the list until its own expiry, after which the entry is useless anyway.
type TokenDenylist interface {
	Revoke(token string, ttl time.Duration) error
	IsRevoked(token string) (bool, error)
}

type RedisTokenDenylist struct {
	inner *redis.Client
}

func GetRedisTokenDenylist() (*RedisTokenDenylist, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &RedisTokenDenylist{inner: redisClient}, nil
}

func (d *RedisTokenDenylist) Revoke(token string, ttl time.Duration) error {
	return d.inner.Set(ctx, revokedTokenPrefix+token, "1", ttl).Err()
}

func (d *RedisTokenDenylist) IsRevoked(token string) (bool, error) {
	_, err := d.inner.Get(ctx, revokedTokenPrefix+token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryTokenDenylist is the in-process fallback used in development and in
// tests where no Redis is available. Entries are never expired, which is
// acceptable for its short-lived use. Revoke and IsRevoked run on concurrent
// request goroutines, so the map is guarded.
type MemoryTokenDenylist struct {
	mu      sync.RWMutex
	revoked map[string]bool
}

func NewMemoryTokenDenylist() *MemoryTokenDenylist {
	return &MemoryTokenDenylist{revoked: make(map[string]bool)}
}

func (d *MemoryTokenDenylist) Revoke(token string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[token] = true
	return nil
}

func (d *MemoryTokenDenylist) IsRevoked(token string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revoked[token], nil
}
