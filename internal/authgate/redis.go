package authgate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"dsignme/internal/logging"
)

const redisPrefix = "authgate:verify:"

// RedisCache shares verification answers between gateway instances. Redis
// errors are logged and treated as cache misses.
type RedisCache struct {
	client *redis.Client
	logger *logrus.Entry
}

func NewRedisCache(client *redis.Client, logger *logrus.Entry) *RedisCache {
	return &RedisCache{client: client, logger: logging.OrDiscard(logger)}
}

// DialRedis parses a redis:// URL and pings the server.
func DialRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (r *RedisCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return redisPrefix + hex.EncodeToString(sum[:])
}

func (r *RedisCache) Get(ctx context.Context, token string) (bool, bool) {
	v, err := r.client.Get(ctx, r.key(token)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WithError(err).Warn("verify cache read failed")
		}
		return false, false
	}
	return v == "1", true
}

func (r *RedisCache) Set(ctx context.Context, token string, valid bool, ttl time.Duration) {
	v := "0"
	if valid {
		v = "1"
	}
	if err := r.client.Set(ctx, r.key(token), v, ttl).Err(); err != nil {
		r.logger.WithError(err).Warn("verify cache write failed")
	}
}

func (r *RedisCache) Delete(ctx context.Context, token string) {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		r.logger.WithError(err).Warn("verify cache delete failed")
	}
}
