package revokedtokens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "authkeeper:revoked"

// RedisRepository keeps one key per revoked token. Keys carry a TTL equal
// to the token's remaining lifetime, so Redis expires them on its own.
type RedisRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisRepository(client redis.UniversalClient, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisRepository{client: client, prefix: prefix}
}

// NewRedisClient builds a client from a redis:// URL and pings it.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (r *RedisRepository) key(jti string) string {
	return r.prefix + ":" + jti
}

func (r *RedisRepository) Add(ctx context.Context, token models.RevokedToken) error {
	ttl := token.ExpiresAt.Sub(token.InvalidatedAt)
	if ttl < time.Second {
		ttl = time.Second
	}
	value := strconv.FormatInt(token.InvalidatedAt.Unix(), 10)
	if err := r.client.SetNX(ctx, r.key(token.JTI), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (r *RedisRepository) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}
	return n > 0, nil
}

// DeleteExpired is a no-op: key TTLs already drop expired entries.
func (r *RedisRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
