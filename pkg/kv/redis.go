package kv

import (
	"context"
	"time"

	pkgredis "github.com/angelmondragon/izishop-backend/pkg/redis"
)

type redisSlots interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SlotKey(name string) string
}

// Redis stores slots under the client's namespaced slot keys.
type Redis struct {
	client redisSlots
	ttl    time.Duration
}

// NewRedis builds a redis-backed store; ttl of zero keeps slots forever.
func NewRedis(client redisSlots, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.client.SlotKey(key))
	if pkgredis.IsNil(err) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.SlotKey(key), value, r.ttl)
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.SlotKey(key))
}
