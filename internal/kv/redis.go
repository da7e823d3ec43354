package kv

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis adapts a redis client to the Store interface. Keys are
// namespaced so several apps can share one instance.
type Redis struct {
	rdb *redis.Client
}

const redisKeyPrefix = "taskdeck:"

func NewRedis(addr string) *Redis {
	return &Redis{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// NewRedisFromClient wraps an existing client (used in tests).
func NewRedisFromClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte) error {
	// No TTL: the collection lives until the user deletes it.
	return s.rdb.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+key).Err()
}
