package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fsr-protokoll/editor/internal/domain"
)

// RedisKeyPrefix namespaces slot keys inside a shared Redis database.
const RedisKeyPrefix = "protokoll:"

// RedisSlotStore keeps slots as plain Redis strings without expiry.
type RedisSlotStore struct {
	client redis.Cmdable
}

// NewRedisSlotStore wraps an existing client; the caller owns its lifecycle.
func NewRedisSlotStore(client redis.Cmdable) *RedisSlotStore {
	return &RedisSlotStore{client: client}
}

func (s *RedisSlotStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, RedisKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("repo.RedisSlotStore.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.RedisSlotStore.Get: %w", err)
	}
	return v, nil
}

func (s *RedisSlotStore) Put(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, RedisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("repo.RedisSlotStore.Put: %w", err)
	}
	return nil
}

func (s *RedisSlotStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, RedisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("repo.RedisSlotStore.Delete: %w", err)
	}
	return nil
}
