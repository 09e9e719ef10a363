package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	client *redis.Client
}

// NewRedisStorage returns a PersistentStorage backed by Redis.
// Carts have no TTL of their own; entries live until cleared.
func NewRedisStorage(client *redis.Client) PersistentStorage {
	return &redisStorage{client: client}
}

var _ PersistentStorage = (*redisStorage)(nil)

func (s *redisStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load cart: %w", err)
	}

	return raw, true, nil
}

func (s *redisStorage) Save(ctx context.Context, key string, raw []byte) error {
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *redisStorage) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *redisStorage) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan cart keys: %w", err)
	}

	return keys, nil
}
