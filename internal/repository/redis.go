package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const preferenceKeyPrefix = "preferences:"

// RedisPreferenceStore is a key-value preference store on Redis
type RedisPreferenceStore struct {
	client *redis.Client
}

// NewRedisPreferenceStore creates a new Redis preference store
func NewRedisPreferenceStore(client *redis.Client) *RedisPreferenceStore {
	return &RedisPreferenceStore{client: client}
}

// Get returns the value under key; ok is false when the key is absent
func (s *RedisPreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, preferenceKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("repository: failed to read preference: %w", err)
	}
	return value, true, nil
}

// Set overwrites the value under key with no expiry
func (s *RedisPreferenceStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, preferenceKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("repository: failed to write preference: %w", err)
	}
	return nil
}
