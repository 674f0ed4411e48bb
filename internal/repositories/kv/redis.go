package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds configuration for the Redis store
type RedisConfig struct {
	// Redis client
	RedisClient *redis.Client

	// KeyPrefix is prepended to every key, optional
	KeyPrefix string
}

// redisStore implements the Store interface using Redis
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a new Redis-backed store
func NewRedis(cfg *RedisConfig) (*redisStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{
		client: cfg.RedisClient,
		prefix: cfg.KeyPrefix,
	}, nil
}

// Get reads a key from Redis
func (r *redisStore) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateKey(input.Key); err != nil {
		return nil, err
	}

	value, err := r.client.Get(ctx, r.prefix+input.Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", input.Key, err)
	}

	return &GetOutput{Value: value}, nil
}

// Put writes a key to Redis with no expiration
func (r *redisStore) Put(ctx context.Context, input *PutInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateKey(input.Key); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.prefix+input.Key, input.Value, 0).Err(); err != nil {
		return fmt.Errorf("failed to put %s: %w", input.Key, err)
	}

	return nil
}

// Delete removes a key from Redis
func (r *redisStore) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateKey(input.Key); err != nil {
		return err
	}

	if err := r.client.Del(ctx, r.prefix+input.Key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", input.Key, err)
	}

	return nil
}
