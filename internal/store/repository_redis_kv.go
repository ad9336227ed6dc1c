package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-clinic-client/internal/config"
	"github.com/MKhiriev/go-clinic-client/internal/logger"
)

type redisKeyValueStore struct {
	client redis.UniversalClient
	prefix string
	logger *logger.Logger
}

// NewConnectRedis opens a client for cfg and verifies it with PING.
func NewConnectRedis(ctx context.Context, cfg config.ClientRedis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Str("addr", cfg.Address).Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Debug().Str("func", "NewConnectRedis").Msg("connected to redis successfully")

	return client, nil
}

// NewRedisKeyValueStore returns a [KeyValueStore] keeping every key under
// prefix. Values never expire; the session decides when to remove them.
func NewRedisKeyValueStore(client redis.UniversalClient, prefix string, logger *logger.Logger) KeyValueStore {
	return &redisKeyValueStore{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (r *redisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "redisKeyValueStore.Get").Str("key", key).Msg("failed to get value")
		return "", fmt.Errorf("%w: %w", ErrRedisCommand, err)
	}
	return value, nil
}

func (r *redisKeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "redisKeyValueStore.Set").Str("key", key).Msg("failed to set value")
		return fmt.Errorf("%w: %w", ErrRedisCommand, err)
	}
	return nil
}

func (r *redisKeyValueStore) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "redisKeyValueStore.Remove").Str("key", key).Msg("failed to delete value")
		return fmt.Errorf("%w: %w", ErrRedisCommand, err)
	}
	return nil
}
