package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"lendahand/infras/otel"
	"lendahand/shared/constant"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelStoreKeyAttribute = "store.key"
)

type redisStore struct {
	client *redis.Client
	otel   otel.Otel
	prefix string
}

// NewRedisStore keeps every value under prefix+key without expiry.
func NewRedisStore(client *redis.Client, ot otel.Otel, prefix string) Store {
	return &redisStore{
		client: client,
		otel:   ot,
		prefix: prefix,
	}
}

// Clear implements Store.
func (s *redisStore) Clear(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Clear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStoreKeyAttribute, s.prefix)

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		if err = s.client.Del(ctx, key).Err(); err != nil {
			log.Error().Err(err).Str("key", key).Str("RedisStore", "Clear").Msg("failed to del value")

			return fmt.Errorf("failed to delete store value: %w", err)
		}
	}

	if err = iter.Err(); err != nil {
		return fmt.Errorf("failed to scan store keys: %w", err)
	}

	return nil
}

// Remove implements Store.
func (s *redisStore) Remove(ctx context.Context, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStoreKeyAttribute, key)

	if err = s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		log.Error().Str("key", key).Err(err).Str("RedisStore", "Remove").Msg("failed to del value")

		return fmt.Errorf("failed to delete store value: %w", err)
	}

	return nil
}

// Get implements Store.
func (s *redisStore) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStoreKeyAttribute, key)

	raw, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}

	if err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisStore", "Get").Msg("failed to get value")

		return fmt.Errorf("failed to get store value: %w", err)
	}

	if str, ok := value.(*string); ok {
		*str = raw

		return nil
	}

	if err = json.Unmarshal([]byte(raw), value); err != nil {
		log.Error().Err(err).Str("RedisStore", "Get").Msg("failed to unmarshal value")

		return &DecodeError{Key: key, Err: err}
	}

	return nil
}

// Set implements Store.
func (s *redisStore) Set(ctx context.Context, key string, value any) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Set")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStoreKeyAttribute, key)

	var strValue []byte
	switch v := value.(type) {
	case string:
		strValue = []byte(v)
	default:
		strValue, err = json.Marshal(v)

		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("key", key).Str("RedisStore", "Set").Msg("failed to marshal value")

			return fmt.Errorf("failed to marshal store value: %w", err)
		}
	}

	err = s.client.Set(ctx, s.prefix+key, strValue, 0).Err()
	if err != nil {
		scope.TraceError(err)

		log.Error().Err(err).Str("key", key).Str("RedisStore", "Set").Msg("failed to set value")

		return fmt.Errorf("failed to set store value: %w", err)
	}

	log.Debug().Str("RedisStore", "Set").Str("key", key).Msg("stored value")

	return nil
}

func (s *redisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
