package redis

import (
	"context"
	"fmt"
	"lendahand/config"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 3 * time.Second

// New connects to the Redis instance backing the persistent store and checks it answers.
func New(cfg *config.Config) (*goRedis.Client, error) {
	redisConfig := cfg.Store.Redis

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(redisConfig.Host, redisConfig.Port),
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("host", redisConfig.Host).Msg("Failed to connect to Redis")

		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().
		Int("db", redisConfig.DB).
		Str("host", redisConfig.Host).
		Str("port", redisConfig.Port).
		Msg("Connected to Redis")

	return client, nil
}
