package store

import (
	"fmt"
	"lendahand/config"
	"lendahand/infras/otel"
	redisInfra "lendahand/infras/redis"
	"lendahand/shared/constant"

	"github.com/rs/zerolog/log"
)

// New builds the Store named by the configured driver. An empty driver means memory.
func New(cfg *config.Config, ot otel.Otel) (Store, error) {
	switch cfg.Store.Driver {
	case constant.StoreDriverMemory, constant.Empty:
		log.Info().Str("prefix", cfg.App.StorePrefix).Msg("Using in-memory store")

		return NewMemoryStore(cfg.App.StorePrefix), nil
	case constant.StoreDriverRedis:
		client, err := redisInfra.New(cfg)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		return NewRedisStore(client, ot, cfg.App.StorePrefix), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
