package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name           string `envconfig:"APP_NAME"    default:"lendahand"`
		Timezone       string `envconfig:"TIMEZONE"`
		StorePrefix    string `envconfig:"STORE_PREFIX" default:"lendahand_"`
		DemoCustomerID string `envconfig:"DEMO_CUSTOMER_ID" default:"u1"`
	} `envconfig:"APP"`

	Store struct {
		Driver string `envconfig:"DRIVER" default:"memory"`
		Redis  struct {
			Host     string `envconfig:"HOST"`
			Port     string `envconfig:"PORT"`
			Password string `envconfig:"PASSWORD"`
			DB       int    `envconfig:"DB"`
		} `envconfig:"REDIS"`
	} `envconfig:"STORE"`

	Simulator struct {
		BookingSubmit Operation     `envconfig:"BOOKING_SUBMIT" default:"1200ms/0"`
		StatusUpdate  Operation     `envconfig:"STATUS_UPDATE"  default:"600ms/0"`
		Payment       Operation     `envconfig:"PAYMENT"        default:"2000ms/0.05"`
		Coupon        Operation     `envconfig:"COUPON"         default:"600ms/0"`
		Login         Operation     `envconfig:"LOGIN"          default:"800ms/0"`
		Review        Operation     `envconfig:"REVIEW"         default:"800ms/0"`
		ChatReplyMin  time.Duration `envconfig:"CHAT_REPLY_MIN" default:"1500ms"`
		ChatReplyMax  time.Duration `envconfig:"CHAT_REPLY_MAX" default:"3000ms"`
	} `envconfig:"SIMULATOR"`

	Chat struct {
		SendInterval time.Duration `envconfig:"SEND_INTERVAL" default:"1s"`
		SendBurst    int           `envconfig:"SEND_BURST"    default:"5"`
	} `envconfig:"CHAT"`

	Pricing struct {
		TaxRate            float64 `envconfig:"TAX_RATE"             default:"0.10"`
		DefaultPlatformFee float64 `envconfig:"DEFAULT_PLATFORM_FEE" default:"10"`
	} `envconfig:"PRICING"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}

// Default returns a configuration populated only from the envconfig default tags.
func Default() *Config {
	cfg := &Config{}
	if err := envconfig.Process("LENDAHAND_DEFAULTS_ONLY", cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply configuration defaults")
	}

	return cfg
}
