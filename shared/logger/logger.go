package logger

import (
	"io"
	"lendahand/config"
	"lendahand/shared/constant"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a trace-level console logger so configuration loading can
// already log. Configure replaces it once the configuration is known.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// Configure points the global logger at out, applies the configured level and
// tags every line with the application name.
func Configure(cfg *config.Config, out io.Writer) {
	UseOutput(cfg, out)
	SetLogLevel(cfg)

	log.Logger = log.With().Str("app", cfg.App.Name).Logger()
}

// UseOutput switches the global logger to out. Production logs plain JSON,
// every other environment keeps the console writer.
func UseOutput(cfg *config.Config, out io.Writer) {
	if cfg.Server.Env == constant.ServerEnvProduction {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()

		return
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies LOG_LEVEL, defaulting to debug so simulated round trips
// and wizard guards stay visible in the demo.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Trace().Str("loglevel", level.String()).Msg("Log level applied.")
}
