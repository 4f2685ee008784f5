package main

import (
	"context"
	"errors"
	"lendahand/config"
	"lendahand/di"
	"lendahand/internal/domains/simulator"
	"lendahand/shared/logger"
	"lendahand/shared/timezone"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg, os.Stdout)

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := di.InitializeApp(cfg, simulator.NewRandom(), timezone.SystemClock())
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize application")

		return 1
	}

	if err = application.Start(ctx); err != nil {
		logger.ErrorWithStack(err)

		return exitCode(application.Close(), 1)
	}

	_, err = application.RunDemo(ctx)

	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		stop()

		log.Info().Msg("Received SIGTERM.")

		// A second signal cuts the grace and cleanup periods short.
		shutdownCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return exitCode(application.Shutdown(shutdownCtx), 0)
	case err != nil:
		logger.ErrorWithStack(err)

		return exitCode(application.Close(), 1)
	default:
		return exitCode(application.Close(), 0)
	}
}

func exitCode(closeErr error, code int) int {
	if closeErr != nil {
		log.Error().Err(closeErr).Msg("Failed to shut down cleanly")

		return 1
	}

	return code
}
