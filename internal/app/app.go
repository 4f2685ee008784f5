// Package app ties the booking domains into one running application with an
// explicit start and shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"lendahand/config"
	"lendahand/infras/otel"
	accountService "lendahand/internal/domains/account/service"
	bookingService "lendahand/internal/domains/booking/service"
	catalogDto "lendahand/internal/domains/catalog/model/dto"
	catalogService "lendahand/internal/domains/catalog/service"
	chatService "lendahand/internal/domains/chat/service"
	jobService "lendahand/internal/domains/job/service"
	notificationService "lendahand/internal/domains/notification/service"
	paymentService "lendahand/internal/domains/payment/service"
	reviewService "lendahand/internal/domains/review/service"
	"lendahand/internal/domains/wizard"
	"lendahand/shared/constant"
	"lendahand/shared/store"
	"lendahand/shared/timezone"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const otelShutdownTimeout = 5 * time.Second

type State int

const (
	StateStarting State = iota
	StateReady
	StateInGracePeriod
	StateInCleanupPeriod
	StateClosed
)

// Services are the domain entry points the application exposes.
type Services struct {
	Catalog       catalogService.Catalog
	Accounts      accountService.Account
	Wizard        wizard.Wizard
	Bookings      bookingService.Lifecycle
	Payments      paymentService.Payment
	Reviews       reviewService.Reviews
	Jobs          jobService.Queue
	Notifications notificationService.Notifier
	Chats         chatService.Messenger
}

type App struct {
	Config *config.Config
	Services

	store store.Store
	otel  otel.Otel
	clock timezone.Clock

	mu    sync.Mutex
	state State
}

func New(cfg *config.Config, services Services, st store.Store, ot otel.Otel, clock timezone.Clock) *App {
	return &App{
		Config:   cfg,
		Services: services,
		store:    st,
		otel:     ot,
		clock:    clock,
	}
}

// Start loads the catalog once so a misconfigured store fails before any session runs.
func (a *App) Start(ctx context.Context) error {
	services, err := a.Catalog.ListServices(ctx, catalogDto.ServiceFilter{})
	if err != nil {
		log.Error().Err(err).Msg("failed to load catalog")

		return fmt.Errorf("failed to load catalog: %w", err)
	}

	a.setState(StateReady)

	log.Info().
		Str("app", a.Config.App.Name).
		Str("store", a.Config.Store.Driver).
		Int("services", len(services)).
		Msg("Application ready.")

	return nil
}

func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

func (a *App) setState(state State) {
	a.mu.Lock()
	a.state = state
	a.mu.Unlock()
}

// Shutdown waits out the configured grace and cleanup periods and then closes
// the application. Development environments close immediately, and so does a
// cancelled ctx.
func (a *App) Shutdown(ctx context.Context) error {
	if a.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Shutting down now.")

		return a.Close()
	}

	shutdownConfig := a.Config.Server.Shutdown

	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")
	a.setState(StateInGracePeriod)
	wait(ctx, time.Duration(shutdownConfig.GracePeriodSeconds)*time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")
	a.setState(StateInCleanupPeriod)
	a.Chats.Close()
	wait(ctx, time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")

	return a.Close()
}

// Close stops pending chat replies, then releases the store and flushes traces.
// Calling it again is a no-op.
func (a *App) Close() error {
	a.mu.Lock()
	if a.state == StateClosed {
		a.mu.Unlock()

		return nil
	}

	a.state = StateClosed
	a.mu.Unlock()

	a.Chats.Close()

	var errs []error

	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close store: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()

	if err := a.otel.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
	}

	return errors.Join(errs...)
}

func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
