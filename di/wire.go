//go:build wireinject
// +build wireinject

package di

import (
	"lendahand/config"
	"lendahand/infras/otel"
	"lendahand/internal/app"
	"lendahand/internal/domains/pricing"
	"lendahand/internal/domains/simulator"
	"lendahand/internal/domains/wizard"
	"lendahand/shared/store"
	"lendahand/shared/timezone"

	"github.com/google/wire"

	accountRepository "lendahand/internal/domains/account/repository"
	accountService "lendahand/internal/domains/account/service"
	bookingRepository "lendahand/internal/domains/booking/repository"
	bookingService "lendahand/internal/domains/booking/service"
	catalogRepository "lendahand/internal/domains/catalog/repository"
	catalogService "lendahand/internal/domains/catalog/service"
	chatRepository "lendahand/internal/domains/chat/repository"
	chatService "lendahand/internal/domains/chat/service"
	jobRepository "lendahand/internal/domains/job/repository"
	jobService "lendahand/internal/domains/job/service"
	"lendahand/internal/domains/notification/dispatcher"
	notificationRepository "lendahand/internal/domains/notification/repository"
	notificationService "lendahand/internal/domains/notification/service"
	paymentService "lendahand/internal/domains/payment/service"
	reviewRepository "lendahand/internal/domains/review/repository"
	reviewService "lendahand/internal/domains/review/service"
)

var infrastructures = wire.NewSet(
	otel.New,
	store.New,
)

var engines = wire.NewSet(
	simulator.New,
	pricing.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var accountDomain = wire.NewSet(
	accountRepository.New,
	accountService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	wire.Bind(new(bookingService.Coupons), new(catalogService.Catalog)),
	wizard.New,
)

var sideEffectDomains = wire.NewSet(
	jobRepository.New,
	jobService.New,
	notificationRepository.New,
	notificationService.New,
	chatRepository.New,
	chatService.New,
	dispatcher.New,
)

var settlementDomains = wire.NewSet(
	paymentService.New,
	reviewRepository.New,
	reviewService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	accountDomain,
	bookingDomain,
	sideEffectDomains,
	settlementDomains,
)

var application = wire.NewSet(
	wire.Struct(new(app.Services), "*"),
	app.New,
)

// InitializeApp builds the application. The simulator strategy and clock are
// injected so tests can make every round trip instant and pin "today".
func InitializeApp(cfg *config.Config, strategy simulator.Strategy, clock timezone.Clock) (*app.App, error) {
	wire.Build(
		infrastructures,
		engines,
		domains,
		application,
	)

	return &app.App{}, nil
}
