package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lendahand/config"
	"lendahand/infras/otel"
	"lendahand/internal/domains/catalog/model"
	"lendahand/internal/domains/catalog/model/dto"
	"lendahand/internal/domains/catalog/repository"
	"lendahand/internal/domains/simulator"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/validator"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrInvalidCoupon = failure.Validation("Invalid coupon code")

type Catalog interface {
	ListServices(ctx context.Context, filter dto.ServiceFilter) ([]model.Service, error)
	GetService(ctx context.Context, id string) (model.Service, error)
	ListProviders(ctx context.Context, category string) ([]model.Provider, error)
	GetProvider(ctx context.Context, id string) (model.Provider, error)
	UpdatePrice(ctx context.Context, req dto.UpdatePriceRequest) (model.Service, error)
	ValidateCoupon(ctx context.Context, code string) (model.Coupon, error)
	LookupCoupon(code string) (model.Coupon, bool)
}

type serviceImpl struct {
	mu        sync.Mutex
	repo      repository.Service
	simulator simulator.Simulator
	cfg       *config.Config
	otel      otel.Otel
	providers []model.Provider
	coupons   map[string]model.Coupon
}

func New(repo repository.Service, sim simulator.Simulator, cfg *config.Config, otel otel.Otel) Catalog {
	return &serviceImpl{
		repo:      repo,
		simulator: sim,
		cfg:       cfg,
		otel:      otel,
		providers: model.SeedProviders(),
		coupons:   model.SeedCoupons(),
	}
}

func (s *serviceImpl) ListServices(ctx context.Context, filter dto.ServiceFilter) (res []model.Service, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListServices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&filter); err != nil {
		return nil, err // nolint:wrapcheck
	}

	services, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return nil, fmt.Errorf("failed to get services: %w", err)
	}

	return filter.Apply(services), nil
}

func (s *serviceImpl) GetService(ctx context.Context, id string) (res model.Service, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, id)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return res, err // nolint:wrapcheck
		}

		log.Error().Err(err).Str("service_id", id).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) ListProviders(ctx context.Context, category string) ([]model.Provider, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListProviders")
	defer scope.End()

	res := make([]model.Provider, 0, len(s.providers))

	for _, provider := range s.providers {
		if category == "" || provider.Category == category {
			res = append(res, provider)
		}
	}

	return res, nil
}

func (s *serviceImpl) GetProvider(ctx context.Context, id string) (model.Provider, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProvider")
	defer scope.End()

	index := slices.IndexFunc(s.providers, func(p model.Provider) bool { return p.ID == id })
	if index == -1 {
		return model.Provider{}, failure.NotFound("provider not found") // nolint:wrapcheck
	}

	return s.providers[index], nil
}

// UpdatePrice changes the catalog price only. Bookings keep the price they were created with.
func (s *serviceImpl) UpdatePrice(ctx context.Context, req dto.UpdatePriceRequest) (res model.Service, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePrice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err = s.GetService(ctx, req.ServiceID)
	if err != nil {
		return res, err
	}

	previous := res.Price
	res.Price = req.Price

	if err = res.Validate(); err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, res); err != nil {
		log.Error().Err(err).Str("service_id", req.ServiceID).Msg("failed to update service price")

		return res, fmt.Errorf("failed to update service price: %w", err)
	}

	log.Info().
		Str("service_id", req.ServiceID).
		Float64("from", previous).
		Float64("to", req.Price).
		Msg("service price updated")

	return res, nil
}

// ValidateCoupon simulates a server-side coupon check. Codes are case-insensitive.
func (s *serviceImpl) ValidateCoupon(ctx context.Context, code string) (res model.Coupon, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidateCoupon")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.simulator.Simulate(ctx, "coupon.validate", simulator.FromConfig(s.cfg.Simulator.Coupon, nil)); err != nil {
		return res, err // nolint:wrapcheck
	}

	coupon, ok := s.LookupCoupon(code)
	if !ok {
		return res, ErrInvalidCoupon
	}

	return coupon, nil
}

func (s *serviceImpl) LookupCoupon(code string) (model.Coupon, bool) {
	coupon, ok := s.coupons[strings.ToUpper(strings.TrimSpace(code))]

	return coupon, ok
}
