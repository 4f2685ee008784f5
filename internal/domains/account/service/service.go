package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"lendahand/config"
	"lendahand/infras/otel"
	"lendahand/internal/domains/account/model"
	"lendahand/internal/domains/account/model/dto"
	"lendahand/internal/domains/account/repository"
	"lendahand/internal/domains/simulator"
	"lendahand/shared"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/password"
	"lendahand/shared/timezone"
	"lendahand/shared/validator"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrInvalidCredentials = failure.Unauthorized("Invalid email or password.")

type Account interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.UserResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	AddAddress(ctx context.Context, userID string, req dto.AddAddressRequest) (dto.UserResponse, error)
	Balance(ctx context.Context, userID string) (float64, error)
	TopUp(ctx context.Context, req dto.WalletRequest) (float64, error)
	Deduct(ctx context.Context, req dto.WalletRequest) (float64, error)
}

type serviceImpl struct {
	mu        sync.Mutex
	repo      repository.User
	simulator simulator.Simulator
	cfg       *config.Config
	otel      otel.Otel
	clock     timezone.Clock
}

func New(repo repository.User, sim simulator.Simulator, cfg *config.Config, otel otel.Otel, clock timezone.Clock) Account {
	return &serviceImpl{
		repo:      repo,
		simulator: sim,
		cfg:       cfg,
		otel:      otel,
		clock:     clock,
	}
}

func (s *serviceImpl) findByEmail(ctx context.Context, email string) (model.User, bool, error) {
	users, err := s.repo.Find(ctx, func(u model.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to find user: %w", err)
	}

	if len(users) == 0 {
		return model.User{}, false, nil
	}

	return users[0], true, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = s.simulator.Simulate(ctx, "account.login", simulator.FromConfig(s.cfg.Simulator.Login, nil)); err != nil {
		return res, err // nolint:wrapcheck
	}

	user, found, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, err
	}

	if !found {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, ErrInvalidCredentials
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			log.Error().Err(err).Str("user_id", user.ID).Msg("failed to verify password")
		}

		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, ErrInvalidCredentials
	}

	if req.Role != "" && req.Role != user.Role {
		log.Warn().Str("email", req.Email).Str("role", req.Role).Msg("login attempt with wrong role")

		return res, ErrInvalidCredentials
	}

	res.FromModel(user)

	log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")

	return res, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = s.simulator.Simulate(ctx, "account.register", simulator.FromConfig(s.cfg.Simulator.Login, nil)); err != nil {
		return res, err // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, err
	}

	if exists {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	user := req.ToUserModel(hashedPassword, s.clock())

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return user, err // nolint:wrapcheck
		}

		log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) AddAddress(ctx context.Context, userID string, req dto.AddAddressRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddAddress")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Address = strings.TrimSpace(req.Address)
	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	if req.Label == "" {
		req.Label = "Address"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.get(ctx, userID)
	if err != nil {
		return res, err
	}

	user.SavedAddresses = append(user.SavedAddresses, model.Address{
		ID:      shared.NewID("a"),
		Label:   req.Label,
		Address: req.Address,
	})
	user.Touch(s.clock(), userID)

	if err = s.repo.Update(ctx, user); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to save address")

		return res, fmt.Errorf("failed to save address: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Balance(ctx context.Context, userID string) (res float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Balance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.get(ctx, userID)
	if err != nil {
		return 0, err
	}

	return user.WalletBalance, nil
}

func (s *serviceImpl) TopUp(ctx context.Context, req dto.WalletRequest) (res float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TopUp")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.adjust(ctx, req, 1)
}

// Deduct fails with an insufficient-balance failure, leaving the wallet untouched,
// when the balance does not cover the amount.
func (s *serviceImpl) Deduct(ctx context.Context, req dto.WalletRequest) (res float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deduct")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.adjust(ctx, req, -1)
}

func (s *serviceImpl) adjust(ctx context.Context, req dto.WalletRequest, sign float64) (float64, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return 0, err // nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.get(ctx, req.UserID)
	if err != nil {
		return 0, err
	}

	if sign < 0 && user.WalletBalance < req.Amount {
		return user.WalletBalance, failure.InsufficientBalance(user.WalletBalance, req.Amount) // nolint:wrapcheck
	}

	previous := user.WalletBalance
	user.WalletBalance = shared.Round2(user.WalletBalance + sign*req.Amount)
	user.Touch(s.clock(), req.UserID)

	if err = s.repo.Update(ctx, user); err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to update wallet")

		return previous, fmt.Errorf("failed to update wallet: %w", err)
	}

	log.Info().
		Str("user_id", req.UserID).
		Float64("from", previous).
		Float64("to", user.WalletBalance).
		Msg("wallet balance changed")

	return user.WalletBalance, nil
}
