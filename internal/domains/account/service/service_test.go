package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lendahand/config"
	"lendahand/infras/otel/mocks"
	accountMocks "lendahand/internal/domains/account/mocks"
	"lendahand/internal/domains/account/model"
	"lendahand/internal/domains/account/model/dto"
	"lendahand/internal/domains/account/repository"
	"lendahand/internal/domains/account/service"
	"lendahand/internal/domains/simulator"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/store"
	"lendahand/shared/timezone"
)

var pinned = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newService(repo repository.User) service.Account {
	mockOtel := mocks.NewOtel()

	return service.New(repo, simulator.New(simulator.Fixed{}, mockOtel), config.Default(), mockOtel, timezone.FixedClock(pinned))
}

func newStoreService() service.Account {
	return newService(repository.New(store.NewMemoryStore("test_"), mocks.NewOtel()))
}

func TestAccountService_Login(t *testing.T) {
	svc := newStoreService()

	tests := []struct {
		name     string
		req      dto.LoginRequest
		wantID   string
		wantKind failure.Kind
	}{
		{
			name:   "customer",
			req:    dto.LoginRequest{Email: "customer@lendahand.app", Password: "password"},
			wantID: "u1",
		},
		{
			name:   "email is case-insensitive",
			req:    dto.LoginRequest{Email: "Provider@LendAHand.app", Password: "password", Role: constant.RoleProvider},
			wantID: "p1",
		},
		{
			name:     "wrong password",
			req:      dto.LoginRequest{Email: "customer@lendahand.app", Password: "hunter22"},
			wantKind: failure.KindUnauthorized,
		},
		{
			name:     "wrong role",
			req:      dto.LoginRequest{Email: "customer@lendahand.app", Password: "password", Role: constant.RoleAdmin},
			wantKind: failure.KindUnauthorized,
		},
		{
			name:     "unknown email",
			req:      dto.LoginRequest{Email: "nobody@lendahand.app", Password: "password"},
			wantKind: failure.KindUnauthorized,
		},
		{
			name:     "malformed email",
			req:      dto.LoginRequest{Email: "not-an-email", Password: "password"},
			wantKind: failure.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantKind != "" {
				assert.True(t, failure.IsKind(err, tt.wantKind), "got %v", err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.ID)
		})
	}
}

func TestAccountService_Register(t *testing.T) {
	svc := newStoreService()
	ctx := context.Background()

	res, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Email: "Ravi@Example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, constant.RoleCustomer, res.Role)
	assert.Equal(t, "ravi@example.com", res.Email)
	assert.Equal(t, "2026-03-10", res.JoinedDate)
	assert.Zero(t, res.WalletBalance)

	logged, err := svc.Login(ctx, dto.LoginRequest{Email: "ravi@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, res.ID, logged.ID)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "s3cretpass"})
	assert.True(t, failure.IsKind(err, failure.KindConflict))

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Short", Email: "short@example.com", Password: "short"})
	assert.True(t, failure.IsKind(err, failure.KindValidation))
}

func TestAccountService_Wallet(t *testing.T) {
	svc := newStoreService()
	ctx := context.Background()

	balance, err := svc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, balance, 1e-9)

	_, err = svc.Deduct(ctx, dto.WalletRequest{UserID: "u1", Amount: 104.5})
	assert.True(t, failure.IsKind(err, failure.KindInsufficientBalance))

	balance, err = svc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, balance, 1e-9, "a refused deduction leaves the wallet untouched")

	balance, err = svc.TopUp(ctx, dto.WalletRequest{UserID: "u1", Amount: 100})
	require.NoError(t, err)
	assert.InDelta(t, 150.0, balance, 1e-9)

	balance, err = svc.Deduct(ctx, dto.WalletRequest{UserID: "u1", Amount: 104.5})
	require.NoError(t, err)
	assert.InDelta(t, 45.5, balance, 1e-9)

	_, err = svc.TopUp(ctx, dto.WalletRequest{UserID: "u1", Amount: -5})
	assert.True(t, failure.IsKind(err, failure.KindValidation))

	_, err = svc.TopUp(ctx, dto.WalletRequest{UserID: "ghost", Amount: 5})
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}

func TestAccountService_AddAddress(t *testing.T) {
	svc := newStoreService()
	ctx := context.Background()

	res, err := svc.AddAddress(ctx, "u1", dto.AddAddressRequest{Address: "  7 Park Street, Kolkata  "})
	require.NoError(t, err)
	require.Len(t, res.SavedAddresses, 3)
	assert.Equal(t, "Address", res.SavedAddresses[2].Label)
	assert.Equal(t, "7 Park Street, Kolkata", res.SavedAddresses[2].Address)

	_, err = svc.AddAddress(ctx, "u1", dto.AddAddressRequest{Address: "   "})
	assert.True(t, failure.IsKind(err, failure.KindValidation))
}

func TestAccountService_RepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := accountMocks.NewMockUser(ctrl)
	svc := newService(mockRepo)

	tests := []struct {
		name      string
		setupMock func()
		call      func() error
	}{
		{
			name: "get fails",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), "u1").Return(model.User{}, errors.New("store down"))
			},
			call: func() error {
				_, err := svc.Get(context.Background(), "u1")

				return err
			},
		},
		{
			name: "update fails",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), "u1").Return(model.SeedUsers()[0], nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("store down"))
			},
			call: func() error {
				_, err := svc.TopUp(context.Background(), dto.WalletRequest{UserID: "u1", Amount: 10})

				return err
			},
		},
		{
			name: "find fails",
			setupMock: func() {
				mockRepo.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, errors.New("store down"))
			},
			call: func() error {
				_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "customer@lendahand.app", Password: "password"})

				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := tt.call()
			assert.Error(t, err)
			assert.Equal(t, failure.KindInternal, failure.GetKind(err))
		})
	}
}
