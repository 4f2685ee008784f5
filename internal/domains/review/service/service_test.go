package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lendahand/config"
	otelMocks "lendahand/infras/otel/mocks"
	accountMocks "lendahand/internal/domains/account/mocks"
	accountDto "lendahand/internal/domains/account/model/dto"
	accountRepository "lendahand/internal/domains/account/repository"
	accountService "lendahand/internal/domains/account/service"
	bookingMocks "lendahand/internal/domains/booking/mocks"
	bookingModel "lendahand/internal/domains/booking/model"
	bookingRepository "lendahand/internal/domains/booking/repository"
	bookingService "lendahand/internal/domains/booking/service"
	catalogModel "lendahand/internal/domains/catalog/model"
	catalogRepository "lendahand/internal/domains/catalog/repository"
	catalogService "lendahand/internal/domains/catalog/service"
	"lendahand/internal/domains/pricing"
	reviewMocks "lendahand/internal/domains/review/mocks"
	"lendahand/internal/domains/review/model"
	"lendahand/internal/domains/review/model/dto"
	"lendahand/internal/domains/review/repository"
	"lendahand/internal/domains/review/service"
	"lendahand/internal/domains/simulator"
	"lendahand/shared/failure"
	"lendahand/shared/store"
	"lendahand/shared/timezone"
)

var pinned = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newReviews() (service.Reviews, bookingService.Lifecycle) {
	mockOtel := otelMocks.NewOtel()
	cfg := config.Default()
	st := store.NewMemoryStore("test_")
	sim := simulator.New(simulator.Fixed{}, mockOtel)
	clock := timezone.FixedClock(pinned)

	catalog := catalogService.New(catalogRepository.New(st, mockOtel), sim, cfg, mockOtel)
	bookings := bookingService.New(bookingRepository.New(st, mockOtel), sim, pricing.New(cfg), nil, catalog, cfg, mockOtel, clock)
	accounts := accountService.New(accountRepository.New(st, mockOtel), sim, cfg, mockOtel, clock)

	return service.New(repository.New(st, mockOtel), bookings, accounts, sim, cfg, mockOtel, clock), bookings
}

func TestReviews_Submit(t *testing.T) {
	reviews, bookings := newReviews()
	ctx := context.Background()

	review, err := reviews.Submit(ctx, dto.ReviewRequest{
		BookingID:  "b_seed_1",
		CustomerID: "u1",
		Rating:     4,
		Categories: map[string]int{"quality": 5, "punctuality": 3},
		Comment:    "  Great job on the kitchen.  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", review.ServiceID)
	assert.Equal(t, "Great job on the kitchen.", review.Comment)
	assert.Equal(t, pinned, review.CreatedAt)

	booking, err := bookings.Get(ctx, "b_seed_1")
	require.NoError(t, err)
	require.NotNil(t, booking.ReviewID)
	assert.Equal(t, review.ID, *booking.ReviewID)

	list, err := reviews.ListForService(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, review.ID, list.Items[0].ID)
	assert.InDelta(t, 4.5, list.Average, 0.001)

	_, err = reviews.Submit(ctx, dto.ReviewRequest{BookingID: "b_seed_1", CustomerID: "u1", Rating: 5, Comment: "Second thoughts, even better."})
	assert.True(t, failure.IsKind(err, failure.KindConflict), "got %v", err)

	list, err = reviews.ListForService(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	empty, err := reviews.ListForService(ctx, "s3")
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.Average)
}

func TestReviews_SubmitRefused(t *testing.T) {
	reviews, bookings := newReviews()
	services := catalogModel.SeedServices()
	providers := catalogModel.SeedProviders()

	open, err := bookings.Submit(context.Background(), bookingModel.Draft{
		Step:     bookingModel.StepConfirm,
		Service:  &services[0],
		Provider: &providers[0],
		Date:     "2026-03-12",
		Time:     "09:00 AM",
		Address:  "12 MG Road",
	}, "u1")
	require.NoError(t, err)

	valid := dto.ReviewRequest{BookingID: "b_seed_1", CustomerID: "u1", Rating: 5, Comment: "Really thorough work."}

	tests := []struct {
		name     string
		mutate   func(r *dto.ReviewRequest)
		wantKind failure.Kind
	}{
		{name: "short comment", mutate: func(r *dto.ReviewRequest) { r.Comment = "  meh  " }, wantKind: failure.KindValidation},
		{name: "rating too high", mutate: func(r *dto.ReviewRequest) { r.Rating = 6 }, wantKind: failure.KindValidation},
		{name: "no rating", mutate: func(r *dto.ReviewRequest) { r.Rating = 0 }, wantKind: failure.KindValidation},
		{name: "unknown category", mutate: func(r *dto.ReviewRequest) { r.Categories = map[string]int{"speed": 4} }, wantKind: failure.KindValidation},
		{name: "category out of range", mutate: func(r *dto.ReviewRequest) { r.Categories = map[string]int{"value": 9} }, wantKind: failure.KindValidation},
		{name: "booking not completed", mutate: func(r *dto.ReviewRequest) { r.BookingID = open.ID }, wantKind: failure.KindValidation},
		{name: "cancelled booking", mutate: func(r *dto.ReviewRequest) { r.BookingID = "b_seed_2" }, wantKind: failure.KindValidation},
		{name: "someone else's booking", mutate: func(r *dto.ReviewRequest) { r.CustomerID = "u2" }, wantKind: failure.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			_, err := reviews.Submit(context.Background(), req)
			assert.True(t, failure.IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestReviews_DiscardWhenAttachFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := reviewMocks.NewMockReview(ctrl)
	bookings := bookingMocks.NewMockLifecycle(ctrl)
	accounts := accountMocks.NewMockAccount(ctrl)
	mockOtel := otelMocks.NewOtel()
	reviews := service.New(repo, bookings, accounts, simulator.New(simulator.Fixed{}, mockOtel), config.Default(), mockOtel, timezone.FixedClock(pinned))

	completed := bookingModel.Booking{ID: "b1", CustomerID: "u1", Status: bookingModel.StatusCompleted}
	conflict := failure.Conflict("booking has already been reviewed")

	var saved model.Review

	gomock.InOrder(
		bookings.EXPECT().Get(gomock.Any(), "b1").Return(completed, nil),
		accounts.EXPECT().Get(gomock.Any(), "u1").Return(accountDto.UserResponse{ID: "u1", Name: "Asha"}, nil),
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r model.Review) error {
			saved = r

			return nil
		}),
		bookings.EXPECT().AttachReview(gomock.Any(), "b1", gomock.Any()).Return(completed, conflict),
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) error {
			assert.Equal(t, saved.ID, id)

			return nil
		}),
	)

	_, err := reviews.Submit(context.Background(), dto.ReviewRequest{BookingID: "b1", CustomerID: "u1", Rating: 5, Comment: "Lovely service overall."})
	assert.True(t, failure.IsKind(err, failure.KindConflict))
	assert.Equal(t, "Asha", saved.CustomerName)
}
