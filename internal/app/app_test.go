package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lendahand/config"
	"lendahand/di"
	otelMocks "lendahand/infras/otel/mocks"
	"lendahand/internal/app"
	bookingModel "lendahand/internal/domains/booking/model"
	chatModel "lendahand/internal/domains/chat/model"
	paymentMocks "lendahand/internal/domains/payment/mocks"
	paymentModel "lendahand/internal/domains/payment/model"
	paymentDto "lendahand/internal/domains/payment/model/dto"
	reviewMocks "lendahand/internal/domains/review/mocks"
	reviewModel "lendahand/internal/domains/review/model"
	"lendahand/internal/domains/simulator"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/store"
	"lendahand/shared/timezone"
)

var pinned = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newApp(t *testing.T, cfg *config.Config) *app.App {
	t.Helper()

	application, err := di.InitializeApp(cfg, simulator.Fixed{}, timezone.FixedClock(pinned))
	require.NoError(t, err)

	return application
}

func TestApp_RunDemo(t *testing.T) {
	application := newApp(t, config.Default())
	ctx := context.Background()

	require.NoError(t, application.Start(ctx))
	assert.Equal(t, app.StateReady, application.State())

	res, err := application.RunDemo(ctx)
	require.NoError(t, err)

	booking := res.Booking
	assert.Equal(t, bookingModel.StatusCompleted, booking.Status)
	assert.Equal(t, bookingModel.PaymentStatusPaid, booking.PaymentStatus)
	assert.Equal(t, "2026-03-12", booking.Date)
	assert.Equal(t, "09:00 AM", booking.Time)
	require.NotNil(t, booking.ReviewID)
	assert.Equal(t, res.Review.ID, *booking.ReviewID)

	history := make([]bookingModel.Status, 0, len(booking.StatusHistory))
	for _, entry := range booking.StatusHistory {
		history = append(history, entry.Status)
	}

	assert.Equal(t, []bookingModel.Status{
		bookingModel.StatusRequested,
		bookingModel.StatusConfirmed,
		bookingModel.StatusInProgress,
		bookingModel.StatusCompleted,
	}, history)

	assert.Equal(t, booking.ID, res.Invoice.BookingID)
	assert.True(t, res.Invoice.Consistent)
	assert.Positive(t, res.UnreadNotices)

	pending, err := application.Jobs.Pending(ctx, booking.ProviderID)
	require.NoError(t, err)
	assert.NotContains(t, pending, booking.ID)

	chat, err := application.Chats.Get(ctx, res.ChatID)
	require.NoError(t, err)

	var texts []string
	for _, m := range chat.Messages {
		if m.Sender == chatModel.SenderSystem {
			texts = append(texts, m.Text)
		}
	}

	assert.Contains(t, texts, "Booking confirmed for Thursday, 12 March at 09:00 AM.")

	stats, err := application.Bookings.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ByStatus[bookingModel.StatusCompleted])

	require.NoError(t, application.Close())
	assert.Equal(t, app.StateClosed, application.State())
	assert.NoError(t, application.Close())
}

// withServices rebuilds base around services, sharing its domains.
func withServices(base *app.App, services app.Services) *app.App {
	return app.New(base.Config, services, store.NewMemoryStore("swap_"), otelMocks.NewOtel(), timezone.FixedClock(pinned))
}

func TestApp_RunDemoRetriesDeclinedPayment(t *testing.T) {
	base := newApp(t, config.Default())
	defer base.Close()

	ctrl := gomock.NewController(t)
	payments := paymentMocks.NewMockPayment(ctrl)

	services := base.Services
	services.Payments = payments

	gomock.InOrder(
		payments.EXPECT().Pay(gomock.Any(), gomock.Any()).Return(paymentModel.Receipt{}, failure.PaymentDeclined).Times(2),
		payments.EXPECT().Pay(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, req paymentDto.PayRequest) (paymentModel.Receipt, error) {
				return base.Payments.Pay(ctx, req)
			}),
	)

	res, err := withServices(base, services).RunDemo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bookingModel.PaymentStatusPaid, res.Booking.PaymentStatus)
}

func TestApp_RunDemoFailures(t *testing.T) {
	tests := []struct {
		name    string
		swap    func(ctrl *gomock.Controller, services *app.Services)
		wantErr error
	}{
		{
			name: "payment keeps being declined",
			swap: func(ctrl *gomock.Controller, services *app.Services) {
				payments := paymentMocks.NewMockPayment(ctrl)
				payments.EXPECT().Pay(gomock.Any(), gomock.Any()).Return(paymentModel.Receipt{}, failure.PaymentDeclined).Times(3)
				services.Payments = payments
			},
			wantErr: failure.PaymentDeclined,
		},
		{
			name: "insufficient balance is not retried",
			swap: func(ctrl *gomock.Controller, services *app.Services) {
				payments := paymentMocks.NewMockPayment(ctrl)
				payments.EXPECT().Pay(gomock.Any(), gomock.Any()).Return(paymentModel.Receipt{}, failure.InsufficientBalance(50, 104.5))
				services.Payments = payments
			},
		},
		{
			name: "review rejected",
			swap: func(ctrl *gomock.Controller, services *app.Services) {
				reviews := reviewMocks.NewMockReviews(ctrl)
				reviews.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(reviewModel.Review{}, failure.Conflict("booking has already been reviewed"))
				services.Reviews = reviews
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := newApp(t, config.Default())
			defer base.Close()

			services := base.Services
			tt.swap(gomock.NewController(t), &services)

			_, err := withServices(base, services).RunDemo(context.Background())
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestApp_RunDemoCancelled(t *testing.T) {
	application := newApp(t, config.Default())
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := application.RunDemo(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApp_Shutdown(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		grace int64
	}{
		{name: "development closes at once", env: constant.ServerEnvDevelopment, grace: 60},
		{name: "production without periods", env: constant.ServerEnvProduction},
		{name: "production cut short", env: constant.ServerEnvProduction, grace: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Server.Env = tt.env
			cfg.Server.Shutdown.GracePeriodSeconds = tt.grace
			cfg.Server.Shutdown.CleanupPeriodSeconds = tt.grace

			application := newApp(t, cfg)
			require.NoError(t, application.Start(context.Background()))

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			started := time.Now()

			require.NoError(t, application.Shutdown(ctx))
			assert.Equal(t, app.StateClosed, application.State())
			assert.Less(t, time.Since(started), 5*time.Second)
		})
	}
}
