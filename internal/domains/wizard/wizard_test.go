package wizard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lendahand/config"
	otelMocks "lendahand/infras/otel/mocks"
	bookingMocks "lendahand/internal/domains/booking/mocks"
	bookingModel "lendahand/internal/domains/booking/model"
	catalogMocks "lendahand/internal/domains/catalog/mocks"
	catalogModel "lendahand/internal/domains/catalog/model"
	catalogService "lendahand/internal/domains/catalog/service"
	"lendahand/internal/domains/pricing"
	"lendahand/internal/domains/wizard"
	"lendahand/shared/failure"
	"lendahand/shared/timezone"
)

var pinned = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	wizard    wizard.Wizard
	catalog   *catalogMocks.MockCatalog
	lifecycle *bookingMocks.MockLifecycle
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		catalog:   catalogMocks.NewMockCatalog(ctrl),
		lifecycle: bookingMocks.NewMockLifecycle(ctrl),
	}
	f.wizard = wizard.New(f.catalog, f.lifecycle, pricing.New(config.Default()), otelMocks.NewOtel(), timezone.FixedClock(pinned))

	return f
}

func cleaning() catalogModel.Service {
	return catalogModel.SeedServices()[0]
}

func provider(id string) *catalogModel.Provider {
	for _, p := range catalogModel.SeedProviders() {
		if p.ID == id {
			return &p
		}
	}

	return nil
}

// walk takes a fresh wizard to the confirm step.
func walk(t *testing.T, w wizard.Wizard) {
	t.Helper()

	w.Start(cleaning())
	require.True(t, w.Advance(bookingModel.StepData{}))
	require.True(t, w.Advance(bookingModel.StepData{Provider: provider("p1")}))
	require.True(t, w.Advance(bookingModel.StepData{Date: "2026-03-12", Time: "09:00 AM"}))
	require.True(t, w.Advance(bookingModel.StepData{Address: "12 MG Road"}))
	require.True(t, w.Advance(bookingModel.StepData{}))
}

func TestWizard_AdvanceBeforeStart(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.wizard.Advance(bookingModel.StepData{}))
	assert.False(t, f.wizard.GoTo(bookingModel.StepService))
	assert.True(t, failure.IsKind(f.wizard.CanAdvance(), failure.KindValidation))

	_, ok := f.wizard.Quote()
	assert.False(t, ok)
}

func TestWizard_Guards(t *testing.T) {
	tests := []struct {
		name  string
		setup []bookingModel.StepData
		data  bookingModel.StepData
		step  int
	}{
		{
			name:  "no provider",
			setup: []bookingModel.StepData{{}},
			data:  bookingModel.StepData{},
			step:  bookingModel.StepProvider,
		},
		{
			name:  "provider from another category",
			setup: []bookingModel.StepData{{}},
			data:  bookingModel.StepData{Provider: provider("p2")},
			step:  bookingModel.StepProvider,
		},
		{
			name:  "date without time",
			setup: []bookingModel.StepData{{}, {Provider: provider("p1")}},
			data:  bookingModel.StepData{Date: "2026-03-12"},
			step:  bookingModel.StepDateTime,
		},
		{
			name:  "past date",
			setup: []bookingModel.StepData{{}, {Provider: provider("p1")}},
			data:  bookingModel.StepData{Date: "2026-03-09", Time: "09:00 AM"},
			step:  bookingModel.StepDateTime,
		},
		{
			name:  "busy slot",
			setup: []bookingModel.StepData{{}, {Provider: provider("p1")}},
			data:  bookingModel.StepData{Date: "2026-03-12", Time: "11:00 AM"},
			step:  bookingModel.StepDateTime,
		},
		{
			name:  "slot outside availability",
			setup: []bookingModel.StepData{{}, {Provider: provider("p1")}},
			data:  bookingModel.StepData{Date: "2026-03-12", Time: "08:00 PM"},
			step:  bookingModel.StepDateTime,
		},
		{
			name:  "blank address",
			setup: []bookingModel.StepData{{}, {Provider: provider("p1")}, {Date: "2026-03-12", Time: "09:00 AM"}},
			data:  bookingModel.StepData{Address: "   "},
			step:  bookingModel.StepAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.wizard.Start(cleaning())

			for _, data := range tt.setup {
				require.True(t, f.wizard.Advance(data))
			}

			before := f.wizard.Draft()

			assert.False(t, f.wizard.Advance(tt.data))
			assert.Equal(t, tt.step, f.wizard.Draft().Step)
			assert.Equal(t, before, f.wizard.Draft())
		})
	}
}

func TestWizard_GoToKeepsLaterFields(t *testing.T) {
	f := newFixture(t)
	walk(t, f.wizard)

	draft := f.wizard.Draft()
	assert.Equal(t, bookingModel.StepConfirm, draft.Step)
	assert.Equal(t, bookingModel.PaymentMethodCard, draft.PaymentMethod)

	require.True(t, f.wizard.GoTo(bookingModel.StepDateTime))
	back := f.wizard.Draft()
	assert.Equal(t, bookingModel.StepDateTime, back.Step)
	assert.Equal(t, bookingModel.StepConfirm, back.Furthest)
	assert.Equal(t, "12 MG Road", back.Address)
	assert.Equal(t, "09:00 AM", back.Time)

	require.True(t, f.wizard.Advance(bookingModel.StepData{Time: "10:00 AM"}))
	assert.Equal(t, "10:00 AM", f.wizard.Draft().Time)
	assert.Equal(t, bookingModel.StepConfirm, f.wizard.Draft().Furthest)

	assert.True(t, f.wizard.GoTo(bookingModel.StepConfirm))
	assert.False(t, f.wizard.GoTo(bookingModel.StepConfirm+1))
	assert.False(t, f.wizard.GoTo(0))
	assert.False(t, f.wizard.Advance(bookingModel.StepData{}))

	f.wizard.Start(cleaning())
	assert.False(t, f.wizard.GoTo(bookingModel.StepProvider))
	assert.Empty(t, f.wizard.Draft().Address)
}

func TestWizard_ApplyCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	walk(t, f.wizard)

	first := catalogModel.SeedCoupons()["FIRST10"]
	f.catalog.EXPECT().ValidateCoupon(gomock.Any(), "first10").Return(first, nil)
	f.catalog.EXPECT().ValidateCoupon(gomock.Any(), "badcode").Return(catalogModel.Coupon{}, catalogService.ErrInvalidCoupon)

	coupon, err := f.wizard.ApplyCoupon(ctx, "first10")
	require.NoError(t, err)
	assert.Equal(t, "FIRST10", coupon.Code)

	_, err = f.wizard.ApplyCoupon(ctx, "badcode")
	assert.ErrorIs(t, err, catalogService.ErrInvalidCoupon)

	require.NotNil(t, f.wizard.Draft().Coupon)
	assert.Equal(t, "FIRST10", f.wizard.Draft().Coupon.Code)
}

func TestWizard_Quote(t *testing.T) {
	f := newFixture(t)
	f.wizard.Start(cleaning())

	quote, ok := f.wizard.Quote()
	require.True(t, ok)
	assert.Equal(t, pricing.Breakdown{Base: 85, PlatformFee: 10, Tax: 9.5, Total: 104.5}, quote)
}

func TestWizard_Submit(t *testing.T) {
	t.Run("success clears the draft", func(t *testing.T) {
		f := newFixture(t)
		walk(t, f.wizard)

		f.lifecycle.EXPECT().
			Submit(gomock.Any(), gomock.Any(), "u1").
			DoAndReturn(func(_ context.Context, draft bookingModel.Draft, _ string) (bookingModel.Booking, error) {
				assert.Equal(t, bookingModel.StepConfirm, draft.Step)
				assert.Equal(t, "p1", draft.Provider.ID)

				return bookingModel.Booking{ID: "b1", Status: bookingModel.StatusRequested}, nil
			})

		booking, err := f.wizard.Submit(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "b1", booking.ID)
		assert.Equal(t, bookingModel.Draft{}, f.wizard.Draft())
	})

	t.Run("failure keeps the draft", func(t *testing.T) {
		f := newFixture(t)
		walk(t, f.wizard)

		f.lifecycle.EXPECT().
			Submit(gomock.Any(), gomock.Any(), "u1").
			Return(bookingModel.Booking{}, failure.NetworkError)

		_, err := f.wizard.Submit(context.Background(), "u1")
		assert.ErrorIs(t, err, failure.NetworkError)
		assert.Equal(t, bookingModel.StepConfirm, f.wizard.Draft().Step)
	})
}
