// Package wizard drives the six-step booking flow for one customer session.
// Steps only move forward one at a time; going back never discards what was
// collected, and only Start clears the draft.
package wizard

import (
	"context"
	"lendahand/infras/otel"
	bookingModel "lendahand/internal/domains/booking/model"
	bookingService "lendahand/internal/domains/booking/service"
	catalogModel "lendahand/internal/domains/catalog/model"
	catalogService "lendahand/internal/domains/catalog/service"
	"lendahand/internal/domains/pricing"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/timezone"
	"sync"

	"github.com/rs/zerolog/log"
)

type Wizard interface {
	// Start resets the draft to the service step with only svc selected.
	Start(svc catalogModel.Service) bookingModel.Draft
	// Advance merges data and moves to the next step when the current step's
	// requirements hold. It reports false and leaves the draft untouched otherwise.
	Advance(data bookingModel.StepData) bool
	// GoTo jumps to any step already reached.
	GoTo(step int) bool
	// CanAdvance explains why the current step cannot be left, or returns nil.
	CanAdvance() error
	// ApplyCoupon validates code and attaches the coupon to the draft.
	ApplyCoupon(ctx context.Context, code string) (catalogModel.Coupon, error)
	// Quote prices the selected service.
	Quote() (pricing.Breakdown, bool)
	Draft() bookingModel.Draft
	// Submit hands the draft to the lifecycle manager and clears it on success.
	Submit(ctx context.Context, customerID string) (bookingModel.Booking, error)
}

type wizardImpl struct {
	mu        sync.Mutex
	draft     bookingModel.Draft
	catalog   catalogService.Catalog
	lifecycle bookingService.Lifecycle
	pricing   pricing.Calculator
	otel      otel.Otel
	clock     timezone.Clock
}

func New(
	catalog catalogService.Catalog,
	lifecycle bookingService.Lifecycle,
	calc pricing.Calculator,
	otel otel.Otel,
	clock timezone.Clock,
) Wizard {
	return &wizardImpl{
		catalog:   catalog,
		lifecycle: lifecycle,
		pricing:   calc,
		otel:      otel,
		clock:     clock,
	}
}

func (w *wizardImpl) Start(svc catalogModel.Service) bookingModel.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()

	selected := svc.Clone()
	w.draft = bookingModel.Draft{
		Step:     bookingModel.StepService,
		Furthest: bookingModel.StepService,
		Service:  &selected,
	}

	log.Debug().Str("service_id", svc.ID).Msg("booking wizard started")

	return w.draft
}

func (w *wizardImpl) Advance(data bookingModel.StepData) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.draft.Step < bookingModel.StepService || w.draft.Step >= bookingModel.StepConfirm {
		return false
	}

	next := w.draft.Merge(data)
	if next.Step == bookingModel.StepPricing && next.PaymentMethod == "" {
		next.PaymentMethod = bookingModel.PaymentMethodCard
	}

	if err := next.CheckStep(next.Step, w.clock()); err != nil {
		log.Debug().Err(err).Int("step", next.Step).Msg("wizard step incomplete")

		return false
	}

	next.Step++
	next.Furthest = max(next.Furthest, next.Step)
	w.draft = next

	return true
}

func (w *wizardImpl) GoTo(step int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if step < bookingModel.StepService || step > w.draft.Furthest {
		return false
	}

	w.draft.Step = step

	return true
}

func (w *wizardImpl) CanAdvance() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.draft.Step == 0 {
		return failure.Validation("select a service") //nolint:wrapcheck
	}

	return w.draft.CheckStep(w.draft.Step, w.clock())
}

func (w *wizardImpl) ApplyCoupon(ctx context.Context, code string) (res catalogModel.Coupon, err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyCoupon")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = w.catalog.ValidateCoupon(ctx, code)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.draft.Step == 0 {
		return res, failure.Validation("select a service") //nolint:wrapcheck
	}

	coupon := res
	w.draft.Coupon = &coupon

	return res, nil
}

func (w *wizardImpl) Quote() (pricing.Breakdown, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.draft.Service == nil {
		return pricing.Breakdown{}, false
	}

	return w.pricing.Calculate(w.draft.Service.Price, w.draft.Service.PlatformFee), true
}

func (w *wizardImpl) Draft() bookingModel.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.draft
}

func (w *wizardImpl) Submit(ctx context.Context, customerID string) (res bookingModel.Booking, err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitDraft")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	draft := w.Draft()

	res, err = w.lifecycle.Submit(ctx, draft, customerID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// A new Start during the round trip owns the draft now.
	if w.draft.Step == draft.Step && w.draft.Service == draft.Service {
		w.draft = bookingModel.Draft{}
	}

	return res, nil
}
