package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lendahand/config"
	"lendahand/infras/otel"
	"lendahand/internal/domains/booking/model"
	"lendahand/internal/domains/booking/model/dto"
	"lendahand/internal/domains/booking/repository"
	catalogModel "lendahand/internal/domains/catalog/model"
	"lendahand/internal/domains/pricing"
	"lendahand/internal/domains/simulator"
	"lendahand/shared"
	"lendahand/shared/constant"
	gDto "lendahand/shared/dto"
	"lendahand/shared/failure"
	"lendahand/shared/timezone"
	"lendahand/shared/validator"
	"sync"

	"github.com/rs/zerolog/log"
)

// EventSink receives every committed booking change.
type EventSink interface {
	Publish(ctx context.Context, event model.Event)
}

// Coupons resolves a coupon code against the coupon table.
type Coupons interface {
	LookupCoupon(code string) (catalogModel.Coupon, bool)
}

// Lifecycle owns the booking list. It is the only writer of bookings.
type Lifecycle interface {
	Submit(ctx context.Context, draft model.Draft, customerID string) (model.Booking, error)
	Cancel(ctx context.Context, req dto.CancelRequest) (model.Booking, error)
	Reschedule(ctx context.Context, req dto.RescheduleRequest) (model.Booking, error)
	Accept(ctx context.Context, bookingID string) (model.Booking, error)
	Reject(ctx context.Context, req dto.CancelRequest) (model.Booking, error)
	MarkInProgress(ctx context.Context, bookingID string) (model.Booking, error)
	MarkCompleted(ctx context.Context, bookingID string) (model.Booking, error)
	RecordPayment(ctx context.Context, req dto.PaymentRecord) (model.Booking, error)
	AttachReview(ctx context.Context, bookingID, reviewID string) (model.Booking, error)
	Get(ctx context.Context, id string) (model.Booking, error)
	ListForCustomer(ctx context.Context, customerID string, filter dto.ListFilter) ([]model.Booking, error)
	ListForProvider(ctx context.Context, providerID string, filter dto.ListFilter) ([]model.Booking, error)
	Stats(ctx context.Context) (dto.Stats, error)
}

type serviceImpl struct {
	mu        sync.Mutex
	repo      repository.Booking
	simulator simulator.Simulator
	pricing   pricing.Calculator
	sink      EventSink
	coupons   Coupons
	cfg       *config.Config
	otel      otel.Otel
	clock     timezone.Clock
}

func New(
	repo repository.Booking,
	sim simulator.Simulator,
	calc pricing.Calculator,
	sink EventSink,
	coupons Coupons,
	cfg *config.Config,
	otel otel.Otel,
	clock timezone.Clock,
) Lifecycle {
	return &serviceImpl{
		repo:      repo,
		simulator: sim,
		pricing:   calc,
		sink:      sink,
		coupons:   coupons,
		cfg:       cfg,
		otel:      otel,
		clock:     clock,
	}
}

// mutation is one status change: the action, the event it emits and any
// field changes applied alongside it.
type mutation struct {
	action model.Action
	event  model.EventType
	reason string
	apply  func(b *model.Booking)
}

func actorFrom(ctx context.Context) string {
	if user, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && user != "" {
		return user
	}

	return constant.ActorSystem
}

// Submit validates the draft, freezes its price, simulates the round trip and
// prepends the new booking. Nothing is stored when the round trip fails or ctx ends.
func (s *serviceImpl) Submit(ctx context.Context, draft model.Draft, customerID string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if customerID == "" {
		return res, failure.Validation("customer is required") // nolint:wrapcheck
	}

	now := s.clock()

	if err = draft.CheckComplete(now); err != nil {
		return res, err // nolint:wrapcheck
	}

	if draft.Coupon != nil {
		coupon, ok := s.coupons.LookupCoupon(draft.Coupon.Code)
		if !ok {
			return res, failure.Validation("coupon " + draft.Coupon.Code + " is not valid") // nolint:wrapcheck
		}

		draft.Coupon = &coupon
	}

	price := s.pricing.Calculate(draft.Service.Price, draft.Service.PlatformFee)
	booking := model.NewBooking(shared.NewID("b"), draft, customerID, price, now)

	scope.SetAttribute("booking_id", booking.ID)

	if err = s.simulator.Simulate(ctx, "booking.submit", simulator.FromConfig(s.cfg.Simulator.BookingSubmit, nil)); err != nil {
		log.Warn().Err(err).Str("customer_id", customerID).Msg("booking submission failed")

		return res, err // nolint:wrapcheck
	}

	if err = s.insert(ctx, booking); err != nil {
		return res, err
	}

	log.Info().
		Str("booking_id", booking.ID).
		Str("customer_id", customerID).
		Str("service_id", booking.Service.ID).
		Float64("total", booking.Price.Total).
		Msg("booking requested")

	s.publish(ctx, model.Event{
		Type:    model.EventCreated,
		Booking: booking,
		To:      model.StatusRequested,
		Actor:   customerID,
		At:      now,
	})

	return booking.Clone(), nil
}

func (s *serviceImpl) insert(ctx context.Context, booking model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	if err := s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelRequest) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	return s.transition(ctx, req.BookingID, mutation{
		action: model.ActionCancel,
		event:  model.EventStatusChanged,
		reason: req.Reason,
		apply: func(b *model.Booking) {
			b.CancelReason = req.Reason
		},
	})
}

// Reschedule moves the booking to a new slot and sends it back for approval.
func (s *serviceImpl) Reschedule(ctx context.Context, req dto.RescheduleRequest) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reschedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	current, err := s.Get(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	if err = model.ActionReschedule.Check(current.Status); err != nil {
		return res, err // nolint:wrapcheck
	}

	day, err := timezone.ParseDate(req.Date)
	if err != nil {
		return res, failure.ValidationFromError(err) // nolint:wrapcheck
	}

	if timezone.IsBeforeDay(day, s.clock()) {
		return res, failure.Validation("date cannot be in the past") // nolint:wrapcheck
	}

	if !current.Service.IsSlotOpen(req.Time) {
		return res, failure.Validation("time slot " + req.Time + " is not available") // nolint:wrapcheck
	}

	return s.transition(ctx, req.BookingID, mutation{
		action: model.ActionReschedule,
		event:  model.EventRescheduled,
		apply: func(b *model.Booking) {
			b.Date = req.Date
			b.Time = req.Time
		},
	})
}

func (s *serviceImpl) Accept(ctx context.Context, bookingID string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Accept")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, bookingID, mutation{action: model.ActionAccept, event: model.EventStatusChanged})
}

func (s *serviceImpl) Reject(ctx context.Context, req dto.CancelRequest) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	return s.transition(ctx, req.BookingID, mutation{
		action: model.ActionReject,
		event:  model.EventStatusChanged,
		reason: req.Reason,
		apply: func(b *model.Booking) {
			b.CancelReason = req.Reason
		},
	})
}

func (s *serviceImpl) MarkInProgress(ctx context.Context, bookingID string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkInProgress")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, bookingID, mutation{action: model.ActionStart, event: model.EventStatusChanged})
}

func (s *serviceImpl) MarkCompleted(ctx context.Context, bookingID string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkCompleted")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, bookingID, mutation{action: model.ActionComplete, event: model.EventStatusChanged})
}

// transition checks the action against the stored status, simulates the round
// trip without holding the lock, then re-reads and re-checks before committing.
func (s *serviceImpl) transition(ctx context.Context, id string, m mutation) (model.Booking, error) {
	seen, err := s.Get(ctx, id)
	if err != nil {
		return seen, err
	}

	if err = m.action.Check(seen.Status); err != nil {
		log.Warn().Str("booking_id", id).Str("from", string(seen.Status)).Str("action", m.action.Name).Msg("transition refused")

		return seen, err //nolint:wrapcheck
	}

	if err = s.simulator.Simulate(ctx, "booking."+m.action.Name, simulator.FromConfig(s.cfg.Simulator.StatusUpdate, nil)); err != nil {
		return seen, err //nolint:wrapcheck
	}

	updated, from, err := s.commit(ctx, seen, m)
	if err != nil {
		return seen, err
	}

	log.Info().
		Str("booking_id", id).
		Str("from", string(from)).
		Str("to", string(updated.Status)).
		Str("action", m.action.Name).
		Msg("booking status changed")

	s.publish(ctx, model.Event{
		Type:    m.event,
		Booking: updated,
		From:    from,
		To:      updated.Status,
		Reason:  m.reason,
		Actor:   actorFrom(ctx),
		At:      updated.ModifiedAt,
	})

	return updated.Clone(), nil
}

func (s *serviceImpl) commit(ctx context.Context, seen model.Booking, m mutation) (model.Booking, model.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return seen, "", err //nolint:wrapcheck
	}

	latest, err := s.repo.Get(ctx, seen.ID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", seen.ID).Msg("failed to reload booking")

		return seen, "", fmt.Errorf("failed to reload booking: %w", err)
	}

	if latest.Version != seen.Version {
		log.Warn().
			Str("booking_id", seen.ID).
			Int("seen", seen.Version).
			Int("latest", latest.Version).
			Msg("booking changed during round trip, checking again")

		if err = m.action.Check(latest.Status); err != nil {
			return latest, "", err //nolint:wrapcheck
		}
	}

	from := latest.Status
	updated := latest.Clone()
	now := s.clock()

	if m.apply != nil {
		m.apply(&updated)
	}

	updated.Transition(m.action.Target, m.action.Marker, now)
	updated.Version++
	updated.Touch(now, actorFrom(ctx))

	if err = s.repo.Update(ctx, updated); err != nil {
		log.Error().Err(err).Str("booking_id", seen.ID).Msg("failed to update booking")

		return seen, "", fmt.Errorf("failed to update booking: %w", err)
	}

	return updated, from, nil
}

// RecordPayment marks the booking paid. Cancelled and already-paid bookings are refused.
func (s *serviceImpl) RecordPayment(ctx context.Context, req dto.PaymentRecord) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	res, err = s.update(ctx, req.BookingID, func(b *model.Booking) error {
		if b.IsPaid() {
			return failure.Conflict("booking is already paid") // nolint:wrapcheck
		}

		if b.Status == model.StatusCancelled {
			return failure.Conflict("cannot pay for a cancelled booking") // nolint:wrapcheck
		}

		now := s.clock()
		b.PaymentMethod = req.Method
		b.PaymentStatus = model.PaymentStatusPaid
		b.TransactionID = shared.Ptr(req.TransactionID)
		b.PaidAt = &now

		return nil
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, model.Event{
		Type:    model.EventPaid,
		Booking: res,
		From:    res.Status,
		To:      res.Status,
		Actor:   res.CustomerID,
		At:      res.ModifiedAt,
	})

	return res.Clone(), nil
}

// AttachReview links a review to a completed booking, once.
func (s *serviceImpl) AttachReview(ctx context.Context, bookingID, reviewID string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AttachReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if reviewID == "" {
		return res, failure.Validation("review is required") // nolint:wrapcheck
	}

	res, err = s.update(ctx, bookingID, func(b *model.Booking) error {
		if b.Status != model.StatusCompleted {
			return failure.Validation("only completed bookings can be reviewed") // nolint:wrapcheck
		}

		if b.ReviewID != nil {
			return failure.Conflict("booking has already been reviewed") // nolint:wrapcheck
		}

		b.ReviewID = shared.Ptr(reviewID)

		return nil
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, model.Event{
		Type:    model.EventReviewed,
		Booking: res,
		From:    res.Status,
		To:      res.Status,
		Actor:   res.CustomerID,
		At:      res.ModifiedAt,
	})

	return res.Clone(), nil
}

// update applies a change that leaves the status alone.
func (s *serviceImpl) update(ctx context.Context, id string, change func(b *model.Booking) error) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return current, err // nolint:wrapcheck
		}

		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return current, fmt.Errorf("failed to get booking: %w", err)
	}

	updated := current.Clone()
	if err = change(&updated); err != nil {
		return current, err
	}

	updated.Version++
	updated.Touch(s.clock(), actorFrom(ctx))

	if err = s.repo.Update(ctx, updated); err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking")

		return current, fmt.Errorf("failed to update booking: %w", err)
	}

	return updated, nil
}

func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	if s.sink == nil {
		return
	}

	s.sink.Publish(context.WithoutCancel(ctx), event)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err = s.repo.Get(ctx, id)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return res, err // nolint:wrapcheck
		}

		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, filter dto.ListFilter, match func(model.Booking) bool) ([]model.Booking, error) {
	if err := validator.ValidateStruct(&filter); err != nil {
		return nil, err // nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.repo.Find(ctx, func(b model.Booking) bool {
		return match(b) && filter.Match(b)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return gDto.Paginate(bookings, filter.QueryParams), nil
}

func (s *serviceImpl) ListForCustomer(ctx context.Context, customerID string, filter dto.ListFilter) (res []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForCustomer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, filter, func(b model.Booking) bool {
		return b.CustomerID == customerID
	})
}

func (s *serviceImpl) ListForProvider(ctx context.Context, providerID string, filter dto.ListFilter) (res []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForProvider")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, filter, func(b model.Booking) bool {
		return b.ProviderID == providerID
	})
}

// Stats summarises every booking for the admin dashboard. Revenue counts completed bookings only.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.Stats, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.Total = len(bookings)
	res.ByStatus = map[model.Status]int{}
	res.ByCategory = map[string]int{}

	for _, b := range bookings {
		res.ByStatus[b.Status]++
		res.ByCategory[b.Service.Category]++

		if b.IsPaid() {
			res.Paid++
		}

		if b.Status == model.StatusCompleted {
			res.Revenue += b.Price.Total
		}
	}

	res.Revenue = shared.Round2(res.Revenue)

	return res, nil
}
