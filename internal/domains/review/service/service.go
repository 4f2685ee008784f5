package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lendahand/config"
	"lendahand/infras/otel"
	accountService "lendahand/internal/domains/account/service"
	bookingModel "lendahand/internal/domains/booking/model"
	bookingService "lendahand/internal/domains/booking/service"
	"lendahand/internal/domains/review/model"
	"lendahand/internal/domains/review/model/dto"
	"lendahand/internal/domains/review/repository"
	"lendahand/internal/domains/simulator"
	"lendahand/shared"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/timezone"
	"lendahand/shared/validator"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const minCommentLength = 10

type Reviews interface {
	// Submit files a review for a completed booking. A booking takes one review.
	Submit(ctx context.Context, req dto.ReviewRequest) (model.Review, error)
	ListForService(ctx context.Context, serviceID string) (dto.ServiceReviews, error)
}

type serviceImpl struct {
	mu        sync.Mutex
	repo      repository.Review
	bookings  bookingService.Lifecycle
	accounts  accountService.Account
	simulator simulator.Simulator
	cfg       *config.Config
	otel      otel.Otel
	clock     timezone.Clock
}

func New(
	repo repository.Review,
	bookings bookingService.Lifecycle,
	accounts accountService.Account,
	sim simulator.Simulator,
	cfg *config.Config,
	otel otel.Otel,
	clock timezone.Clock,
) Reviews {
	return &serviceImpl{
		repo:      repo,
		bookings:  bookings,
		accounts:  accounts,
		simulator: sim,
		cfg:       cfg,
		otel:      otel,
		clock:     clock,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.ReviewRequest) (res model.Review, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	comment := strings.TrimSpace(req.Comment)
	if len([]rune(comment)) < minCommentLength {
		return res, failure.Validation(fmt.Sprintf("comment must be at least %d characters", minCommentLength)) // nolint:wrapcheck
	}

	booking, err := s.reviewable(ctx, req)
	if err != nil {
		return res, err
	}

	if err = s.simulator.Simulate(ctx, "review.submit", simulator.FromConfig(s.cfg.Simulator.Review, nil)); err != nil {
		return res, err //nolint:wrapcheck
	}

	res = model.Review{
		ID:           shared.NewID("r"),
		BookingID:    booking.ID,
		ServiceID:    booking.Service.ID,
		ProviderID:   booking.ProviderID,
		CustomerID:   req.CustomerID,
		CustomerName: s.customerName(ctx, req.CustomerID),
		Rating:       req.Rating,
		Categories:   req.Categories,
		Comment:      comment,
		CreatedAt:    s.clock(),
	}

	if err = s.insert(ctx, res); err != nil {
		return res, err
	}

	if _, err = s.bookings.AttachReview(ctx, booking.ID, res.ID); err != nil {
		s.discard(ctx, res.ID)

		return res, err //nolint:wrapcheck
	}

	log.Info().Str("review_id", res.ID).Str("booking_id", booking.ID).Int("rating", res.Rating).Msg("review submitted")

	return res, nil
}

func (s *serviceImpl) reviewable(ctx context.Context, req dto.ReviewRequest) (bookingModel.Booking, error) {
	booking, err := s.bookings.Get(ctx, req.BookingID)
	if err != nil {
		return booking, err //nolint:wrapcheck
	}

	switch {
	case booking.CustomerID != req.CustomerID:
		return booking, failure.NotFound(bookingModel.EntityName + " not found") // nolint:wrapcheck
	case booking.Status != bookingModel.StatusCompleted:
		return booking, failure.Validation("only completed bookings can be reviewed") // nolint:wrapcheck
	case booking.ReviewID != nil:
		return booking, failure.Conflict("booking has already been reviewed") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) customerName(ctx context.Context, customerID string) string {
	user, err := s.accounts.Get(ctx, customerID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", customerID).Msg("reviewer not found")

		return "Customer"
	}

	return user.Name
}

func (s *serviceImpl) insert(ctx context.Context, review model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Insert(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to save review")

		return fmt.Errorf("failed to save review: %w", err)
	}

	return nil
}

// discard removes a review whose booking could not take it.
func (s *serviceImpl) discard(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("review_id", id).Msg("failed to discard orphaned review")
	}
}

func (s *serviceImpl) ListForService(ctx context.Context, serviceID string) (res dto.ServiceReviews, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListReviews")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	res.Items, err = s.repo.Find(ctx, func(r model.Review) bool {
		return r.ServiceID == serviceID
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	if len(res.Items) == 0 {
		return res, nil
	}

	total := 0
	for _, r := range res.Items {
		total += r.Rating
	}

	res.Average = shared.Round2(float64(total) / float64(len(res.Items)))

	return res, nil
}
