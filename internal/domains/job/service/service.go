package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lendahand/infras/otel"
	bookingModel "lendahand/internal/domains/booking/model"
	bookingRepository "lendahand/internal/domains/booking/repository"
	"lendahand/internal/domains/job/model"
	"lendahand/internal/domains/job/repository"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"sync"

	"github.com/rs/zerolog/log"
)

// Queue tracks which bookings each provider still has to accept or reject.
type Queue interface {
	Enqueue(ctx context.Context, providerID, bookingID string) error
	Dequeue(ctx context.Context, providerID, bookingID string) error
	Pending(ctx context.Context, providerID string) ([]string, error)
	// Inbox resolves the pending ids to bookings, skipping any no longer Requested.
	Inbox(ctx context.Context, providerID string) ([]bookingModel.Booking, error)
}

type serviceImpl struct {
	mu       sync.Mutex
	repo     repository.Inbox
	bookings bookingRepository.Booking
	otel     otel.Otel
}

func New(repo repository.Inbox, bookings bookingRepository.Booking, otel otel.Otel) Queue {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		otel:     otel,
	}
}

func (s *serviceImpl) Enqueue(ctx context.Context, providerID, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Enqueue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	exist, err := s.repo.Exist(ctx, providerID)
	if err != nil {
		log.Error().Err(err).Str("provider_id", providerID).Msg("failed to check job inbox")

		return fmt.Errorf("failed to check job inbox: %w", err)
	}

	if !exist {
		err = s.repo.Insert(ctx, model.Inbox{ProviderID: providerID, BookingIDs: []string{bookingID}})
		if err != nil {
			log.Error().Err(err).Str("provider_id", providerID).Msg("failed to create job inbox")

			return fmt.Errorf("failed to create job inbox: %w", err)
		}

		return nil
	}

	return s.change(ctx, providerID, func(inbox *model.Inbox) bool {
		return inbox.Push(bookingID)
	})
}

func (s *serviceImpl) Dequeue(ctx context.Context, providerID, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dequeue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.change(ctx, providerID, func(inbox *model.Inbox) bool {
		return inbox.Pull(bookingID)
	})
	if failure.IsKind(err, failure.KindNotFound) {
		return nil
	}

	return err
}

func (s *serviceImpl) change(ctx context.Context, providerID string, fn func(inbox *model.Inbox) bool) error {
	inbox, err := s.repo.Get(ctx, providerID)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return err // nolint:wrapcheck
		}

		log.Error().Err(err).Str("provider_id", providerID).Msg("failed to get job inbox")

		return fmt.Errorf("failed to get job inbox: %w", err)
	}

	if !fn(&inbox) {
		return nil
	}

	if err = s.repo.Update(ctx, inbox); err != nil {
		log.Error().Err(err).Str("provider_id", providerID).Msg("failed to update job inbox")

		return fmt.Errorf("failed to update job inbox: %w", err)
	}

	return nil
}

func (s *serviceImpl) Pending(ctx context.Context, providerID string) (res []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pending")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	inbox, err := s.repo.Get(ctx, providerID)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return []string{}, nil
		}

		log.Error().Err(err).Str("provider_id", providerID).Msg("failed to get job inbox")

		return nil, fmt.Errorf("failed to get job inbox: %w", err)
	}

	return inbox.BookingIDs, nil
}

func (s *serviceImpl) Inbox(ctx context.Context, providerID string) (res []bookingModel.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Inbox")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids, err := s.Pending(ctx, providerID)
	if err != nil {
		return nil, err
	}

	res = make([]bookingModel.Booking, 0, len(ids))

	for _, id := range ids {
		booking, err := s.bookings.Get(ctx, id)
		if err != nil {
			if failure.IsKind(err, failure.KindNotFound) {
				log.Warn().Str("booking_id", id).Str("provider_id", providerID).Msg("queued booking no longer exists")

				continue
			}

			return nil, fmt.Errorf("failed to get queued booking: %w", err)
		}

		if booking.Status != bookingModel.StatusRequested {
			continue
		}

		res = append(res, booking)
	}

	return res, nil
}
