package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lendahand/infras/otel"
	"lendahand/internal/domains/notification/model"
	"lendahand/internal/domains/notification/model/dto"
	"lendahand/internal/domains/notification/repository"
	"lendahand/shared"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/timezone"
	"lendahand/shared/validator"
	"sync"

	"github.com/rs/zerolog/log"
)

// Notifier is the only writer of the notification list.
type Notifier interface {
	Add(ctx context.Context, req dto.AddRequest) (model.Notification, error)
	List(ctx context.Context, userID string) (dto.Summary, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	ClearAll(ctx context.Context, userID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}

type serviceImpl struct {
	mu    sync.Mutex
	repo  repository.Notification
	otel  otel.Otel
	clock timezone.Clock
}

func New(repo repository.Notification, otel otel.Otel, clock timezone.Clock) Notifier {
	return &serviceImpl{
		repo:  repo,
		otel:  otel,
		clock: clock,
	}
}

// Add prepends a new unread notification.
func (s *serviceImpl) Add(ctx context.Context, req dto.AddRequest) (res model.Notification, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddNotification")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	res = model.Notification{
		ID:        shared.NewID("n"),
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Body:      req.Body,
		BookingID: req.BookingID,
		ChatID:    req.ChatID,
		CreatedAt: s.clock(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.repo.Insert(ctx, res); err != nil {
		log.Error().Err(err).Msg("failed to add notification")

		return res, fmt.Errorf("failed to add notification: %w", err)
	}

	log.Debug().Str("notification_id", res.ID).Str("user_id", res.UserID).Str("title", res.Title).Msg("notification added")

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, userID string) (res dto.Summary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListNotifications")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.Find(ctx, func(n model.Notification) bool {
		return n.VisibleTo(userID)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.Items = items

	for _, n := range items {
		if !n.Read {
			res.Unread++
		}
	}

	return res, nil
}

func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.repo.Get(ctx, id)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return err // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to get notification")

		return fmt.Errorf("failed to get notification: %w", err)
	}

	if n.Read {
		return nil
	}

	n.Read = true

	if err = s.repo.Update(ctx, n); err != nil {
		log.Error().Err(err).Msg("failed to update notification")

		return fmt.Errorf("failed to update notification: %w", err)
	}

	return nil
}

func (s *serviceImpl) MarkAllRead(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkAllRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.rewrite(ctx, func(items []model.Notification) []model.Notification {
		for i := range items {
			if items[i].VisibleTo(userID) {
				items[i].Read = true
			}
		}

		return items
	})
}

// ClearAll removes every notification userID can see, broadcasts included.
func (s *serviceImpl) ClearAll(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClearAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.rewrite(ctx, func(items []model.Notification) []model.Notification {
		kept := make([]model.Notification, 0, len(items))

		for _, n := range items {
			if !n.VisibleTo(userID) {
				kept = append(kept, n)
			}
		}

		return kept
	})
}

func (s *serviceImpl) rewrite(ctx context.Context, fn func([]model.Notification) []model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return fmt.Errorf("failed to get notifications: %w", err)
	}

	if err = s.repo.SaveAll(ctx, fn(items)); err != nil {
		log.Error().Err(err).Msg("failed to save notifications")

		return fmt.Errorf("failed to save notifications: %w", err)
	}

	return nil
}

func (s *serviceImpl) UnreadCount(ctx context.Context, userID string) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnreadCount")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err = s.repo.Count(ctx, func(n model.Notification) bool {
		return !n.Read && n.VisibleTo(userID)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return res, nil
}
