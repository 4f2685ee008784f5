package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lendahand/infras/otel"
	"lendahand/internal/domains/notification/model"
	"lendahand/shared/constant"
	gRepo "lendahand/shared/repository"
	"lendahand/shared/store"
)

type Notification interface {
	GetAll(ctx context.Context) ([]model.Notification, error)
	SaveAll(ctx context.Context, items []model.Notification) error
	Get(ctx context.Context, id string) (model.Notification, error)
	Find(ctx context.Context, match func(model.Notification) bool) ([]model.Notification, error)
	Count(ctx context.Context, match func(model.Notification) bool) (int, error)
	Insert(ctx context.Context, notification model.Notification) error
	Update(ctx context.Context, notification model.Notification) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Notification]
}

func New(st store.Store, otel otel.Otel) Notification {
	return &repositoryImpl{
		Repository: gRepo.NewRepository(model.EntityName, constant.StoreKeyNotifications, st, otel, model.SeedNotifications),
	}
}
