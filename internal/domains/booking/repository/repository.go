package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lendahand/infras/otel"
	"lendahand/internal/domains/booking/model"
	"lendahand/shared/constant"
	gRepo "lendahand/shared/repository"
	"lendahand/shared/store"
)

type Booking interface {
	GetAll(ctx context.Context) ([]model.Booking, error)
	Get(ctx context.Context, id string) (model.Booking, error)
	Find(ctx context.Context, match func(model.Booking) bool) ([]model.Booking, error)
	Insert(ctx context.Context, booking model.Booking) error
	Update(ctx context.Context, booking model.Booking) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(st store.Store, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository(model.EntityName, constant.StoreKeyBookings, st, otel, model.SeedBookings),
	}
}
