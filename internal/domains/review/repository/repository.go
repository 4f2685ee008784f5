package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lendahand/infras/otel"
	"lendahand/internal/domains/review/model"
	"lendahand/shared/constant"
	gRepo "lendahand/shared/repository"
	"lendahand/shared/store"
)

type Review interface {
	Find(ctx context.Context, match func(model.Review) bool) ([]model.Review, error)
	Insert(ctx context.Context, review model.Review) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
}

func New(st store.Store, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository(model.EntityName, constant.StoreKeyReviews, st, otel, model.SeedReviews),
	}
}
