package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lendahand/infras/otel"
	"lendahand/internal/domains/account/model"
	"lendahand/shared/constant"
	gRepo "lendahand/shared/repository"
	"lendahand/shared/store"
)

type User interface {
	Get(ctx context.Context, id string) (model.User, error)
	Find(ctx context.Context, match func(model.User) bool) ([]model.User, error)
	Insert(ctx context.Context, user model.User) error
	Update(ctx context.Context, user model.User) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(st store.Store, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository(model.EntityName, constant.StoreKeyUsers, st, otel, model.SeedUsers),
	}
}
