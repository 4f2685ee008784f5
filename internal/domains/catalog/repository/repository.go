package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lendahand/infras/otel"
	"lendahand/internal/domains/catalog/model"
	"lendahand/shared/constant"
	gRepo "lendahand/shared/repository"
	"lendahand/shared/store"
)

type Service interface {
	GetAll(ctx context.Context) ([]model.Service, error)
	Get(ctx context.Context, id string) (model.Service, error)
	Update(ctx context.Context, service model.Service) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Service]
}

func New(st store.Store, otel otel.Otel) Service {
	return &repositoryImpl{
		Repository: gRepo.NewRepository(model.EntityName, constant.StoreKeyCatalogServices, st, otel, model.SeedServices),
	}
}
