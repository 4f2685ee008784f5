package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lendahand/infras/otel"
	"lendahand/internal/domains/job/model"
	"lendahand/shared/constant"
	gRepo "lendahand/shared/repository"
	"lendahand/shared/store"
)

type Inbox interface {
	Get(ctx context.Context, providerID string) (model.Inbox, error)
	Exist(ctx context.Context, providerID string) (bool, error)
	Insert(ctx context.Context, inbox model.Inbox) error
	Update(ctx context.Context, inbox model.Inbox) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Inbox]
}

func New(st store.Store, otel otel.Otel) Inbox {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Inbox](model.EntityName, constant.StoreKeyProviderJobs, st, otel, nil),
	}
}
