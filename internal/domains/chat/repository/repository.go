package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lendahand/infras/otel"
	"lendahand/internal/domains/chat/model"
	"lendahand/shared/constant"
	gRepo "lendahand/shared/repository"
	"lendahand/shared/store"
)

type Chat interface {
	Get(ctx context.Context, id string) (model.Chat, error)
	Find(ctx context.Context, match func(model.Chat) bool) ([]model.Chat, error)
	Insert(ctx context.Context, chat model.Chat) error
	Update(ctx context.Context, chat model.Chat) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Chat]
}

func New(st store.Store, otel otel.Otel) Chat {
	return &repositoryImpl{
		Repository: gRepo.NewRepository(model.EntityName, constant.StoreKeyChats, st, otel, model.SeedChats),
	}
}
