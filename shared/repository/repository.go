package repository

import (
	"context"
	"fmt"
	"lendahand/infras/otel"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/logger"
	"lendahand/shared/store"
	"slices"
)

// Entity is anything stored in a list keyed by id.
type Entity interface {
	GetID() string
}

// Repository keeps one ordered list of T under a single store key, newest first.
// It holds no lock of its own: callers serialise read-modify-write cycles.
type Repository[T Entity] struct {
	store   store.Store
	otel    otel.Otel
	key     string
	entitas string
	seed    func() []T
}

// NewRepository binds a list repository to key. seed supplies the list used
// when the key is missing or unreadable; nil means an empty list.
func NewRepository[T Entity](entitasName, key string, st store.Store, otl otel.Otel, seed func() []T) Repository[T] {
	if seed == nil {
		seed = func() []T { return []T{} }
	}

	return Repository[T]{
		store:   st,
		otel:    otl,
		key:     key,
		entitas: entitasName,
		seed:    seed,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, name string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, name))
}

func (repo *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	items, err := store.Load(ctx, repo.store, repo.key, repo.seed())
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	return items, nil
}

func (repo *Repository[T]) SaveAll(ctx context.Context, items []T) error {
	ctx, scope := repo.scope(ctx, "SaveAll")
	defer scope.End()

	scope.SetAttribute("count", len(items))

	if err := repo.store.Set(ctx, repo.key, items); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to save data (%s): %w", repo.entitas, err)
	}

	return nil
}

// Get returns a not-found failure when no item has the id.
func (repo *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	var zero T

	items, err := repo.GetAll(ctx)
	if err != nil {
		return zero, err
	}

	index := indexOf(items, id)
	if index == -1 {
		return zero, failure.NotFound(repo.entitas + " not found") // nolint:wrapcheck
	}

	return items[index], nil
}

func (repo *Repository[T]) Exist(ctx context.Context, id string) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	items, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	return indexOf(items, id) != -1, nil
}

// Find returns the items matching match in list order.
func (repo *Repository[T]) Find(ctx context.Context, match func(T) bool) ([]T, error) {
	ctx, scope := repo.scope(ctx, "Find")
	defer scope.End()

	items, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	found := make([]T, 0, len(items))

	for _, item := range items {
		if match(item) {
			found = append(found, item)
		}
	}

	return found, nil
}

func (repo *Repository[T]) Count(ctx context.Context, match func(T) bool) (int, error) {
	found, err := repo.Find(ctx, match)
	if err != nil {
		return 0, err
	}

	return len(found), nil
}

// Insert prepends item.
func (repo *Repository[T]) Insert(ctx context.Context, item T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	items, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	if indexOf(items, item.GetID()) != -1 {
		return failure.Conflict(fmt.Sprintf("%s %s already exists", repo.entitas, item.GetID())) // nolint:wrapcheck
	}

	return repo.SaveAll(ctx, append([]T{item}, items...))
}

// Update replaces the item with the same id in place.
func (repo *Repository[T]) Update(ctx context.Context, item T) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	items, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	index := indexOf(items, item.GetID())
	if index == -1 {
		return failure.NotFound(repo.entitas + " not found") // nolint:wrapcheck
	}

	items[index] = item

	return repo.SaveAll(ctx, items)
}

func (repo *Repository[T]) Delete(ctx context.Context, id string) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	items, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	index := indexOf(items, id)
	if index == -1 {
		return failure.NotFound(repo.entitas + " not found") // nolint:wrapcheck
	}

	return repo.SaveAll(ctx, slices.Delete(items, index, index+1))
}

func indexOf[T Entity](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool {
		return item.GetID() == id
	})
}
