package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("store: key not found")
)

// Store is the local key-value persistence every domain loads and saves its state through.
// Values are JSON encoded.
type Store interface {
	Get(ctx context.Context, key string, value any) error
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Load reads key into a fresh T, returning fallback when the key is missing or
// holds a value that no longer decodes.
func Load[T any](ctx context.Context, s Store, key string, fallback T) (T, error) {
	var value T

	err := s.Get(ctx, key, &value)
	if err == nil {
		return value, nil
	}

	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		log.Warn().Err(err).Str("key", key).Msg("stored value is unreadable, using fallback")

		return fallback, nil
	}

	return fallback, fmt.Errorf("failed to load %s: %w", key, err)
}

// DecodeError reports a stored value that could not be decoded into the destination.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("store: decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
