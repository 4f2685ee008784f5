package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lendahand/config"
	otelMocks "lendahand/infras/otel/mocks"
	"lendahand/shared/store"
	"lendahand/shared/store/mocks"
)

type record struct {
	ID    string   `json:"id"`
	Tags  []string `json:"tags"`
	Price float64  `json:"price"`
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore("lendahand_")

	in := []record{{ID: "b1", Tags: []string{"a"}, Price: 104.5}}
	require.NoError(t, s.Set(ctx, "bookings", in))

	in[0].Tags[0] = "mutated"

	var out []record
	require.NoError(t, s.Get(ctx, "bookings", &out))
	assert.Equal(t, "a", out[0].Tags[0], "stored value must not alias the caller's slice")
	assert.InDelta(t, 104.5, out[0].Price, 1e-9)

	require.NoError(t, s.Remove(ctx, "bookings"))
	assert.ErrorIs(t, s.Get(ctx, "bookings", &out), store.ErrNotFound)
}

func TestMemoryStore_ClearOnlyOwnPrefix(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore("lendahand_")

	require.NoError(t, s.Set(ctx, "chats", "[]"))
	require.NoError(t, s.Clear(ctx))

	var raw string
	assert.ErrorIs(t, s.Get(ctx, "chats", &raw), store.ErrNotFound)
	assert.NoError(t, s.Close())
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	fallback := []record{{ID: "seed"}}

	t.Run("missing key returns fallback", func(t *testing.T) {
		s := store.NewMemoryStore("")

		got, err := store.Load(ctx, s, "bookings", fallback)
		require.NoError(t, err)
		assert.Equal(t, fallback, got)
	})

	t.Run("stored value wins", func(t *testing.T) {
		s := store.NewMemoryStore("")
		require.NoError(t, s.Set(ctx, "bookings", []record{{ID: "b1"}}))

		got, err := store.Load(ctx, s, "bookings", fallback)
		require.NoError(t, err)
		assert.Equal(t, "b1", got[0].ID)
	})

	t.Run("corrupt value returns fallback", func(t *testing.T) {
		s := store.NewMemoryStore("")
		require.NoError(t, s.Set(ctx, "bookings", "{not json"))

		got, err := store.Load(ctx, s, "bookings", fallback)
		require.NoError(t, err)
		assert.Equal(t, fallback, got)
	})

	t.Run("backend error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := mocks.NewMockStore(ctrl)

		mockStore.EXPECT().
			Get(gomock.Any(), "bookings", gomock.Any()).
			Return(errors.New("connection refused"))

		_, err := store.Load(ctx, mockStore, "bookings", fallback)
		assert.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	t.Run("memory driver", func(t *testing.T) {
		cfg := config.Default()

		s, err := store.New(cfg, otelMocks.NewOtel())
		require.NoError(t, err)
		require.NoError(t, s.Set(context.Background(), "users", []record{{ID: "u1"}}))
		assert.NoError(t, s.Close())
	})

	t.Run("unreachable redis", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = "redis"
		cfg.Store.Redis.Host = "127.0.0.1"
		cfg.Store.Redis.Port = "1"

		_, err := store.New(cfg, otelMocks.NewOtel())
		assert.ErrorContains(t, err, "redis")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = "sqlite"

		_, err := store.New(cfg, otelMocks.NewOtel())
		assert.ErrorContains(t, err, "sqlite")
	})
}
