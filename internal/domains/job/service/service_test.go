package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "lendahand/infras/otel/mocks"
	bookingMocks "lendahand/internal/domains/booking/mocks"
	bookingModel "lendahand/internal/domains/booking/model"
	bookingRepository "lendahand/internal/domains/booking/repository"
	jobMocks "lendahand/internal/domains/job/mocks"
	jobModel "lendahand/internal/domains/job/model"
	"lendahand/internal/domains/job/repository"
	"lendahand/internal/domains/job/service"
	"lendahand/shared/failure"
	"lendahand/shared/store"
)

func newQueue(st store.Store) (service.Queue, bookingRepository.Booking) {
	mockOtel := otelMocks.NewOtel()
	bookings := bookingRepository.New(st, mockOtel)

	return service.New(repository.New(st, mockOtel), bookings, mockOtel), bookings
}

func TestQueue_EnqueueDequeue(t *testing.T) {
	queue, _ := newQueue(store.NewMemoryStore("test_"))
	ctx := context.Background()

	pending, err := queue.Pending(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, queue.Enqueue(ctx, "p1", "b1"))
	require.NoError(t, queue.Enqueue(ctx, "p1", "b2"))
	require.NoError(t, queue.Enqueue(ctx, "p1", "b1"))
	require.NoError(t, queue.Enqueue(ctx, "p2", "b3"))

	pending, err = queue.Pending(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, pending)

	require.NoError(t, queue.Dequeue(ctx, "p1", "b1"))
	require.NoError(t, queue.Dequeue(ctx, "p1", "b9"))
	require.NoError(t, queue.Dequeue(ctx, "p7", "b1"))

	pending, err = queue.Pending(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, pending)

	pending, err = queue.Pending(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"b3"}, pending)
}

func TestQueue_Inbox(t *testing.T) {
	queue, bookings := newQueue(store.NewMemoryStore("test_"))
	ctx := context.Background()

	requested := bookingModel.Booking{ID: "b_new", ProviderID: "p1", Status: bookingModel.StatusRequested}
	require.NoError(t, bookings.Insert(ctx, requested))

	require.NoError(t, queue.Enqueue(ctx, "p1", "b_new"))
	require.NoError(t, queue.Enqueue(ctx, "p1", "b_seed_1"))
	require.NoError(t, queue.Enqueue(ctx, "p1", "b_gone"))

	inbox, err := queue.Inbox(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "b_new", inbox[0].ID)
}

func TestQueue_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := jobMocks.NewMockInbox(ctrl)
	mockOtel := otelMocks.NewOtel()
	queue := service.New(repo, bookingRepository.New(store.NewMemoryStore("test_"), mockOtel), mockOtel)
	boom := errors.New("connection refused")

	repo.EXPECT().Exist(gomock.Any(), "p1").Return(false, boom)
	repo.EXPECT().Get(gomock.Any(), "p1").Return(jobModel.Inbox{}, boom)

	err := queue.Enqueue(context.Background(), "p1", "b1")
	assert.ErrorIs(t, err, boom)

	_, err = queue.Pending(context.Background(), "p1")
	assert.ErrorIs(t, err, boom)
}

func TestQueue_InboxBookingLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	bookings := bookingMocks.NewMockBooking(ctrl)
	mockOtel := otelMocks.NewOtel()
	queue := service.New(repository.New(store.NewMemoryStore("test_"), mockOtel), bookings, mockOtel)
	ctx := context.Background()

	require.NoError(t, queue.Enqueue(ctx, "p1", "b_gone"))
	require.NoError(t, queue.Enqueue(ctx, "p1", "b_broken"))

	gomock.InOrder(
		bookings.EXPECT().Get(gomock.Any(), "b_gone").Return(bookingModel.Booking{}, failure.NotFound("booking not found")),
		bookings.EXPECT().Get(gomock.Any(), "b_broken").Return(bookingModel.Booking{}, errors.New("connection refused")),
	)

	_, err := queue.Inbox(ctx, "p1")
	assert.ErrorContains(t, err, "connection refused")
}
