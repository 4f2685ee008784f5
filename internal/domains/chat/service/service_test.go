package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lendahand/config"
	otelMocks "lendahand/infras/otel/mocks"
	chatMocks "lendahand/internal/domains/chat/mocks"
	"lendahand/internal/domains/chat/model"
	"lendahand/internal/domains/chat/model/dto"
	"lendahand/internal/domains/chat/repository"
	"lendahand/internal/domains/chat/service"
	"lendahand/internal/domains/simulator"
	"lendahand/shared/failure"
	"lendahand/shared/store"
	"lendahand/shared/timezone"
)

var pinned = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

const pixel = "data:image/png;base64,iVBORw0KGgo="

func newMessenger(t *testing.T, strategy simulator.Strategy) service.Messenger {
	t.Helper()

	return newMessengerWithConfig(t, config.Default(), strategy)
}

func newMessengerWithConfig(t *testing.T, cfg *config.Config, strategy simulator.Strategy) service.Messenger {
	t.Helper()

	mockOtel := otelMocks.NewOtel()
	messenger := service.New(
		repository.New(store.NewMemoryStore("test_"), mockOtel),
		simulator.New(strategy, mockOtel),
		cfg,
		mockOtel,
		timezone.FixedClock(pinned),
	)
	t.Cleanup(messenger.Close)

	return messenger
}

func TestMessenger_SendMessageReply(t *testing.T) {
	messenger := newMessenger(t, simulator.Fixed{Wait: 100 * time.Millisecond, Index: 1})
	ctx := context.Background()

	sent, err := messenger.SendMessage(ctx, dto.SendRequest{ChatID: "c_seed_1", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, model.SenderMe, sent.Sender)
	assert.True(t, messenger.Typing("c_seed_1"))

	chat, err := messenger.Get(ctx, "c_seed_1")
	require.NoError(t, err)
	require.Len(t, chat.Messages, 3)
	assert.Equal(t, "hello", chat.Messages[2].Text)
	assert.Equal(t, "hello", chat.LastMessage)

	require.Eventually(t, func() bool {
		return !messenger.Typing("c_seed_1")
	}, time.Second, 5*time.Millisecond)

	chat, err = messenger.Get(ctx, "c_seed_1")
	require.NoError(t, err)
	require.Len(t, chat.Messages, 4)

	reply := chat.Messages[3]
	assert.Equal(t, model.SenderThem, reply.Sender)
	assert.Equal(t, model.Replies[1], reply.Text)
	assert.Equal(t, model.Replies[1], chat.LastMessage)
	assert.Equal(t, 2, chat.Unread)
	assert.Equal(t, chat.CountUnread(), chat.Unread)
}

func TestMessenger_CloseCancelsReplies(t *testing.T) {
	messenger := newMessenger(t, simulator.Fixed{Wait: time.Hour})
	ctx := context.Background()

	_, err := messenger.SendMessage(ctx, dto.SendRequest{ChatID: "c_seed_1", Text: "are you coming?"})
	require.NoError(t, err)
	require.True(t, messenger.Typing("c_seed_1"))

	closed := make(chan struct{})

	go func() {
		messenger.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not cancel the pending reply")
	}

	assert.False(t, messenger.Typing("c_seed_1"))

	chat, err := messenger.Get(ctx, "c_seed_1")
	require.NoError(t, err)
	assert.Len(t, chat.Messages, 3)
}

func TestMessenger_SendAfterClose(t *testing.T) {
	cfg := config.Default()
	cfg.Chat.SendBurst = 0
	messenger := newMessengerWithConfig(t, cfg, simulator.Fixed{Wait: time.Hour})
	ctx := context.Background()

	replies := func() int {
		chat, err := messenger.Get(ctx, "c_seed_1")
		require.NoError(t, err)

		n := 0
		for _, m := range chat.Messages {
			if m.Sender == model.SenderThem {
				n++
			}
		}

		return n
	}
	before := replies()

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := messenger.SendMessage(ctx, dto.SendRequest{ChatID: "c_seed_1", Text: "anyone there?"})
			if err != nil {
				assert.ErrorIs(t, err, service.ErrClosed)
			}
		}()
	}

	messenger.Close()
	wg.Wait()

	assert.False(t, messenger.Typing("c_seed_1"))

	_, err := messenger.SendMessage(ctx, dto.SendRequest{ChatID: "c_seed_1", Text: "hello?"})
	assert.ErrorIs(t, err, service.ErrClosed)
	assert.Equal(t, before, replies())
}

func TestMessenger_SendMessageValidation(t *testing.T) {
	messenger := newMessenger(t, simulator.Fixed{})

	tests := []struct {
		name     string
		req      dto.SendRequest
		wantKind failure.Kind
	}{
		{name: "empty", req: dto.SendRequest{ChatID: "c_seed_1", Text: "   "}, wantKind: failure.KindValidation},
		{name: "no chat id", req: dto.SendRequest{Text: "hi"}, wantKind: failure.KindValidation},
		{name: "unknown chat", req: dto.SendRequest{ChatID: "c_missing", Text: "hi"}, wantKind: failure.KindNotFound},
		{
			name:     "attachment is not an image",
			req:      dto.SendRequest{ChatID: "c_seed_1", Attachment: &model.Attachment{Data: "data:text/plain;base64,aGk=", Name: "a.txt"}},
			wantKind: failure.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := messenger.SendMessage(context.Background(), tt.req)
			assert.True(t, failure.IsKind(err, tt.wantKind), "got %v", err)
			assert.False(t, messenger.Typing(tt.req.ChatID))
		})
	}
}

func TestMessenger_ImageMessage(t *testing.T) {
	messenger := newMessenger(t, simulator.Fixed{Wait: time.Hour})
	ctx := context.Background()

	sent, err := messenger.SendMessage(ctx, dto.SendRequest{ChatID: "c_seed_1", Attachment: &model.Attachment{Data: pixel, Name: "leak.png"}})
	require.NoError(t, err)
	assert.Equal(t, model.MessageImage, sent.Type)
	require.NotNil(t, sent.Attachment)
	assert.Equal(t, "leak.png", sent.Attachment.Name)

	chat, err := messenger.Get(ctx, "c_seed_1")
	require.NoError(t, err)
	assert.Equal(t, model.ImagePreview, chat.LastMessage)
}

func TestMessenger_OpenReadAndSystemMessages(t *testing.T) {
	messenger := newMessenger(t, simulator.Fixed{})
	ctx := context.Background()

	existing, err := messenger.GetOrCreate(ctx, dto.OpenRequest{CustomerID: "u1", ProviderID: "p1", ProviderName: "Sparkle Clean Co."})
	require.NoError(t, err)
	assert.Equal(t, "c_seed_1", existing.ID)

	opened, err := messenger.GetOrCreate(ctx, dto.OpenRequest{CustomerID: "u1", ProviderID: "p2", ProviderName: "FlowFix Plumbing"})
	require.NoError(t, err)
	assert.NotEqual(t, "c_seed_1", opened.ID)
	assert.Empty(t, opened.Messages)

	_, found, err := messenger.Find(ctx, "u1", "p3")
	require.NoError(t, err)
	assert.False(t, found)

	chats, err := messenger.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, opened.ID, chats[0].ID)

	unread, err := messenger.TotalUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	require.NoError(t, messenger.MarkRead(ctx, "c_seed_1"))

	unread, err = messenger.TotalUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, unread)

	system, err := messenger.SendSystemMessage(ctx, "c_seed_1", "Booking confirmed for 12 March")
	require.NoError(t, err)
	assert.True(t, system.Read)
	assert.False(t, messenger.Typing("c_seed_1"))

	chat, err := messenger.Get(ctx, "c_seed_1")
	require.NoError(t, err)
	assert.Equal(t, "Yes, everything is included.", chat.LastMessage)
	assert.Equal(t, model.SenderSystem, chat.Messages[len(chat.Messages)-1].Sender)
	assert.Zero(t, chat.Unread)

	_, err = messenger.GetOrCreate(ctx, dto.OpenRequest{CustomerID: "u1"})
	assert.True(t, failure.IsKind(err, failure.KindValidation))
}

func TestMessenger_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := chatMocks.NewMockChat(ctrl)
	mockOtel := otelMocks.NewOtel()
	messenger := service.New(repo, simulator.New(simulator.Fixed{}, mockOtel), config.Default(), mockOtel, timezone.FixedClock(pinned))
	t.Cleanup(messenger.Close)

	boom := errors.New("connection refused")
	repo.EXPECT().Get(gomock.Any(), "c1").Return(model.Chat{ID: "c1"}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(boom)

	_, err := messenger.SendMessage(context.Background(), dto.SendRequest{ChatID: "c1", Text: "hi"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, messenger.Typing("c1"))
}

func TestMessenger_SendRateLimited(t *testing.T) {
	cfg := config.Default()
	cfg.Chat.SendInterval = time.Hour
	cfg.Chat.SendBurst = 2
	messenger := newMessengerWithConfig(t, cfg, simulator.Fixed{Wait: time.Hour})

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := messenger.SendMessage(ctx, dto.SendRequest{ChatID: "c_seed_1", Text: "Are you on the way?"})
		require.NoError(t, err)
	}

	_, err := messenger.SendMessage(ctx, dto.SendRequest{ChatID: "c_seed_1", Text: "Hello?"})
	assert.ErrorIs(t, err, service.ErrSendingTooFast)

	chat, err := messenger.Get(ctx, "c_seed_1")
	require.NoError(t, err)
	assert.Len(t, chat.Messages, 4)
}
