package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lendahand/config"
	"lendahand/infras/otel"
	"lendahand/internal/domains/chat/model"
	"lendahand/internal/domains/chat/model/dto"
	"lendahand/internal/domains/chat/repository"
	"lendahand/internal/domains/simulator"
	"lendahand/shared"
	"lendahand/shared/base64"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"lendahand/shared/timezone"
	"lendahand/shared/validator"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var ErrSendingTooFast = failure.Validation("You are sending messages too quickly. Please wait a moment.")

var ErrClosed = failure.Conflict("chat is closed")

// Messenger owns the chat list. Every message the customer sends is answered
// by a simulated provider reply after a short random delay.
type Messenger interface {
	GetOrCreate(ctx context.Context, req dto.OpenRequest) (model.Chat, error)
	// Find returns the chat between customerID and providerID, if there is one.
	Find(ctx context.Context, customerID, providerID string) (model.Chat, bool, error)
	List(ctx context.Context, userID string) ([]model.Chat, error)
	Get(ctx context.Context, id string) (model.Chat, error)
	SendMessage(ctx context.Context, req dto.SendRequest) (model.Message, error)
	SendSystemMessage(ctx context.Context, chatID, text string) (model.Message, error)
	MarkRead(ctx context.Context, chatID string) error
	// Typing reports whether a reply is pending on chatID.
	Typing(chatID string) bool
	TotalUnread(ctx context.Context, userID string) (int, error)
	// Close cancels pending replies, waits for them to stop and refuses later sends.
	Close()
}

type serviceImpl struct {
	mu        sync.Mutex
	repo      repository.Chat
	simulator simulator.Simulator
	cfg       *config.Config
	otel      otel.Otel
	clock     timezone.Clock

	// typingMu also guards closed and every replies.Add.
	typingMu sync.Mutex
	typing   map[string]int
	closed   bool

	limitersMu sync.Mutex
	limiters   map[string]*rate.Limiter

	replies sync.WaitGroup
	done    context.Context
	cancel  context.CancelFunc
}

func New(repo repository.Chat, sim simulator.Simulator, cfg *config.Config, otel otel.Otel, clock timezone.Clock) Messenger {
	done, cancel := context.WithCancel(context.Background())

	return &serviceImpl{
		repo:      repo,
		simulator: sim,
		cfg:       cfg,
		otel:      otel,
		clock:     clock,
		typing:    map[string]int{},
		limiters:  map[string]*rate.Limiter{},
		done:      done,
		cancel:    cancel,
	}
}

func (s *serviceImpl) GetOrCreate(ctx context.Context, req dto.OpenRequest) (res model.Chat, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOrCreateChat")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found, err := s.find(ctx, req.CustomerID, req.ProviderID)
	if err != nil {
		return res, err
	}

	if found {
		return existing, nil
	}

	res = model.Chat{
		ID:            shared.NewID("c"),
		CustomerID:    req.CustomerID,
		ProviderID:    req.ProviderID,
		ProviderName:  req.ProviderName,
		LastMessageAt: s.clock(),
		Messages:      []model.Message{},
	}

	if err = s.repo.Insert(ctx, res); err != nil {
		log.Error().Err(err).Msg("failed to create chat")

		return res, fmt.Errorf("failed to create chat: %w", err)
	}

	log.Info().Str("chat_id", res.ID).Str("customer_id", req.CustomerID).Str("provider_id", req.ProviderID).Msg("chat opened")

	return res, nil
}

func (s *serviceImpl) Find(ctx context.Context, customerID, providerID string) (res model.Chat, found bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindChat")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(ctx, customerID, providerID)
}

func (s *serviceImpl) find(ctx context.Context, customerID, providerID string) (model.Chat, bool, error) {
	chats, err := s.repo.Find(ctx, func(c model.Chat) bool {
		return c.CustomerID == customerID && c.ProviderID == providerID
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get chats")

		return model.Chat{}, false, fmt.Errorf("failed to get chats: %w", err)
	}

	if len(chats) == 0 {
		return model.Chat{}, false, nil
	}

	return chats[0], true, nil
}

func (s *serviceImpl) List(ctx context.Context, userID string) (res []model.Chat, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListChats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err = s.repo.Find(ctx, func(c model.Chat) bool {
		return c.Involves(userID)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get chats")

		return nil, fmt.Errorf("failed to get chats: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res model.Chat, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetChat")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(ctx, id)
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Chat, error) {
	chat, err := s.repo.Get(ctx, id)
	if err != nil {
		if failure.IsKind(err, failure.KindNotFound) {
			return chat, err // nolint:wrapcheck
		}

		log.Error().Err(err).Str("chat_id", id).Msg("failed to get chat")

		return chat, fmt.Errorf("failed to get chat: %w", err)
	}

	return chat, nil
}

// SendMessage appends the customer's message, marks the chat as typing and
// schedules one provider reply.
func (s *serviceImpl) SendMessage(ctx context.Context, req dto.SendRequest) (res model.Message, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err // nolint:wrapcheck
	}

	text := strings.TrimSpace(req.Text)
	if text == "" && req.Attachment == nil {
		return res, failure.Validation("message cannot be empty") // nolint:wrapcheck
	}

	res = model.Message{
		ID:     shared.NewID("m"),
		Sender: model.SenderMe,
		Text:   text,
		Type:   model.MessageText,
		SentAt: s.clock(),
	}

	if req.Attachment != nil {
		if !base64.IsImage(req.Attachment.Data) {
			return res, failure.Validation("attachment must be a base64 encoded image") // nolint:wrapcheck
		}

		attachment := *req.Attachment
		attachment.Type = model.MessageImage
		res.Attachment = &attachment
		res.Type = model.MessageImage
	}

	if s.isClosed() {
		return res, ErrClosed
	}

	if !s.allow(req.ChatID) {
		log.Warn().Str("chat_id", req.ChatID).Msg("chat send rate exceeded")

		return res, ErrSendingTooFast
	}

	if err = s.append(ctx, req.ChatID, res); err != nil {
		return res, err
	}

	s.scheduleReply(req.ChatID)

	return res, nil
}

// allow takes one send token for chatID. A non-positive burst turns limiting off.
func (s *serviceImpl) allow(chatID string) bool {
	if s.cfg.Chat.SendBurst <= 0 {
		return true
	}

	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()

	limiter, ok := s.limiters[chatID]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(s.cfg.Chat.SendInterval), s.cfg.Chat.SendBurst)
		s.limiters[chatID] = limiter
	}

	return limiter.Allow()
}

func (s *serviceImpl) SendSystemMessage(ctx context.Context, chatID, text string) (res model.Message, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendSystemMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if strings.TrimSpace(text) == "" {
		return res, failure.Validation("message cannot be empty") // nolint:wrapcheck
	}

	res = model.Message{
		ID:     shared.NewID("m"),
		Sender: model.SenderSystem,
		Text:   text,
		Type:   model.MessageSystem,
		Read:   true,
		SentAt: s.clock(),
	}

	if err = s.append(ctx, chatID, res); err != nil {
		return res, err
	}

	return res, nil
}

func (s *serviceImpl) append(ctx context.Context, chatID string, message model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, err := s.get(ctx, chatID)
	if err != nil {
		return err
	}

	chat = chat.Clone()
	chat.Append(message)

	if err = s.repo.Update(ctx, chat); err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("failed to save message")

		return fmt.Errorf("failed to save message: %w", err)
	}

	return nil
}

func (s *serviceImpl) isClosed() bool {
	s.typingMu.Lock()
	defer s.typingMu.Unlock()

	return s.closed
}

// scheduleReply starts the provider reply unless Close already ran.
func (s *serviceImpl) scheduleReply(chatID string) {
	s.typingMu.Lock()
	if s.closed {
		s.typingMu.Unlock()
		log.Debug().Str("chat_id", chatID).Msg("messenger closed, reply not scheduled")

		return
	}

	s.typing[chatID]++
	s.replies.Add(1)
	s.typingMu.Unlock()

	go func() {
		defer s.replies.Done()
		defer s.stopTyping(chatID)

		err := s.simulator.Wait(s.done, s.cfg.Simulator.ChatReplyMin, s.cfg.Simulator.ChatReplyMax)
		if err != nil {
			log.Debug().Str("chat_id", chatID).Msg("pending reply cancelled")

			return
		}

		reply := model.Message{
			ID:     shared.NewID("m"),
			Sender: model.SenderThem,
			Text:   model.Replies[s.simulator.Pick(len(model.Replies))],
			Type:   model.MessageText,
			SentAt: s.clock(),
		}

		if err = s.append(s.done, chatID, reply); err != nil {
			log.Warn().Err(err).Str("chat_id", chatID).Msg("failed to deliver simulated reply")
		}
	}()
}

func (s *serviceImpl) stopTyping(chatID string) {
	s.typingMu.Lock()
	defer s.typingMu.Unlock()

	s.typing[chatID]--
	if s.typing[chatID] <= 0 {
		delete(s.typing, chatID)
	}
}

func (s *serviceImpl) Typing(chatID string) bool {
	s.typingMu.Lock()
	defer s.typingMu.Unlock()

	return s.typing[chatID] > 0
}

func (s *serviceImpl) MarkRead(ctx context.Context, chatID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkChatRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	chat, err := s.get(ctx, chatID)
	if err != nil {
		return err
	}

	chat = chat.Clone()
	chat.MarkRead()

	if err = s.repo.Update(ctx, chat); err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("failed to update chat")

		return fmt.Errorf("failed to update chat: %w", err)
	}

	return nil
}

func (s *serviceImpl) TotalUnread(ctx context.Context, userID string) (res int, err error) {
	chats, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	for _, c := range chats {
		res += c.Unread
	}

	return res, nil
}

func (s *serviceImpl) Close() {
	s.typingMu.Lock()
	s.closed = true
	s.typingMu.Unlock()

	s.cancel()
	s.replies.Wait()
}
