package service

import (
	"context"
	"time"

	"github.com/alexanderramin/neuralplan/internal/intelligence"
)

type coachService struct {
	tracker  EngagementTracker
	chat     intelligence.ChatService
	observer UseCaseObserver
}

// NewCoachService wires the coaching chat. chat may be nil when the LLM is
// disabled.
func NewCoachService(tracker EngagementTracker, chat intelligence.ChatService, observers ...UseCaseObserver) CoachService {
	return &coachService{tracker: tracker, chat: chat, observer: useCaseObserverOrNoop(observers)}
}

func (s *coachService) Ask(ctx context.Context, message string) (reply string, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "chat", startedAt, err, map[string]any{"message_len": len(message)})
	}()

	if s.chat == nil {
		return "", ErrLLMDisabled
	}
	stats := s.tracker.Snapshot()
	return s.chat.Chat(ctx, message, stats.NeuralProfile)
}

func (s *coachService) Converse(ctx context.Context, conv *intelligence.ChatConversation, message string) (_ *intelligence.ChatConversation, reply string, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		turns := 0
		if conv != nil {
			turns = len(conv.Turns)
		}
		observe(ctx, s.observer, "chat_turn", startedAt, err, map[string]any{"message_len": len(message), "turns": turns})
	}()

	if s.chat == nil {
		return conv, "", ErrLLMDisabled
	}
	if conv == nil {
		conv = s.chat.StartChat(s.tracker.Snapshot().NeuralProfile)
	}
	reply, err = s.chat.NextTurn(ctx, conv, message)
	return conv, reply, err
}
