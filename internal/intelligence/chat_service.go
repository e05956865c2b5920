package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/llm"
)

var (
	// ErrEmptyMessage is returned for a blank chat message.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrChatUnavailable is returned when the model could not answer.
	ErrChatUnavailable = errors.New("coach is unavailable right now")
)

// MaxChatTurns bounds the turns replayed into each prompt; older turns are
// dropped from the front.
const MaxChatTurns = 20

// ChatTurn is one message of a coaching conversation.
type ChatTurn struct {
	Role    string // "User" or "Dr. Neural"
	Content string
}

// ChatConversation holds multi-turn coaching state. The profile is fixed
// when the conversation starts.
type ChatConversation struct {
	Profile *domain.Profile
	Turns   []ChatTurn
}

// ChatService answers coaching questions in the user's context.
type ChatService interface {
	// Chat answers a one-shot question.
	Chat(ctx context.Context, message string, profile *domain.Profile) (string, error)

	// StartChat begins a conversation for profile.
	StartChat(profile *domain.Profile) *ChatConversation

	// NextTurn answers message with the earlier turns of conv as context
	// and records both sides on success.
	NextTurn(ctx context.Context, conv *ChatConversation, message string) (string, error)
}

type chatService struct {
	client llm.LLMClient
}

// NewChatService creates a ChatService backed by an LLM client.
func NewChatService(client llm.LLMClient) ChatService {
	return &chatService{client: client}
}

func (s *chatService) Chat(ctx context.Context, message string, profile *domain.Profile) (string, error) {
	return s.NextTurn(ctx, s.StartChat(profile), message)
}

func (s *chatService) StartChat(profile *domain.Profile) *ChatConversation {
	conv := &ChatConversation{}
	if profile != nil {
		cp := profile.Clone()
		conv.Profile = &cp
	}
	return conv
}

func (s *chatService) NextTurn(ctx context.Context, conv *ChatConversation, message string) (string, error) {
	if conv == nil {
		return "", fmt.Errorf("conversation is nil")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskChat,
		SystemPrompt: chatSystemPrompt(conv.Profile),
		UserPrompt:   buildChatUserPrompt(conv.Turns, message),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrChatUnavailable, err)
	}
	reply := strings.TrimSpace(resp.Text)

	conv.Turns = append(conv.Turns,
		ChatTurn{Role: "User", Content: message},
		ChatTurn{Role: "Dr. Neural", Content: reply},
	)
	if over := len(conv.Turns) - MaxChatTurns; over > 0 {
		conv.Turns = append([]ChatTurn(nil), conv.Turns[over:]...)
	}
	return reply, nil
}

func buildChatUserPrompt(turns []ChatTurn, message string) string {
	if len(turns) == 0 {
		return message
	}
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, turn := range turns {
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	return b.String()
}

func chatSystemPrompt(profile *domain.Profile) string {
	desc := "Unknown/Standard"
	if profile != nil {
		if data, err := json.Marshal(profile); err == nil {
			desc = string(data)
		}
	}
	return fmt.Sprintf(chatSystemPromptTemplate, desc)
}
