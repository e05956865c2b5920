package intelligence

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_Reply(t *testing.T) {
	client := &fakeLLMClient{response: "  Try the 5-minute rule.\n"}
	svc := NewChatService(client)
	profile := &domain.Profile{PrimaryType: "Deep Diver", Context: domain.ContextAcademic}

	reply, err := svc.Chat(context.Background(), "  I can't start my essay ", profile)

	require.NoError(t, err)
	assert.Equal(t, "Try the 5-minute rule.", reply)
	assert.Equal(t, llm.TaskChat, client.last.Task)
	assert.Equal(t, "I can't start my essay", client.last.UserPrompt)
	assert.Contains(t, client.last.SystemPrompt, "Dr. Neural")
	assert.Contains(t, client.last.SystemPrompt, "Deep Diver")
	assert.False(t, client.last.JSON)
}

func TestChatService_UnknownProfile(t *testing.T) {
	client := &fakeLLMClient{response: "ok"}

	_, err := NewChatService(client).Chat(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Contains(t, client.last.SystemPrompt, "Unknown/Standard")
}

func TestChatService_EmptyMessage(t *testing.T) {
	client := &fakeLLMClient{response: "ok"}

	_, err := NewChatService(client).Chat(context.Background(), " \n\t", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, client.calls)
}

func TestChatService_Unavailable(t *testing.T) {
	_, err := NewChatService(&fakeLLMClient{err: llm.ErrOllamaUnavailable}).Chat(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, ErrChatUnavailable)
	assert.ErrorIs(t, err, llm.ErrOllamaUnavailable)
}

func TestChatService_NextTurnCarriesEarlierTurns(t *testing.T) {
	client := &fakeLLMClient{response: "Break it into three steps."}
	svc := NewChatService(client)
	conv := svc.StartChat(&domain.Profile{PrimaryType: "Deep Diver"})

	_, err := svc.NextTurn(context.Background(), conv, "My thesis feels huge")
	require.NoError(t, err)
	assert.Equal(t, "My thesis feels huge", client.last.UserPrompt)

	client.response = "Step one is the outline."
	reply, err := svc.NextTurn(context.Background(), conv, "What is step one?")
	require.NoError(t, err)
	assert.Equal(t, "Step one is the outline.", reply)

	prompt := client.last.UserPrompt
	assert.Contains(t, prompt, "User: My thesis feels huge")
	assert.Contains(t, prompt, "Dr. Neural: Break it into three steps.")
	assert.True(t, strings.HasSuffix(prompt, "User: What is step one?"))
	assert.Contains(t, client.last.SystemPrompt, "Deep Diver")
	assert.Len(t, conv.Turns, 4)
}

func TestChatService_FailedTurnIsNotRecorded(t *testing.T) {
	client := &fakeLLMClient{response: "ok"}
	svc := NewChatService(client)
	conv := svc.StartChat(nil)

	_, err := svc.NextTurn(context.Background(), conv, "first")
	require.NoError(t, err)

	client.err = llm.ErrTimeout
	_, err = svc.NextTurn(context.Background(), conv, "second")
	assert.ErrorIs(t, err, ErrChatUnavailable)
	assert.Len(t, conv.Turns, 2)

	_, err = svc.NextTurn(context.Background(), conv, "  ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, conv.Turns, 2)
}

func TestChatService_ConversationKeepsRecentTurns(t *testing.T) {
	client := &fakeLLMClient{response: "ok"}
	svc := NewChatService(client)
	conv := svc.StartChat(nil)

	for i := range MaxChatTurns {
		_, err := svc.NextTurn(context.Background(), conv, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}
	require.Len(t, conv.Turns, MaxChatTurns)
	assert.Equal(t, ChatTurn{Role: "User", Content: fmt.Sprintf("message %d", MaxChatTurns/2)}, conv.Turns[0])
}

func TestChatService_StartChatCopiesProfile(t *testing.T) {
	profile := &domain.Profile{PrimaryType: "Deep Diver"}
	conv := NewChatService(&fakeLLMClient{}).StartChat(profile)
	profile.PrimaryType = "changed"
	require.NotNil(t, conv.Profile)
	assert.Equal(t, "Deep Diver", conv.Profile.PrimaryType)
}
