package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	return cfg
}

func replyWith(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: text})
	}
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.Equal(t, 0.7, req.Options.Temperature)
		assert.Empty(t, req.Format)

		replyWith("Take one small step.")(w, r)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskChat,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, "Take one small step.", resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_JSONModeAndOverrides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "json", req.Format)
		assert.Equal(t, 0.9, req.Options.Temperature)
		assert.Equal(t, 64, req.Options.NumPredict)
		replyWith(`{"ok":true}`)(w, r)
	}))
	defer srv.Close()

	temp, maxTok := 0.9, 64
	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:        TaskProfile,
		UserPrompt:  "x",
		Temperature: &temp,
		MaxTokens:   &maxTok,
		JSON:        true,
	})
	require.NoError(t, err)
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskAnalyze: {Temperature: 0.3, MaxTokens: 512, TimeoutMs: 50},
	}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskAnalyze,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskChat: {Temperature: 0.7, MaxTokens: 512, TimeoutMs: 1000},
	}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskChat,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrOllamaUnavailable)
}

func TestOllamaClient_Generate_RetryOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		replyWith("ok")(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskChat,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOllamaClient_Generate_ClientErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 3

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskChat,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "model not found")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOllamaClient_Generate_EmptyResponseIsInvalidOutput(t *testing.T) {
	srv := httptest.NewServer(replyWith("   "))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskChat,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestOllamaClient_Available_True(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))
}

func TestOllamaClient_Available_False(t *testing.T) {
	client := NewOllamaClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	assert.False(t, client.Available(context.Background()))
}

func TestOllamaClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(replyWith("ok"))
	defer srv.Close()

	obs := &RecordingObserver{}
	client := NewOllamaClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskProfile,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	require.Len(t, obs.Events, 1)
	assert.Equal(t, TaskProfile, obs.Events[0].Task)
	assert.Equal(t, "llama3.2", obs.Events[0].Model)
	assert.True(t, obs.Events[0].Success)
}

func TestOllamaClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskChat: {Temperature: 0.7, MaxTokens: 512, TimeoutMs: 50},
	}

	obs := &RecordingObserver{}
	client := NewOllamaClient(cfg, obs)

	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskChat,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
	require.Len(t, obs.Events, 1)
	assert.False(t, obs.Events[0].Success)
	assert.Equal(t, "TIMEOUT", obs.Events[0].ErrorCode)
}
