package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
	// JSON asks the model to constrain its output to a JSON document.
	JSON bool
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model server is reachable.
	Available(ctx context.Context) bool
}

// ollamaClient implements LLMClient using the Ollama HTTP API.
type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates an LLMClient that talks to an Ollama instance at
// cfg.Endpoint.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	body := ollamaRequest{
		Model:  c.cfg.Model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temp,
			NumPredict:  maxTok,
		},
	}
	if req.JSON {
		body.Format = "json"
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Model:     c.cfg.Model,
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      resp.Response,
				Model:     resp.Model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	finalErr := classify(ctx, lastErr)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(finalErr),
	})
	return nil, finalErr
}

// classify maps the last attempt's failure onto a package sentinel.
func classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(err):
		return ErrOllamaUnavailable
	case errors.Is(err, ErrInvalidOutput):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func (c *ollamaClient) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &statusError{code: httpResp.StatusCode, body: strings.TrimSpace(string(respBody))}
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrInvalidOutput, err)
	}
	if strings.TrimSpace(resp.Response) == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidOutput)
	}

	return &resp, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// statusError is a non-200 reply from the server.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ollama returned status %d: %s", e.code, e.body)
}

// retryable reports whether another attempt could succeed. Client errors
// (4xx, e.g. unknown model) are final.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	return true
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	return false
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrOllamaUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
