package intelligence

import (
	"context"

	"github.com/alexanderramin/neuralplan/internal/llm"
)

// fakeLLMClient returns a canned response and remembers the last request.
type fakeLLMClient struct {
	response string
	err      error
	last     llm.GenerateRequest
	calls    int
}

func (f *fakeLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.response, Model: "llama3.2"}, nil
}

func (f *fakeLLMClient) Available(_ context.Context) bool { return f.err == nil }
