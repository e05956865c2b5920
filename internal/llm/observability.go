package llm

import (
	"log/slog"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events through logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"task", string(event.Task),
		"model", event.Model,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Warn("llm_call", append(attrs, "status", "err", "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Info("llm_call", append(attrs, "status", "ok")...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

// RecordingObserver keeps every event it receives.
type RecordingObserver struct {
	Events []LLMCallEvent
}

func (r *RecordingObserver) OnCallComplete(event LLMCallEvent) {
	r.Events = append(r.Events, event)
}
