package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskProfile TaskType = "profile"
	TaskAnalyze TaskType = "analyze"
	TaskChat    TaskType = "chat"
)

// AllTasks lists every task type in a stable order.
var AllTasks = []TaskType{TaskProfile, TaskAnalyze, TaskChat}

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    true,
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  20000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskProfile: {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 20000},
			TaskAnalyze: {Temperature: 0.3, MaxTokens: 2048, TimeoutMs: 45000},
			TaskChat:    {Temperature: 0.7, MaxTokens: 1024, TimeoutMs: 30000},
		},
	}
}

// LoadConfig applies NEURALPLAN_LLM_* environment variables on top of base.
// Unset or malformed values leave base untouched.
func LoadConfig(base LLMConfig) LLMConfig {
	cfg := base
	cfg.Tasks = make(map[TaskType]TaskConfig, len(base.Tasks))
	for k, v := range base.Tasks {
		cfg.Tasks[k] = v
	}

	if v := os.Getenv("NEURALPLAN_LLM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("NEURALPLAN_LLM_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := os.Getenv("NEURALPLAN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("NEURALPLAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("NEURALPLAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("NEURALPLAN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	for _, task := range AllTasks {
		applyTaskTimeoutEnv(&cfg, task, "NEURALPLAN_LLM_"+strings.ToUpper(string(task))+"_TIMEOUT_MS")
	}

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
