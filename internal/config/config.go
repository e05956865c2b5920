// Package config resolves runtime settings: built-in defaults, then the
// YAML config file, then NEURALPLAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/neuralplan/internal/llm"
	"gopkg.in/yaml.v3"
)

// Config is the fully resolved configuration.
type Config struct {
	DBPath           string
	LogUseCases      bool
	Ephemeral        bool   // keep engagement stats in memory only
	Timezone         string // IANA name; empty means the system zone
	HeatmapDays      int
	PlanHistoryLimit int
	LLM              llm.LLMConfig
}

// fileConfig is the on-disk shape. Pointer fields distinguish "unset" from
// zero so a partial file only overrides what it names.
type fileConfig struct {
	DBPath           *string `yaml:"db_path"`
	LogUseCases      *bool   `yaml:"log_use_cases"`
	Ephemeral        *bool   `yaml:"ephemeral"`
	Timezone         *string `yaml:"timezone"`
	HeatmapDays      *int    `yaml:"heatmap_days"`
	PlanHistoryLimit *int    `yaml:"plan_history_limit"`
	LLM              *struct {
		Enabled    *bool                          `yaml:"enabled"`
		LogCalls   *bool                          `yaml:"log_calls"`
		Endpoint   *string                        `yaml:"endpoint"`
		Model      *string                        `yaml:"model"`
		TimeoutMs  *int                           `yaml:"timeout_ms"`
		MaxRetries *int                           `yaml:"max_retries"`
		Tasks      map[llm.TaskType]taskOverrides `yaml:"tasks"`
	} `yaml:"llm"`
}

type taskOverrides struct {
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"max_tokens"`
	TimeoutMs   *int     `yaml:"timeout_ms"`
}

// DataDir returns ~/.neuralplan.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".neuralplan"), nil
}

// Defaults returns the built-in configuration rooted at dataDir.
func Defaults(dataDir string) Config {
	return Config{
		DBPath:           filepath.Join(dataDir, "neuralplan.db"),
		HeatmapDays:      14,
		PlanHistoryLimit: 50,
		LLM:              llm.DefaultConfig(),
	}
}

// Load resolves the configuration from $NEURALPLAN_CONFIG (or
// ~/.neuralplan/config.yaml) and the environment. A missing config file is
// not an error.
func Load() (Config, error) {
	dataDir, err := DataDir()
	if err != nil {
		return Config{}, err
	}
	path := os.Getenv("NEURALPLAN_CONFIG")
	if path == "" {
		path = filepath.Join(dataDir, "config.yaml")
	}

	cfg, err := LoadFile(path, Defaults(dataDir))
	if err != nil {
		return Config{}, err
	}
	return ApplyEnv(cfg), nil
}

// LoadFile overlays the YAML file at path onto base.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg := fc.overlay(base)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (fc fileConfig) overlay(base Config) Config {
	cfg := base
	cfg.LLM.Tasks = make(map[llm.TaskType]llm.TaskConfig, len(base.LLM.Tasks))
	for k, v := range base.LLM.Tasks {
		cfg.LLM.Tasks[k] = v
	}

	set(&cfg.DBPath, fc.DBPath)
	set(&cfg.LogUseCases, fc.LogUseCases)
	set(&cfg.Ephemeral, fc.Ephemeral)
	set(&cfg.Timezone, fc.Timezone)
	set(&cfg.HeatmapDays, fc.HeatmapDays)
	set(&cfg.PlanHistoryLimit, fc.PlanHistoryLimit)

	if l := fc.LLM; l != nil {
		set(&cfg.LLM.Enabled, l.Enabled)
		set(&cfg.LLM.LogCalls, l.LogCalls)
		set(&cfg.LLM.Endpoint, l.Endpoint)
		set(&cfg.LLM.Model, l.Model)
		set(&cfg.LLM.TimeoutMs, l.TimeoutMs)
		set(&cfg.LLM.MaxRetries, l.MaxRetries)
		for task, o := range l.Tasks {
			tc := cfg.LLM.Tasks[task]
			set(&tc.Temperature, o.Temperature)
			set(&tc.MaxTokens, o.MaxTokens)
			set(&tc.TimeoutMs, o.TimeoutMs)
			cfg.LLM.Tasks[task] = tc
		}
	}
	return cfg
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ApplyEnv overlays NEURALPLAN_* environment variables.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("NEURALPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("NEURALPLAN_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := os.Getenv("NEURALPLAN_EPHEMERAL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Ephemeral = b
		}
	}
	if v := os.Getenv("NEURALPLAN_TZ"); v != "" {
		cfg.Timezone = v
	}
	cfg.LLM = llm.LoadConfig(cfg.LLM)
	return cfg
}

// Validate checks values that cannot be repaired silently.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.HeatmapDays <= 0 || c.HeatmapDays > 366 {
		return fmt.Errorf("heatmap_days must be in 1..366, got %d", c.HeatmapDays)
	}
	if c.PlanHistoryLimit <= 0 {
		return fmt.Errorf("plan_history_limit must be positive, got %d", c.PlanHistoryLimit)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must not be negative, got %d", c.LLM.MaxRetries)
	}
	for task := range c.LLM.Tasks {
		if !isKnownTask(task) {
			return fmt.Errorf("unknown llm task %q", task)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the display time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func isKnownTask(t llm.TaskType) bool {
	for _, known := range llm.AllTasks {
		if t == known {
			return true
		}
	}
	return false
}
