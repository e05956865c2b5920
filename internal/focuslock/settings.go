package focuslock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/domain"
)

// SettingsKey is the KV key holding the focus-lock preferences.
const SettingsKey = "neuralplan_focus_settings"

// ErrUnknownApp is returned when toggling an app outside the catalog.
var ErrUnknownApp = errors.New("unknown distraction app")

// Store is the key-value persistence the settings live in.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// SettingsStore loads and saves FocusLockSettings.
type SettingsStore struct {
	store  Store
	logger *slog.Logger
}

func NewSettingsStore(store Store, logger *slog.Logger) *SettingsStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SettingsStore{store: store, logger: logger}
}

// Load returns the saved settings, or defaults when nothing usable is saved.
func (s *SettingsStore) Load(ctx context.Context) (domain.FocusLockSettings, error) {
	raw, ok, err := s.store.Get(ctx, SettingsKey)
	if err != nil {
		return domain.FocusLockSettings{}, fmt.Errorf("reading focus settings: %w", err)
	}
	if !ok {
		return domain.DefaultFocusLockSettings(), nil
	}

	var settings domain.FocusLockSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.logger.Warn("focus settings unreadable, using defaults", "error", err)
		return domain.DefaultFocusLockSettings(), nil
	}
	return normalizeSettings(settings), nil
}

// Save validates and persists settings.
func (s *SettingsStore) Save(ctx context.Context, settings domain.FocusLockSettings) error {
	for _, id := range settings.BlockedApps {
		if !domain.IsKnownDistractionApp(id) {
			return fmt.Errorf("%w: %s", ErrUnknownApp, id)
		}
	}
	if settings.DefaultMinutes <= 0 || settings.DefaultMinutes > MaxMinutes {
		return fmt.Errorf("%w: default minutes %d", ErrInvalidDuration, settings.DefaultMinutes)
	}

	data, err := json.Marshal(normalizeSettings(settings))
	if err != nil {
		return fmt.Errorf("encoding focus settings: %w", err)
	}
	if err := s.store.Set(ctx, SettingsKey, string(data)); err != nil {
		return fmt.Errorf("persisting focus settings: %w", err)
	}
	return nil
}

// ToggleApp flips whether id is blocked and saves the result.
func (s *SettingsStore) ToggleApp(ctx context.Context, id string) (domain.FocusLockSettings, error) {
	if !domain.IsKnownDistractionApp(id) {
		return domain.FocusLockSettings{}, fmt.Errorf("%w: %s", ErrUnknownApp, id)
	}
	settings, err := s.Load(ctx)
	if err != nil {
		return domain.FocusLockSettings{}, err
	}
	settings.ToggleApp(id)
	if err := s.Save(ctx, settings); err != nil {
		return domain.FocusLockSettings{}, err
	}
	return settings, nil
}

// normalizeSettings repairs out-of-range values from older or hand-edited
// blobs.
func normalizeSettings(in domain.FocusLockSettings) domain.FocusLockSettings {
	def := domain.DefaultFocusLockSettings()
	out := in
	if out.BlockedApps == nil {
		out.BlockedApps = []string{}
	}
	if out.BreakDurationSec < 1 {
		out.BreakDurationSec = def.BreakDurationSec
	}
	if strings.TrimSpace(out.BreakPrompt) == "" {
		out.BreakPrompt = def.BreakPrompt
	}
	if out.DefaultMinutes <= 0 || out.DefaultMinutes > MaxMinutes {
		out.DefaultMinutes = def.DefaultMinutes
	}
	return out
}
