package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBaseURL           = "backend.base_url"
	KeyTimeoutSeconds    = "backend.timeout_seconds"
	KeyRequestsPerSecond = "backend.requests_per_second"
	KeyRequireDocument   = "conversation.require_document"
	KeyAcceptedTypes     = "documents.accepted_types"
	KeyLogVerbose        = "logging.verbose"
	KeyLogFile           = "logging.file"
)

// settingKeys lists every settable key in display order.
var settingKeys = []string{
	KeyBaseURL,
	KeyTimeoutSeconds,
	KeyRequestsPerSecond,
	KeyRequireDocument,
	KeyAcceptedTypes,
	KeyLogVerbose,
	KeyLogFile,
}

// memoryPath is what in-memory config stores report as their path.
const memoryPath = ":memory:"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			BaseURL:           s.getString(KeyBaseURL, defaults.Backend.BaseURL),
			TimeoutSeconds:    s.getInt(KeyTimeoutSeconds, defaults.Backend.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(KeyRequestsPerSecond, defaults.Backend.RequestsPerSecond),
		},
		Conversation: domain.ConversationSettings{
			RequireDocument: s.getBool(KeyRequireDocument, defaults.Conversation.RequireDocument),
		},
		Documents: domain.DocumentSettings{
			AcceptedTypes: s.getStringSlice(KeyAcceptedTypes, defaults.Documents.AcceptedTypes),
		},
		Logging: domain.LoggingSettings{
			Verbose: s.getBool(KeyLogVerbose, defaults.Logging.Verbose),
			File:    s.getString(KeyLogFile, defaults.Logging.File),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyBaseURL, settings.Backend.BaseURL},
		{KeyTimeoutSeconds, settings.Backend.TimeoutSeconds},
		{KeyRequestsPerSecond, settings.Backend.RequestsPerSecond},
		{KeyRequireDocument, settings.Conversation.RequireDocument},
		{KeyAcceptedTypes, settings.Documents.AcceptedTypes},
		{KeyLogVerbose, settings.Logging.Verbose},
		{KeyLogFile, settings.Logging.File},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value for the named key, validates it and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case KeyBaseURL:
		settings.Backend.BaseURL = strings.TrimRight(value, "/")
		if err := settings.Backend.Validate(); err != nil {
			return err
		}
		stored = settings.Backend.BaseURL
	case KeyTimeoutSeconds:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case KeyRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	case KeyRequireDocument, KeyLogVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	case KeyAcceptedTypes:
		types := splitList(value)
		if len(types) == 0 {
			return fmt.Errorf("%w: %s needs at least one MIME type", domain.ErrInvalidInput, key)
		}
		stored = types
	case KeyLogFile:
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
// The log file defaults to a file next to the configuration file.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	if path := s.configStore.Path(); path != "" && path != memoryPath {
		defaults.Logging.File = filepath.Join(filepath.Dir(path), domain.DefaultLogFileName)
	}
	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
