package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// pathConfigStore reports a file path so log file defaults can be derived.
type pathConfigStore struct {
	*memory.ConfigStore
	path string
}

func (s *pathConfigStore) Path() string {
	return s.path
}

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Backend, settings.Backend)
	assert.Equal(t, defaults.Conversation, settings.Conversation)
	assert.Equal(t, defaults.Documents.AcceptedTypes, settings.Documents.AcceptedTypes)
	assert.False(t, settings.Logging.Verbose)
	assert.Empty(t, settings.Logging.File)
}

func TestSettingsService_GetDefaults_LogFileNextToConfig(t *testing.T) {
	dir := t.TempDir()
	store := &pathConfigStore{
		ConfigStore: memory.NewConfigStore(),
		path:        filepath.Join(dir, "config.toml"),
	}
	service := NewSettingsService(store)

	defaults := service.GetDefaults()

	assert.Equal(t, filepath.Join(dir, "docchat.log"), defaults.Logging.File)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("backend.base_url", "https://docs.example.com")
	_ = store.Set("backend.timeout_seconds", int64(30))
	_ = store.Set("backend.requests_per_second", 2.5)
	_ = store.Set("conversation.require_document", true)
	_ = store.Set("documents.accepted_types", []any{"application/pdf", "text/plain"})
	_ = store.Set("logging.verbose", true)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com", settings.Backend.BaseURL)
	assert.Equal(t, 30, settings.Backend.TimeoutSeconds)
	assert.InDelta(t, 2.5, settings.Backend.RequestsPerSecond, 0.0001)
	assert.True(t, settings.Conversation.RequireDocument)
	assert.Equal(t, []string{"application/pdf", "text/plain"}, settings.Documents.AcceptedTypes)
	assert.True(t, settings.Logging.Verbose)
}

func TestSettingsService_Get_IntegerRate(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("backend.requests_per_second", int64(4))

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.InDelta(t, 4.0, settings.Backend.RequestsPerSecond, 0.0001)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := service.GetDefaults()
	settings.Backend.BaseURL = "http://10.0.0.5:9000"
	settings.Backend.TimeoutSeconds = 45
	settings.Conversation.RequireDocument = true
	settings.Logging.File = "/var/log/docchat.log"

	err := service.Save(&settings)
	require.NoError(t, err)

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", retrieved.Backend.BaseURL)
	assert.Equal(t, 45, retrieved.Backend.TimeoutSeconds)
	assert.True(t, retrieved.Conversation.RequireDocument)
	assert.Equal(t, "/var/log/docchat.log", retrieved.Logging.File)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := service.GetDefaults()
	settings.Backend.BaseURL = "not a url"

	err := service.Save(&settings)

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, exists := store.Get("backend.base_url")
	assert.False(t, exists)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{"backend.base_url", "http://localhost:9000/", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "http://localhost:9000", s.Backend.BaseURL)
		}},
		{"backend.timeout_seconds", "15", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 15, s.Backend.TimeoutSeconds)
		}},
		{"backend.requests_per_second", "0.5", func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 0.5, s.Backend.RequestsPerSecond, 0.0001)
		}},
		{"conversation.require_document", "true", func(t *testing.T, s *domain.AppSettings) {
			assert.True(t, s.Conversation.RequireDocument)
		}},
		{"documents.accepted_types", "application/pdf, text/plain,", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, []string{"application/pdf", "text/plain"}, s.Documents.AcceptedTypes)
		}},
		{"logging.verbose", "1", func(t *testing.T, s *domain.AppSettings) {
			assert.True(t, s.Logging.Verbose)
		}},
		{"logging.file", "/tmp/docchat.log", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "/tmp/docchat.log", s.Logging.File)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"backend.base_url", "ftp://example.com"},
		{"backend.timeout_seconds", "soon"},
		{"backend.timeout_seconds", "-1"},
		{"backend.requests_per_second", "-2"},
		{"conversation.require_document", "maybe"},
		{"documents.accepted_types", " , "},
		{"unknown.key", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, exists := store.Get(tt.key)
			assert.False(t, exists)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()

	assert.Equal(t, []string{
		"backend.base_url",
		"backend.timeout_seconds",
		"backend.requests_per_second",
		"conversation.require_document",
		"documents.accepted_types",
		"logging.verbose",
		"logging.file",
	}, keys)

	keys[0] = "changed"
	assert.Equal(t, "backend.base_url", service.Keys()[0])
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Validate())

	_ = store.Set("backend.base_url", "localhost:8000")
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)
}
