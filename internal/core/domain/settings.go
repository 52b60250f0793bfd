package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default setting values.
const (
	DefaultBackendURL      = "http://localhost:8000"
	DefaultTimeoutSeconds  = 120
	DefaultAcceptedType    = "application/pdf"
	DefaultLogFileName     = "docchat.log"
	defaultRequestsPerSec  = 0
	defaultRequireDocument = false
)

// BackendSettings holds the document backend connection configuration.
type BackendSettings struct {
	// BaseURL is the fixed base address of the backend.
	BaseURL string

	// TimeoutSeconds bounds each request; an expiry is reported as a transport failure.
	TimeoutSeconds int

	// RequestsPerSecond throttles outgoing requests (0 = unlimited).
	RequestsPerSecond float64
}

// Timeout returns the request timeout as a duration.
func (b BackendSettings) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// Validate checks the backend settings.
func (b BackendSettings) Validate() error {
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: backend.base_url: %v", ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: backend.base_url must be http or https", ErrInvalidInput)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: backend.base_url has no host", ErrInvalidInput)
	}
	if b.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: backend.timeout_seconds must not be negative", ErrInvalidInput)
	}
	if b.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: backend.requests_per_second must not be negative", ErrInvalidInput)
	}
	return nil
}

// ConversationSettings holds question submission policy.
type ConversationSettings struct {
	// RequireDocument rejects questions until an upload has succeeded.
	// When false the backend decides what to answer without a document.
	RequireDocument bool
}

// DocumentSettings holds local document selection rules.
type DocumentSettings struct {
	// AcceptedTypes lists the MIME types that may be selected.
	// An empty list accepts every type.
	AcceptedTypes []string
}

// LoggingSettings holds diagnostic logging configuration.
type LoggingSettings struct {
	// Verbose enables debug logging.
	Verbose bool

	// File is where the TUI writes logs; empty keeps stderr.
	File string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Backend holds backend connection settings.
	Backend BackendSettings

	// Conversation holds question policy settings.
	Conversation ConversationSettings

	// Documents holds document selection settings.
	Documents DocumentSettings

	// Logging holds diagnostic logging settings.
	Logging LoggingSettings
}

// Validate checks all settings.
func (s AppSettings) Validate() error {
	return s.Backend.Validate()
}

// DefaultAppSettings returns settings with sensible defaults.
// The log file is left empty; callers place it inside the config directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			BaseURL:           DefaultBackendURL,
			TimeoutSeconds:    DefaultTimeoutSeconds,
			RequestsPerSecond: defaultRequestsPerSec,
		},
		Conversation: ConversationSettings{
			RequireDocument: defaultRequireDocument,
		},
		Documents: DocumentSettings{
			AcceptedTypes: []string{DefaultAcceptedType},
		},
	}
}
