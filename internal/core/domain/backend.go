package domain

import (
	"errors"
	"fmt"
)

// BackendError is a non-2xx response from the document backend.
type BackendError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Detail is the structured `detail` message, empty when the body carried none.
	Detail string
}

// Error implements error.
func (e *BackendError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// TransportError is a failure to reach the backend or read its response.
type TransportError struct {
	// Op names the operation, e.g. "upload" or "chat".
	Op string

	// Err is the underlying network error.
	Err error
}

// Error implements error. It returns the network error's own text.
func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Op + ": transport error"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// FailureReason extracts the user-facing message from a failed request.
// A structured `detail` wins; otherwise the transport error's own text is used.
func FailureReason(err error) string {
	if err == nil {
		return ""
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) && backendErr.Detail != "" {
		return backendErr.Detail
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Error()
	}

	if backendErr != nil {
		return backendErr.Error()
	}
	return err.Error()
}

// BackendHealth is the backend's self-reported health.
type BackendHealth struct {
	// Status is "healthy" when the backend is serving.
	Status string `json:"status" yaml:"status"`

	// ModelReady reports whether the answering model is loaded.
	ModelReady bool `json:"model_ready" yaml:"model_ready"`
}

// IsHealthy returns true when the backend reports a healthy status.
func (h BackendHealth) IsHealthy() bool {
	return h.Status == "healthy"
}
