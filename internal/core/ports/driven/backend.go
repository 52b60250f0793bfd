package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// Backend is the remote document processing and question answering service.
//
// Implementations report a non-2xx response as *domain.BackendError and a
// network or decoding failure as *domain.TransportError, so callers can apply
// domain.FailureReason uniformly.
type Backend interface {
	// Upload sends the document for processing and returns the backend's receipt.
	// A 2xx response is success regardless of the body's shape.
	Upload(ctx context.Context, doc domain.Document) (*domain.UploadReceipt, error)

	// Ask sends a question and returns the answer text.
	Ask(ctx context.Context, question string) (string, error)

	// Health probes the backend's health endpoint.
	Health(ctx context.Context) (*domain.BackendHealth, error)

	// BaseURL returns the address requests are sent to.
	BaseURL() string
}
