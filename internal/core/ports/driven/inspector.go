package driven

import "github.com/custodia-labs/docchat/internal/core/domain"

// DocumentInspector turns a user-supplied path into a document handle.
type DocumentInspector interface {
	// Inspect validates the path and detects the document's type.
	// Returns domain.ErrInvalidDocument for missing, directory or empty files
	// and domain.ErrUnsupportedDocument when the detected type is not accepted.
	Inspect(path string) (*domain.Document, error)

	// AcceptedTypes returns the MIME types this inspector accepts.
	AcceptedTypes() []string
}
