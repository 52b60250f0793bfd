package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// UploadController owns the document selection and upload lifecycle.
type UploadController interface {
	// SelectDocument inspects path and makes it the selected document.
	// An invalid path leaves the previous selection untouched.
	SelectDocument(path string) (*domain.Document, error)

	// SelectedDocument returns the current selection, if any.
	SelectedDocument() (domain.Document, bool)

	// BeginUpload moves the session to Uploading and returns the task that
	// performs the request. Returns domain.ErrNoDocumentSelected or
	// domain.ErrUploadInProgress without changing any state.
	BeginUpload() (UploadTask, error)

	// SubmitUpload begins an upload and runs it to completion.
	// A failed upload is not an error: it is reported in the returned status.
	SubmitUpload(ctx context.Context) (domain.UploadStatus, error)

	// Status returns the current upload status.
	Status() domain.UploadStatus
}

// UploadTask is one in-flight upload request.
type UploadTask interface {
	// Document returns the document being uploaded.
	Document() domain.Document

	// Run performs the request and applies its outcome to the session.
	// Only the first call does any work; later calls return the same status.
	Run(ctx context.Context) domain.UploadStatus
}
