package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Document Errors.

	// ErrInvalidDocument indicates the selected path cannot be uploaded
	// (missing, a directory, or empty).
	ErrInvalidDocument = errors.New("invalid document")

	// ErrUnsupportedDocument indicates the document's detected type is not accepted.
	ErrUnsupportedDocument = errors.New("unsupported document type")

	// Upload Errors.

	// ErrNoDocumentSelected indicates an upload was attempted with nothing chosen.
	// It is reported to the caller and never written to the transcript.
	ErrNoDocumentSelected = errors.New("no document selected")

	// ErrUploadInProgress indicates an upload is already in flight.
	ErrUploadInProgress = errors.New("upload in progress")

	// Question Errors.

	// ErrQuestionRejected indicates a question was dropped without any state change.
	// One of the more specific errors below is always joined with it.
	ErrQuestionRejected = errors.New("question rejected")

	// ErrEmptyQuestion indicates the question was empty after trimming.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrQuestionPending indicates another question is still awaiting its answer.
	ErrQuestionPending = errors.New("a question is already pending")

	// ErrDocumentNotReady indicates questions are gated on a processed document
	// and none has been processed yet.
	ErrDocumentNotReady = errors.New("no processed document")

	// ErrBackendUnavailable indicates no backend client is configured.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
