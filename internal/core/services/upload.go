package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadController = (*UploadService)(nil)

// readyNoticeFormat is the system entry appended after every successful upload.
const readyNoticeFormat = "%s uploaded and processed. You can now ask questions about the document."

// UploadService selects documents and uploads them to the backend.
type UploadService struct {
	session   *Session
	backend   driven.Backend
	inspector driven.DocumentInspector
}

// NewUploadService creates a new upload service bound to session.
func NewUploadService(
	session *Session,
	backend driven.Backend,
	inspector driven.DocumentInspector,
) *UploadService {
	return &UploadService{
		session:   session,
		backend:   backend,
		inspector: inspector,
	}
}

// SelectDocument inspects path and makes it the selected document.
func (s *UploadService) SelectDocument(path string) (*domain.Document, error) {
	if s.inspector == nil {
		return nil, fmt.Errorf("select document: %w", domain.ErrInvalidDocument)
	}

	doc, err := s.inspector.Inspect(path)
	if err != nil {
		logger.Debug("Document %q rejected: %v", path, err)
		return nil, fmt.Errorf("select document: %w", err)
	}

	s.session.mu.Lock()
	selected := *doc
	s.session.document = &selected
	s.session.mu.Unlock()

	logger.Debug("Selected document: %s", doc)
	return doc, nil
}

// SelectedDocument returns the current selection, if any.
func (s *UploadService) SelectedDocument() (domain.Document, bool) {
	return s.session.SelectedDocument()
}

// Status returns the current upload status.
func (s *UploadService) Status() domain.UploadStatus {
	return s.session.UploadStatus()
}

// BeginUpload moves the session to Uploading and returns the upload task.
func (s *UploadService) BeginUpload() (driving.UploadTask, error) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	if s.session.document == nil {
		return nil, domain.ErrNoDocumentSelected
	}
	if !s.session.upload.State.CanStart() {
		return nil, domain.ErrUploadInProgress
	}
	if s.backend == nil {
		return nil, domain.ErrBackendUnavailable
	}

	s.session.upload = domain.UploadStatus{State: domain.UploadUploading}
	return &uploadTask{service: s, doc: *s.session.document}, nil
}

// SubmitUpload begins an upload and runs it to completion.
func (s *UploadService) SubmitUpload(ctx context.Context) (domain.UploadStatus, error) {
	task, err := s.BeginUpload()
	if err != nil {
		return s.Status(), err
	}
	return task.Run(ctx), nil
}

// finish applies the outcome of an upload request to the session.
func (s *UploadService) finish(doc domain.Document, receipt *domain.UploadReceipt, err error) domain.UploadStatus {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	if err != nil {
		reason := domain.FailureReason(err)
		s.session.upload = domain.UploadStatus{State: domain.UploadFailed, Message: reason}
		logger.Warn("Upload of %s failed: %s", doc.Name, reason)
		return s.session.upload
	}

	s.session.upload = domain.UploadStatus{State: domain.UploadSucceeded, Message: successMessage(receipt)}
	s.session.appendNotice(fmt.Sprintf(readyNoticeFormat, doc.Name))
	logger.Info("Upload of %s succeeded: %s", doc.Name, s.session.upload.Message)
	return s.session.upload
}

// successMessage builds the status text from whatever the backend reported.
func successMessage(receipt *domain.UploadReceipt) string {
	if receipt == nil {
		return domain.UploadSucceededText
	}
	msg := receipt.Message
	if msg == "" {
		msg = domain.UploadSucceededText
	}
	if receipt.ChunksCount > 0 {
		msg = fmt.Sprintf("%s (%d chunks)", msg, receipt.ChunksCount)
	}
	return msg
}

// uploadTask is one upload request. It resolves exactly once.
type uploadTask struct {
	service *UploadService
	doc     domain.Document
	once    sync.Once
	status  domain.UploadStatus
}

// Document returns the document being uploaded.
func (t *uploadTask) Document() domain.Document {
	return t.doc
}

// Run performs the request and applies its outcome.
func (t *uploadTask) Run(ctx context.Context) domain.UploadStatus {
	t.once.Do(func() {
		logger.Section("Upload")
		logger.Debug("Session %s: uploading %s", t.service.session.ID(), t.doc)

		receipt, err := t.service.backend.Upload(context.WithoutCancel(ctx), t.doc)
		t.status = t.service.finish(t.doc, receipt, err)
	})
	return t.status
}
