package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure ConversationService implements the interface.
var _ driving.ConversationController = (*ConversationService)(nil)

// ConversationService sends questions one at a time and records the transcript.
type ConversationService struct {
	session *Session
	backend driven.Backend
}

// NewConversationService creates a new conversation service bound to session.
func NewConversationService(session *Session, backend driven.Backend) *ConversationService {
	return &ConversationService{
		session: session,
		backend: backend,
	}
}

// SetDraft replaces the question input buffer.
func (s *ConversationService) SetDraft(text string) {
	s.session.SetDraft(text)
}

// Draft returns the question input buffer.
func (s *ConversationService) Draft() string {
	return s.session.Draft()
}

// Entries returns a copy of the transcript in append order.
func (s *ConversationService) Entries() []domain.Entry {
	return s.session.Entries()
}

// Pending returns true while a question awaits its answer.
func (s *ConversationService) Pending() bool {
	return s.session.Pending()
}

// SetRequireDocument toggles rejection of questions before a successful upload.
func (s *ConversationService) SetRequireDocument(require bool) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()
	s.session.requireDocument = require
}

// SubmitQuestion accepts text as the next question.
// On acceptance the draft is cleared, the User entry appended and the pending
// flag set, all under one lock.
func (s *ConversationService) SubmitQuestion(text string) (driving.QuestionTask, error) {
	question := strings.TrimSpace(text)

	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	switch {
	case question == "":
		return nil, reject(domain.ErrEmptyQuestion)
	case s.session.pending:
		return nil, reject(domain.ErrQuestionPending)
	case s.session.requireDocument && s.session.upload.State != domain.UploadSucceeded:
		return nil, reject(domain.ErrDocumentNotReady)
	case s.backend == nil:
		return nil, reject(domain.ErrBackendUnavailable)
	}

	s.session.draft = ""
	s.session.appendEntry(domain.EntryUser, question)
	s.session.pending = true

	return &questionTask{service: s, question: question}, nil
}

// Ask submits a question and runs it to completion.
func (s *ConversationService) Ask(ctx context.Context, text string) (domain.Entry, error) {
	task, err := s.SubmitQuestion(text)
	if err != nil {
		return domain.Entry{}, err
	}
	return task.Run(ctx), nil
}

// finish appends the terminal entry for a question and clears pending.
func (s *ConversationService) finish(answer string, err error) domain.Entry {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	var entry domain.Entry
	if err != nil {
		reason := domain.FailureReason(err)
		logger.Warn("Question failed: %s", reason)
		entry = s.session.appendEntry(domain.EntryError, reason)
	} else {
		logger.Debug("Answer received: %d chars", len(answer))
		entry = s.session.appendEntry(domain.EntryAssistant, answer)
	}
	s.session.pending = false
	s.session.flushNotices()
	return entry
}

func reject(reason error) error {
	return fmt.Errorf("%w: %w", domain.ErrQuestionRejected, reason)
}

// questionTask is one question request. It resolves exactly once.
type questionTask struct {
	service  *ConversationService
	question string
	once     sync.Once
	entry    domain.Entry
}

// Question returns the trimmed question text.
func (t *questionTask) Question() string {
	return t.question
}

// Run sends the question and appends its terminal entry.
func (t *questionTask) Run(ctx context.Context) domain.Entry {
	t.once.Do(func() {
		logger.Section("Question")
		logger.Debug("Session %s: asking %q", t.service.session.ID(), t.question)

		// Issued requests always complete; the backend timeout bounds them.
		answer, err := t.service.backend.Ask(context.WithoutCancel(ctx), t.question)
		t.entry = t.service.finish(answer, err)
	})
	return t.entry
}
