package services

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// Session is the state shared by the upload and conversation controllers.
// One session exists per process.
type Session struct {
	mu              sync.Mutex
	id              string
	document        *domain.Document
	upload          domain.UploadStatus
	entries         []domain.Entry
	pending         bool
	draft           string
	requireDocument bool

	// notices are system entries held back while a question is pending,
	// so a User entry is always directly followed by its terminal entry.
	notices []string
}

// NewSession creates an empty session with no document and an idle upload.
func NewSession() *Session {
	return &Session{
		id:     uuid.NewString(),
		upload: domain.UploadStatus{State: domain.UploadIdle},
	}
}

// ID returns the session's correlation ID.
func (s *Session) ID() string {
	return s.id
}

// SelectedDocument returns the current selection, if any.
func (s *Session) SelectedDocument() (domain.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.document == nil {
		return domain.Document{}, false
	}
	return *s.document, true
}

// UploadStatus returns the current upload status.
func (s *Session) UploadStatus() domain.UploadStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upload
}

// Entries returns a copy of the transcript.
func (s *Session) Entries() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Pending returns true while a question awaits its answer.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Draft returns the question input buffer.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the question input buffer.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// appendEntry adds an entry to the transcript (caller must hold lock).
func (s *Session) appendEntry(kind domain.EntryKind, text string) domain.Entry {
	entry := domain.NewEntry(kind, text)
	s.entries = append(s.entries, entry)
	return entry
}

// appendNotice adds a system entry, deferring it while a question is pending
// (caller must hold lock).
func (s *Session) appendNotice(text string) {
	if s.pending {
		s.notices = append(s.notices, text)
		return
	}
	s.appendEntry(domain.EntrySystem, text)
}

// flushNotices appends deferred system entries (caller must hold lock).
func (s *Session) flushNotices() {
	for _, text := range s.notices {
		s.appendEntry(domain.EntrySystem, text)
	}
	s.notices = nil
}
