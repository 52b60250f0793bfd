package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// mockUploadController is a mock implementation of driving.UploadController.
type mockUploadController struct {
	selectErr error
	runStatus domain.UploadStatus

	selected *domain.Document
	status   domain.UploadStatus
}

func (m *mockUploadController) SelectDocument(path string) (*domain.Document, error) {
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	m.selected = &domain.Document{Path: path, Name: "report.pdf", Size: 2048, MIMEType: "application/pdf"}
	return m.selected, nil
}

func (m *mockUploadController) SelectedDocument() (domain.Document, bool) {
	if m.selected == nil {
		return domain.Document{}, false
	}
	return *m.selected, true
}

func (m *mockUploadController) BeginUpload() (driving.UploadTask, error) {
	if m.selected == nil {
		return nil, domain.ErrNoDocumentSelected
	}
	if m.status.State == domain.UploadUploading {
		return nil, domain.ErrUploadInProgress
	}
	m.status = domain.UploadStatus{State: domain.UploadUploading}
	return &mockUploadTask{ctrl: m, doc: *m.selected}, nil
}

func (m *mockUploadController) SubmitUpload(ctx context.Context) (domain.UploadStatus, error) {
	task, err := m.BeginUpload()
	if err != nil {
		return domain.UploadStatus{}, err
	}
	return task.Run(ctx), nil
}

func (m *mockUploadController) Status() domain.UploadStatus {
	return m.status
}

type mockUploadTask struct {
	ctrl *mockUploadController
	doc  domain.Document
}

func (t *mockUploadTask) Document() domain.Document { return t.doc }

func (t *mockUploadTask) Run(context.Context) domain.UploadStatus {
	t.ctrl.status = t.ctrl.runStatus
	return t.ctrl.runStatus
}

// mockConversationController is a mock implementation of driving.ConversationController.
type mockConversationController struct {
	answer func(question string) (string, error)

	entries []domain.Entry
	pending bool
	draft   string
}

func (m *mockConversationController) SetDraft(text string)    { m.draft = text }
func (m *mockConversationController) Draft() string           { return m.draft }
func (m *mockConversationController) Pending() bool           { return m.pending }
func (m *mockConversationController) SetRequireDocument(bool) {}

func (m *mockConversationController) Entries() []domain.Entry {
	return append([]domain.Entry(nil), m.entries...)
}

func (m *mockConversationController) SubmitQuestion(text string) (driving.QuestionTask, error) {
	q := strings.TrimSpace(text)
	if q == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuestionRejected, domain.ErrEmptyQuestion)
	}
	if m.pending {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuestionRejected, domain.ErrQuestionPending)
	}
	m.pending = true
	m.entries = append(m.entries, domain.NewEntry(domain.EntryUser, q))
	return &mockQuestionTask{conv: m, question: q}, nil
}

func (m *mockConversationController) Ask(ctx context.Context, text string) (domain.Entry, error) {
	task, err := m.SubmitQuestion(text)
	if err != nil {
		return domain.Entry{}, err
	}
	return task.Run(ctx), nil
}

type mockQuestionTask struct {
	conv     *mockConversationController
	question string
}

func (t *mockQuestionTask) Question() string { return t.question }

func (t *mockQuestionTask) Run(context.Context) domain.Entry {
	answer, err := "ok", error(nil)
	if t.conv.answer != nil {
		answer, err = t.conv.answer(t.question)
	}
	entry := domain.NewEntry(domain.EntryAssistant, answer)
	if err != nil {
		entry = domain.NewEntry(domain.EntryError, err.Error())
	}
	t.conv.entries = append(t.conv.entries, entry)
	t.conv.pending = false
	return entry
}

// mockHealthService is a mock implementation of driving.HealthService.
type mockHealthService struct {
	health *domain.BackendHealth
	err    error
}

func (m *mockHealthService) Check(context.Context) (*domain.BackendHealth, error) {
	return m.health, m.err
}

func (m *mockHealthService) BaseURL() string { return "http://localhost:8000" }

func newTestServerPorts() (*Ports, *mockUploadController, *mockConversationController) {
	up := &mockUploadController{
		status:    domain.UploadStatus{State: domain.UploadIdle},
		runStatus: domain.UploadStatus{State: domain.UploadSucceeded},
	}
	conv := &mockConversationController{}
	return &Ports{Upload: up, Conversation: conv}, up, conv
}
