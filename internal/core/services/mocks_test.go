package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// mockBackend implements driven.Backend with overridable behaviour.
type mockBackend struct {
	mu          sync.Mutex
	uploadFunc  func(ctx context.Context, doc domain.Document) (*domain.UploadReceipt, error)
	askFunc     func(ctx context.Context, question string) (string, error)
	healthFunc  func(ctx context.Context) (*domain.BackendHealth, error)
	uploadCalls []domain.Document
	askCalls    []string
}

func (m *mockBackend) Upload(ctx context.Context, doc domain.Document) (*domain.UploadReceipt, error) {
	m.mu.Lock()
	m.uploadCalls = append(m.uploadCalls, doc)
	fn := m.uploadFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, doc)
	}
	return &domain.UploadReceipt{}, nil
}

func (m *mockBackend) Ask(ctx context.Context, question string) (string, error) {
	m.mu.Lock()
	m.askCalls = append(m.askCalls, question)
	fn := m.askFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, question)
	}
	return "", nil
}

func (m *mockBackend) Health(ctx context.Context) (*domain.BackendHealth, error) {
	if m.healthFunc != nil {
		return m.healthFunc(ctx)
	}
	return &domain.BackendHealth{Status: "healthy", ModelReady: true}, nil
}

func (m *mockBackend) BaseURL() string {
	return "http://backend.test"
}

func (m *mockBackend) uploadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploadCalls)
}

func (m *mockBackend) askCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.askCalls)
}

// mockInspector implements driven.DocumentInspector.
type mockInspector struct {
	docs map[string]domain.Document
	err  error
}

func (m *mockInspector) Inspect(path string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.docs[path]
	if !ok {
		return nil, domain.ErrInvalidDocument
	}
	return &doc, nil
}

func (m *mockInspector) AcceptedTypes() []string {
	return []string{domain.DefaultAcceptedType}
}

func newPDF(name string) domain.Document {
	return domain.Document{
		Path:     "/docs/" + name,
		Name:     name,
		Size:     4096,
		MIMEType: domain.DefaultAcceptedType,
	}
}

// newTestControllers wires both controllers to one session.
func newTestControllers(backend *mockBackend, docs ...domain.Document) (*Session, *UploadService, *ConversationService) {
	inspector := &mockInspector{docs: make(map[string]domain.Document)}
	for _, d := range docs {
		inspector.docs[d.Path] = d
	}
	session := NewSession()
	return session,
		NewUploadService(session, backend, inspector),
		NewConversationService(session, backend)
}

// gate blocks a mock call until released, so tests can observe in-flight state.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (g *gate) wait() {
	g.started <- struct{}{}
	<-g.release
}
