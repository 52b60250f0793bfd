package cli

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/adapters/driven/inspector"
	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/services"
)

const testPDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<<>>\n%%EOF\n"

// fakeBackend implements driven.Backend without a network.
type fakeBackend struct {
	mu        sync.Mutex
	uploadErr error
	answer    string
	askErr    error
	health    *domain.BackendHealth
	healthErr error
	questions []string
	uploads   []domain.Document
}

func (f *fakeBackend) Upload(_ context.Context, doc domain.Document) (*domain.UploadReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, doc)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &domain.UploadReceipt{Message: "Document processed successfully!", ChunksCount: 3}, nil
}

func (f *fakeBackend) Ask(_ context.Context, question string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions = append(f.questions, question)
	if f.askErr != nil {
		return "", f.askErr
	}
	if f.answer != "" {
		return f.answer, nil
	}
	return "answer to " + question, nil
}

func (f *fakeBackend) Health(_ context.Context) (*domain.BackendHealth, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	if f.health != nil {
		return f.health, nil
	}
	return &domain.BackendHealth{Status: "healthy", ModelReady: true}, nil
}

func (f *fakeBackend) BaseURL() string {
	return "http://backend.test"
}

// testServices exposes the wiring behind the package-level ports.
type testServices struct {
	backend  *fakeBackend
	settings *services.SettingsService
}

// setupTestServices installs real services over a fake backend and returns
// a cleanup that restores package state.
func setupTestServices() (*testServices, func()) {
	backend := &fakeBackend{}
	session := services.NewSession()
	settings := services.NewSettingsService(memory.NewConfigStore())
	docs := inspector.New(domain.DefaultAppSettings().Documents.AcceptedTypes)

	SetBootstrap(nil)
	SetServices(&Services{
		Upload:       services.NewUploadService(session, backend, docs),
		Conversation: services.NewConversationService(session, backend),
		Health:       services.NewHealthService(backend),
		Settings:     settings,
	})

	cleanup := func() {
		SetServices(nil)
		askFile = ""
		askFormat = formatText
		chatFile = ""
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}
	return &testServices{backend: backend, settings: settings}, cleanup
}

// writePDF creates a minimal PDF in a temp dir and returns its path.
func writePDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(testPDF), 0o600))
	return path
}

// writeText creates a plain text file in a temp dir and returns its path.
func writeText(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("just some notes\n"), 0o600))
	return path
}
