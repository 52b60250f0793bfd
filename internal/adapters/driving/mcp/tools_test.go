package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestServer_handleSelectDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("selects document", func(t *testing.T) {
		ports, up, _ := newTestServerPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSelectDocument(ctx, nil, SelectDocumentInput{Path: "/tmp/report.pdf"})

		require.NoError(t, err)
		assert.Equal(t, "/tmp/report.pdf", output.Document.Path)
		assert.Equal(t, "report.pdf", output.Document.Name)
		assert.Equal(t, "application/pdf", output.Document.MIMEType)
		_, ok := up.SelectedDocument()
		assert.True(t, ok)
	})

	t.Run("returns error for unsupported document", func(t *testing.T) {
		ports, up, _ := newTestServerPorts()
		up.selectErr = domain.ErrUnsupportedDocument
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleSelectDocument(ctx, nil, SelectDocumentInput{Path: "/tmp/notes.txt"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedDocument)
	})
}

func TestServer_handleUploadDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("selects and uploads", func(t *testing.T) {
		ports, _, _ := newTestServerPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleUploadDocument(ctx, nil, UploadDocumentInput{Path: "/tmp/report.pdf"})

		require.NoError(t, err)
		assert.Equal(t, "succeeded", output.State)
		assert.Equal(t, domain.UploadSucceededText, output.Message)
		assert.Equal(t, "report.pdf", output.Document.Name)
	})

	t.Run("reuses the selected document", func(t *testing.T) {
		ports, up, _ := newTestServerPorts()
		up.selected = &domain.Document{Path: "/tmp/a.pdf", Name: "a.pdf"}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleUploadDocument(ctx, nil, UploadDocumentInput{})

		require.NoError(t, err)
		assert.Equal(t, "a.pdf", output.Document.Name)
	})

	t.Run("failed upload is reported in output", func(t *testing.T) {
		ports, up, _ := newTestServerPorts()
		up.runStatus = domain.UploadStatus{State: domain.UploadFailed, Message: "Only PDF files are allowed"}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleUploadDocument(ctx, nil, UploadDocumentInput{Path: "/tmp/report.pdf"})

		require.NoError(t, err)
		assert.Equal(t, "failed", output.State)
		assert.Equal(t, "Upload failed: Only PDF files are allowed", output.Message)
	})

	t.Run("nothing selected is an error", func(t *testing.T) {
		ports, _, _ := newTestServerPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleUploadDocument(ctx, nil, UploadDocumentInput{})

		assert.ErrorIs(t, err, domain.ErrNoDocumentSelected)
	})

	t.Run("upload in progress is an error", func(t *testing.T) {
		ports, up, _ := newTestServerPorts()
		up.selected = &domain.Document{Path: "/tmp/a.pdf", Name: "a.pdf"}
		up.status = domain.UploadStatus{State: domain.UploadUploading}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleUploadDocument(ctx, nil, UploadDocumentInput{})

		assert.ErrorIs(t, err, domain.ErrUploadInProgress)
	})

	t.Run("invalid path is an error", func(t *testing.T) {
		ports, up, _ := newTestServerPorts()
		up.selectErr = domain.ErrInvalidDocument
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleUploadDocument(ctx, nil, UploadDocumentInput{Path: "/nope"})

		assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	})
}

func TestServer_handleAskQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer", func(t *testing.T) {
		ports, _, conv := newTestServerPorts()
		conv.answer = func(string) (string, error) { return "The total is 42.", nil }
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, output, err := server.handleAskQuestion(ctx, nil, AskQuestionInput{Question: "What is the total?"})

		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Equal(t, "assistant", output.Kind)
		assert.Equal(t, "The total is 42.", output.Answer)
		assert.Len(t, conv.entries, 2)
	})

	t.Run("error entry is a tool error result", func(t *testing.T) {
		ports, _, conv := newTestServerPorts()
		conv.answer = func(string) (string, error) { return "", errors.New("Please upload a PDF first") }
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, output, err := server.handleAskQuestion(ctx, nil, AskQuestionInput{Question: "Hello"})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "Error: Please upload a PDF first", text.Text)
		assert.Equal(t, "error", output.Kind)
	})

	t.Run("rejected question is an error", func(t *testing.T) {
		ports, _, conv := newTestServerPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAskQuestion(ctx, nil, AskQuestionInput{Question: "   "})

		assert.ErrorIs(t, err, domain.ErrQuestionRejected)
		assert.ErrorIs(t, err, domain.ErrEmptyQuestion)
		assert.Empty(t, conv.entries)
	})
}

func TestServer_handleSessionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh session", func(t *testing.T) {
		ports, _, _ := newTestServerPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSessionStatus(ctx, nil, SessionStatusInput{})

		require.NoError(t, err)
		assert.Nil(t, output.Document)
		assert.Equal(t, "idle", output.UploadState)
		assert.Empty(t, output.UploadMessage)
		assert.False(t, output.Pending)
		assert.Equal(t, 0, output.Entries)
		assert.Empty(t, output.Backend)
	})

	t.Run("after upload with healthy backend", func(t *testing.T) {
		ports, up, conv := newTestServerPorts()
		ports.Health = &mockHealthService{health: &domain.BackendHealth{Status: "healthy", ModelReady: true}}
		up.selected = &domain.Document{Path: "/tmp/a.pdf", Name: "a.pdf"}
		up.status = domain.UploadStatus{State: domain.UploadSucceeded}
		conv.entries = []domain.Entry{domain.NewEntry(domain.EntrySystem, "a.pdf uploaded and processed.")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSessionStatus(ctx, nil, SessionStatusInput{})

		require.NoError(t, err)
		require.NotNil(t, output.Document)
		assert.Equal(t, "a.pdf", output.Document.Name)
		assert.Equal(t, "succeeded", output.UploadState)
		assert.Equal(t, domain.UploadSucceededText, output.UploadMessage)
		assert.Equal(t, 1, output.Entries)
		assert.Equal(t, "http://localhost:8000", output.Backend)
		assert.Equal(t, "healthy", output.BackendStatus)
		assert.True(t, output.ModelReady)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		ports, _, _ := newTestServerPorts()
		ports.Health = &mockHealthService{err: &domain.TransportError{Op: "health", Err: errors.New("connection refused")}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSessionStatus(ctx, nil, SessionStatusInput{})

		require.NoError(t, err)
		assert.Contains(t, output.BackendStatus, "unreachable")
		assert.Contains(t, output.BackendStatus, "connection refused")
	})
}
