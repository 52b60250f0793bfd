package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// SelectDocumentInput is the input schema for the select_document tool.
type SelectDocumentInput struct {
	Path string `json:"path" jsonschema:"local path of the document to select"`
}

// DocumentOutput describes a selected document.
type DocumentOutput struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mime_type"`
}

// SelectDocumentOutput is the output schema for the select_document tool.
type SelectDocumentOutput struct {
	Document DocumentOutput `json:"document"`
}

// UploadDocumentInput is the input schema for the upload_document tool.
type UploadDocumentInput struct {
	Path string `json:"path,omitempty" jsonschema:"optional path to select before uploading; defaults to the selected document"`
}

// UploadDocumentOutput is the output schema for the upload_document tool.
type UploadDocumentOutput struct {
	Document DocumentOutput `json:"document"`
	State    string         `json:"state"`
	Message  string         `json:"message"`
}

// AskQuestionInput is the input schema for the ask_question tool.
type AskQuestionInput struct {
	Question string `json:"question" jsonschema:"the question to ask about the uploaded document"`
}

// AskQuestionOutput is the output schema for the ask_question tool.
type AskQuestionOutput struct {
	Kind   string `json:"kind"`
	Answer string `json:"answer"`
}

// SessionStatusInput is the input schema for the session_status tool.
type SessionStatusInput struct{}

// SessionStatusOutput is the output schema for the session_status tool.
type SessionStatusOutput struct {
	Document      *DocumentOutput `json:"document,omitempty"`
	UploadState   string          `json:"upload_state"`
	UploadMessage string          `json:"upload_message,omitempty"`
	Pending       bool            `json:"pending"`
	Entries       int             `json:"entries"`
	Backend       string          `json:"backend,omitempty"`
	BackendStatus string          `json:"backend_status,omitempty"`
	ModelReady    bool            `json:"model_ready"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_document",
		Description: "Select a local document for upload. Only accepted document types can be selected",
	}, s.handleSelectDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_document",
		Description: "Upload the selected document to the backend so questions can be answered from it",
	}, s.handleUploadDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Ask a question about the uploaded document and wait for the answer",
	}, s.handleAskQuestion)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "session_status",
		Description: "Report the selected document, upload state, pending question and backend health",
	}, s.handleSessionStatus)
}

// handleSelectDocument handles the select_document tool invocation.
func (s *Server) handleSelectDocument(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SelectDocumentInput,
) (*mcp.CallToolResult, SelectDocumentOutput, error) {
	doc, err := s.ports.Upload.SelectDocument(input.Path)
	if err != nil {
		return nil, SelectDocumentOutput{}, err
	}
	return nil, SelectDocumentOutput{Document: toDocumentOutput(*doc)}, nil
}

// handleUploadDocument handles the upload_document tool invocation.
// A failed upload is reported in the output, not as a tool error.
func (s *Server) handleUploadDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadDocumentInput,
) (*mcp.CallToolResult, UploadDocumentOutput, error) {
	if path := strings.TrimSpace(input.Path); path != "" {
		if _, err := s.ports.Upload.SelectDocument(path); err != nil {
			return nil, UploadDocumentOutput{}, err
		}
	}

	task, err := s.ports.Upload.BeginUpload()
	if err != nil {
		return nil, UploadDocumentOutput{}, fmt.Errorf("upload: %w", err)
	}
	status := task.Run(ctx)

	return nil, UploadDocumentOutput{
		Document: toDocumentOutput(task.Document()),
		State:    status.State.String(),
		Message:  status.String(),
	}, nil
}

// handleAskQuestion handles the ask_question tool invocation.
// A rejected question is a tool error; a failed answer is an error entry.
func (s *Server) handleAskQuestion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskQuestionInput,
) (*mcp.CallToolResult, AskQuestionOutput, error) {
	entry, err := s.ports.Conversation.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskQuestionOutput{}, err
	}

	output := AskQuestionOutput{Kind: entry.Kind.String(), Answer: entry.Text}
	if entry.Kind == domain.EntryError {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: entry.String()}},
		}, output, nil
	}
	return nil, output, nil
}

// handleSessionStatus handles the session_status tool invocation.
func (s *Server) handleSessionStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SessionStatusInput,
) (*mcp.CallToolResult, SessionStatusOutput, error) {
	upload := s.ports.Upload.Status()
	output := SessionStatusOutput{
		UploadState: upload.State.String(),
		Pending:     s.ports.Conversation.Pending(),
		Entries:     len(s.ports.Conversation.Entries()),
	}
	if upload.State.IsTerminal() {
		output.UploadMessage = upload.String()
	}
	if doc, ok := s.ports.Upload.SelectedDocument(); ok {
		d := toDocumentOutput(doc)
		output.Document = &d
	}

	if s.ports.Health != nil {
		output.Backend = s.ports.Health.BaseURL()
		health, err := s.ports.Health.Check(ctx)
		if err != nil {
			output.BackendStatus = "unreachable: " + domain.FailureReason(err)
		} else {
			output.BackendStatus = health.Status
			output.ModelReady = health.ModelReady
		}
	}

	return nil, output, nil
}

func toDocumentOutput(doc domain.Document) DocumentOutput {
	return DocumentOutput{
		Path:     doc.Path,
		Name:     doc.Name,
		Size:     doc.Size,
		MIMEType: doc.MIMEType,
	}
}
