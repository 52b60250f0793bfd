package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docchat resources.
	uriScheme = "docchat://"

	transcriptURI = uriScheme + "transcript"
	documentURI   = uriScheme + "document"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         transcriptURI,
		Name:        "transcript",
		Description: "Conversation log in append order",
		MIMEType:    "application/json",
	}, s.handleTranscriptResource)

	s.server.AddResource(&mcp.Resource{
		URI:         documentURI,
		Name:        "document",
		Description: "The selected document and its upload status",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// transcriptEntry is one entry of the transcript resource.
type transcriptEntry struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	At   string `json:"at"`
}

// handleTranscriptResource returns the conversation log.
func (s *Server) handleTranscriptResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries := s.ports.Conversation.Entries()

	infos := make([]transcriptEntry, len(entries))
	for i, e := range entries {
		infos[i] = transcriptEntry{
			Kind: e.Kind.String(),
			Text: e.Text,
			At:   e.At.UTC().Format(time.RFC3339),
		}
	}

	return jsonResult(req.Params.URI, infos, "transcript")
}

// documentInfo is the body of the document resource.
type documentInfo struct {
	Document *DocumentOutput     `json:"document"`
	Upload   domain.UploadStatus `json:"upload"`
}

// handleDocumentResource returns the selected document.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	doc, ok := s.ports.Upload.SelectedDocument()
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	d := toDocumentOutput(doc)
	return jsonResult(req.Params.URI, documentInfo{
		Document: &d,
		Upload:   s.ports.Upload.Status(),
	}, "document")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
