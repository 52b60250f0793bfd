package mcp

import (
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Upload selects and uploads the document.
	Upload driving.UploadController

	// Conversation submits questions and holds the transcript.
	Conversation driving.ConversationController

	// Health probes the backend for session_status.
	Health driving.HealthService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Upload == nil {
		return ErrMissingUploadController
	}
	if p.Conversation == nil {
		return ErrMissingConversationController
	}
	// Health is optional
	return nil
}
