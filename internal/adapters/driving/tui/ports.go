// Package tui provides an interactive terminal user interface for docchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Upload selects and uploads the document.
	Upload driving.UploadController

	// Conversation submits questions and holds the transcript.
	Conversation driving.ConversationController

	// Health probes the backend. Optional.
	Health driving.HealthService

	// Settings reads application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required controllers.
func NewPorts(upload driving.UploadController, conversation driving.ConversationController) *Ports {
	return &Ports{
		Upload:       upload,
		Conversation: conversation,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Upload == nil {
		return ErrMissingUploadController
	}
	if p.Conversation == nil {
		return ErrMissingConversationController
	}
	return nil
}
