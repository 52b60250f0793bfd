// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewUpload is the document selection and upload view.
	ViewUpload
	// ViewChat is the conversation view.
	ViewChat
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewUpload:
		return "upload"
	case ViewChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// DocumentSelected signals a document passed inspection and is now selected.
type DocumentSelected struct {
	Document domain.Document
}

// UploadStarted signals an upload task was issued for the document.
type UploadStarted struct {
	Document domain.Document
}

// UploadCompleted carries the terminal status of an upload task.
type UploadCompleted struct {
	Status domain.UploadStatus
}

// QuestionSubmitted signals a question was accepted and is now pending.
type QuestionSubmitted struct {
	Question string
}

// AnswerReceived carries the terminal entry of a question task.
type AnswerReceived struct {
	Entry domain.Entry
}

// HealthChecked carries the result of a backend health probe.
type HealthChecked struct {
	Health *domain.BackendHealth
	Err    error
}

// SettingsReloaded signals the configuration file changed on disk.
type SettingsReloaded struct {
	Settings *domain.AppSettings
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
