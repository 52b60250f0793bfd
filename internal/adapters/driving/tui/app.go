package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context handed to upload and question tasks.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// uploadView selects and uploads the document.
	uploadView *upload.View

	// chatView shows the transcript and the question input.
	chatView *chat.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// health is the last backend health probe result.
	health *domain.BackendHealth

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s, km),
		uploadView:  upload.NewView(s, km, ports.Upload),
		chatView:    chat.NewView(s, km, ports.Conversation),
		currentView: messages.ViewMenu, // Start with menu
	}
	a.refreshDocument()
	return a, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.uploadView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("docchat"),
		a.checkHealth(),
	)
}

// checkHealth probes the backend once.
func (a *App) checkHealth() tea.Cmd {
	if a.ports.Health == nil {
		return nil
	}
	return func() tea.Msg {
		health, err := a.ports.Health.Check(a.ctx)
		return messages.HealthChecked{Health: health, Err: err}
	}
}

// ReloadSettings reads settings and returns them as a message. It is sent
// into the running program when the config file changes.
func (a *App) ReloadSettings() tea.Msg {
	if a.ports.Settings == nil {
		return messages.SettingsReloaded{Err: ErrInvalidPorts}
	}
	settings, err := a.ports.Settings.Get()
	return messages.SettingsReloaded{Settings: settings, Err: err}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewUpload:
			a.uploadView, cmd = a.uploadView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewHelp:
			switch msg.String() {
			case "esc":
				a.currentView = messages.ViewMenu
			case "q":
				return a, tea.Quit
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		a.refreshDocument()
		switch msg.View {
		case messages.ViewUpload:
			a.uploadView.Reset()
			return a, a.uploadView.Init()
		case messages.ViewChat:
			return a, a.chatView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.UploadStarted:
		a.refreshDocument()
		return a, nil

	case messages.UploadCompleted:
		a.uploadView, cmd = a.uploadView.Update(msg)
		var chatCmd tea.Cmd
		a.chatView, chatCmd = a.chatView.Update(msg)
		a.refreshDocument()
		if msg.Status.State == domain.UploadFailed {
			logger.Warn("upload failed: %s", msg.Status.Message)
		}
		return a, tea.Batch(cmd, chatCmd)

	case messages.QuestionSubmitted:
		logger.Debug("question submitted: %q", msg.Question)
		return a, nil

	case messages.AnswerReceived:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.HealthChecked:
		a.applyHealth(msg)
		return a, nil

	case messages.SettingsReloaded:
		a.applySettings(msg)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewUpload:
			a.uploadView, cmd = a.uploadView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Menu and help don't display errors
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink, spinner ticks) to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// applyHealth shows the probe result in every status bar.
func (a *App) applyHealth(msg messages.HealthChecked) {
	text, healthy := healthText(msg)
	if msg.Err != nil {
		a.err = msg.Err
		logger.Warn("backend health check failed: %v", msg.Err)
	} else {
		a.health = msg.Health
	}
	a.uploadView.SetBackend(text, healthy)
	a.chatView.SetBackend(text, healthy)
}

// healthText summarises a probe for the status bar.
func healthText(msg messages.HealthChecked) (string, bool) {
	switch {
	case msg.Err != nil || msg.Health == nil:
		return "backend unreachable", false
	case !msg.Health.IsHealthy():
		return "backend " + msg.Health.Status, false
	case !msg.Health.ModelReady:
		return "backend up, model not ready", false
	default:
		return "backend ready", true
	}
}

// applySettings pushes reloaded settings into the session policy.
func (a *App) applySettings(msg messages.SettingsReloaded) {
	if msg.Err != nil || msg.Settings == nil {
		a.err = msg.Err
		logger.Warn("settings reload failed: %v", msg.Err)
		return
	}
	a.ports.Conversation.SetRequireDocument(msg.Settings.Conversation.RequireDocument)
	logger.Debug("settings reloaded, require_document=%t", msg.Settings.Conversation.RequireDocument)
}

// refreshDocument updates the document summary shown by the menu and chat.
func (a *App) refreshDocument() {
	summary := ""
	if doc, ok := a.ports.Upload.SelectedDocument(); ok {
		summary = doc.String()
		if line := a.ports.Upload.Status().String(); line != "" {
			summary += " · " + line
		}
	}
	a.menuView.SetDocument(summary)
	a.chatView.SetDocument(summary)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewUpload:
		return a.uploadView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Upload Document:
  (type)      Path to the document
  enter       Select and upload
  enter       On an empty line, re-upload the selected document

Chat:
  (type)      Enter a question
  enter       Send question
  pgup/pgdn   Scroll the transcript
  ctrl+u      Go to Upload Document

Only one question can be in flight at a time. Questions typed while
an answer is pending are kept in the input until it arrives.

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Health returns the last successful health probe result.
func (a *App) Health() *domain.BackendHealth {
	return a.health
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.uploadView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
}
