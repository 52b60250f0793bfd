// Package upload provides the document selection and upload view for the TUI.
package upload

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// View lets the user type a path, then selects and uploads that document.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	statusbar *status.Bar

	uploads driving.UploadController
	ctx     context.Context

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, km *keymap.KeyMap, uploads driving.UploadController) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.UploadHelp())

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewPathInput(s),
		statusbar: bar,
		uploads:   uploads,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.syncStatus()
	return tea.Batch(v.input.Focus(), v.input.Init())
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.UploadCompleted:
		v.handleUploadCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyEnter {
		return v, v.submit(strings.TrimSpace(v.input.Value()))
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit selects the typed path, or reuses the current selection when the
// input is empty, and issues the upload.
func (v *View) submit(path string) tea.Cmd {
	if v.uploads == nil {
		v.setError(ErrNoUploadController)
		return nil
	}

	if path != "" {
		if _, err := v.uploads.SelectDocument(path); err != nil {
			v.setError(err)
			return nil
		}
	}

	task, err := v.uploads.BeginUpload()
	if err != nil {
		v.setError(err)
		return nil
	}

	v.err = nil
	v.input.Reset()
	v.statusbar.SetState(status.StateUploading)
	v.statusbar.SetMessage("")

	doc := task.Document()
	started := func() tea.Msg { return messages.UploadStarted{Document: doc} }
	run := func() tea.Msg {
		return messages.UploadCompleted{Status: task.Run(v.ctx)}
	}
	return tea.Batch(started, run)
}

// handleUploadCompleted shows the terminal upload status.
func (v *View) handleUploadCompleted(msg messages.UploadCompleted) {
	if msg.Status.State == domain.UploadFailed {
		v.err = errors.New(msg.Status.Message)
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Status.Message)
		return
	}
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(msg.Status.String())
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// syncStatus mirrors the controller's upload state into the status bar.
func (v *View) syncStatus() {
	if v.uploads == nil {
		return
	}
	st := v.uploads.Status()
	switch st.State {
	case domain.UploadUploading:
		v.statusbar.SetState(status.StateUploading)
	case domain.UploadFailed:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(st.Message)
	case domain.UploadSucceeded:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(st.String())
	case domain.UploadIdle:
		v.statusbar.Clear()
	}
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Upload Document"), "")

	selected := "(none)"
	statusLine := ""
	if v.uploads != nil {
		if doc, ok := v.uploads.SelectedDocument(); ok {
			selected = doc.String()
		}
		statusLine = v.uploads.Status().String()
	}
	sections = append(sections, v.styles.Muted.Render("Selected: ")+v.styles.Normal.Render(selected), "")

	sections = append(sections, v.input.View(), "")

	if statusLine != "" {
		sections = append(sections, v.renderStatusLine(statusLine), "")
	}
	if v.err != nil && (v.uploads == nil || v.uploads.Status().State != domain.UploadFailed) {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections,
		v.styles.Help.Render("Enter a path and press enter. Press enter on an empty line to re-upload the selected document."),
		"",
		v.statusbar.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderStatusLine(line string) string {
	switch v.uploads.Status().State {
	case domain.UploadSucceeded:
		return v.styles.Success.Render(line)
	case domain.UploadFailed:
		return v.styles.Error.Render(line)
	case domain.UploadIdle, domain.UploadUploading:
	}
	return v.styles.Muted.Render(line)
}

// SetBackend forwards a health probe result to the status bar.
func (v *View) SetBackend(text string, healthy bool) {
	v.statusbar.SetBackend(text, healthy)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Path returns the typed path.
func (v *View) Path() string {
	return v.input.Value()
}

// SetPath sets the typed path.
func (v *View) SetPath(path string) {
	v.input.SetValue(path)
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

// Reset clears the input and any error.
func (v *View) Reset() {
	v.input.Reset()
	v.err = nil
	v.statusbar.Clear()
}
