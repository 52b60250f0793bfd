// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/components/transcript"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// reservedLines is the height taken by everything except the transcript.
const reservedLines = 9

// View shows the transcript, a pending indicator and the question input.
// The input buffer is mirrored into the session draft on every keystroke.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	transcript *transcript.Transcript
	input      *input.Field
	spinner    spinner.Model
	statusbar  *status.Bar

	conversation driving.ConversationController
	ctx          context.Context

	document string
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, conversation driving.ConversationController) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.ChatHelp())

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Muted

	return &View{
		styles:       s,
		keymap:       km,
		transcript:   transcript.New(s),
		input:        input.NewQuestionInput(s),
		spinner:      sp,
		statusbar:    bar,
		conversation: conversation,
		ctx:          context.Background(),
		width:        80,
		height:       24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init restores the draft and transcript from the session.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	if v.conversation != nil {
		v.input.SetValue(v.conversation.Draft())
	}
	cmds := []tea.Cmd{v.input.Focus(), v.input.Init()}
	if v.Pending() {
		cmds = append(cmds, v.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.Pending() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.AnswerReceived:
		v.Refresh()
		if msg.Entry.Kind == domain.EntryError {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Entry.Text)
		} else {
			v.statusbar.Clear()
		}
		return v, nil

	case messages.UploadCompleted:
		// A successful upload appends a system notice.
		v.Refresh()
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
	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case key.Matches(msg, v.keymap.Upload):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewUpload}
		}
	case key.Matches(msg, v.keymap.ScrollUp), key.Matches(msg, v.keymap.ScrollDown):
		var cmd tea.Cmd
		v.transcript, cmd = v.transcript.Update(msg)
		return v, cmd
	case key.Matches(msg, v.keymap.Submit):
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.conversation != nil {
		v.conversation.SetDraft(v.input.Value())
	}
	return v, cmd
}

// submit hands the draft to the controller. A rejected question leaves the
// input as typed and explains why in the status bar.
func (v *View) submit() tea.Cmd {
	if v.conversation == nil {
		v.setError(ErrNoConversationController)
		return nil
	}

	task, err := v.conversation.SubmitQuestion(v.input.Value())
	if err != nil {
		v.err = err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(rejectionText(err))
		return nil
	}

	v.err = nil
	v.input.Reset()
	v.Refresh()
	v.statusbar.SetState(status.StatePending)
	v.statusbar.SetMessage("")

	question := task.Question()
	submitted := func() tea.Msg { return messages.QuestionSubmitted{Question: question} }
	run := func() tea.Msg {
		return messages.AnswerReceived{Entry: task.Run(v.ctx)}
	}
	return tea.Batch(submitted, v.spinner.Tick, run)
}

// rejectionText explains why a question was not sent.
func rejectionText(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuestion):
		return "Type a question first"
	case errors.Is(err, domain.ErrQuestionPending):
		return "Wait for the current answer"
	case errors.Is(err, domain.ErrDocumentNotReady):
		return "Upload a document first"
	default:
		return err.Error()
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// Refresh reloads the transcript from the session.
func (v *View) Refresh() {
	if v.conversation == nil {
		return
	}
	v.transcript.SetEntries(v.conversation.Entries())
	if v.conversation.Pending() {
		v.statusbar.SetState(status.StatePending)
	} else if v.statusbar.State() == status.StatePending {
		v.statusbar.Clear()
	}
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Chat")
	if v.document != "" {
		header += "  " + v.styles.Muted.Render(v.document)
	}
	sections = append(sections, header, "", v.transcript.View(), "")

	if v.Pending() {
		sections = append(sections, v.spinner.View()+" "+v.styles.Muted.Render(status.PendingText))
	} else {
		sections = append(sections, "")
	}

	sections = append(sections, v.input.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDocument sets the document summary shown in the header.
func (v *View) SetDocument(summary string) {
	v.document = summary
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
	v.transcript.SetDimensions(width, height-reservedLines)
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Pending returns true while a question awaits its answer.
func (v *View) Pending() bool {
	return v.conversation != nil && v.conversation.Pending()
}

// Input returns the typed question.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput sets the typed question and mirrors it into the draft.
func (v *View) SetInput(text string) {
	v.input.SetValue(text)
	if v.conversation != nil {
		v.conversation.SetDraft(text)
	}
}

// Transcript returns the full rendered transcript.
func (v *View) Transcript() string {
	return v.transcript.Content()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
