// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. Choosing it either opens View or quits.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType
	Quit        bool
}

// DefaultItems returns the entries of the main menu in display order.
func DefaultItems() []Item {
	return []Item{
		{Label: "Chat", Description: "Ask questions about the document", View: messages.ViewChat},
		{Label: "Upload Document", Description: "Choose a file and send it for processing", View: messages.ViewUpload},
		{Label: "Help", Description: "Keys and usage", View: messages.ViewHelp},
		{Label: "Quit", Description: "Leave docchat", Quit: true},
	}
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	cursor   int
	document string
	width    int
	height   int
	ready    bool
}

// NewView creates the menu. Nil styles or keymap fall back to the defaults.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		items:  DefaultItems(),
		width:  80,
		height: 24,
	}
}

// Init implements the view lifecycle; the menu has nothing to start.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and emits navigation messages.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			v.cursor = max(v.cursor-1, 0)
		case key.Matches(msg, v.keymap.Down):
			v.cursor = min(v.cursor+1, len(v.items)-1)
		case key.Matches(msg, v.keymap.Select):
			return v, v.choose(v.items[v.cursor])
		case key.Matches(msg, v.keymap.Help):
			return v, changeView(messages.ViewHelp)
		case key.Matches(msg, v.keymap.Quit):
			return v, quit
		}
	}
	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	if item.Quit {
		return quit
	}
	return changeView(item.View)
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

func quit() tea.Msg {
	return messages.Quit{}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("docchat") + "\n")
	b.WriteString(v.styles.Subtitle.Render("Chat with your documents") + "\n\n")

	if v.document != "" {
		b.WriteString(v.styles.Muted.Render("Document: "+v.document) + "\n\n")
	}

	for i, item := range v.items {
		if i == v.cursor {
			b.WriteString(v.styles.Cursor.Render("> "+item.Label))
			b.WriteString("  " + v.styles.Muted.Render(item.Description))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [?] Help  [q] Quit"))
	return b.String()
}

// SetDimensions records the terminal size and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SetDocument sets the document summary shown under the title.
// An empty summary hides the line.
func (v *View) SetDocument(summary string) {
	v.document = summary
}

// Selected returns the cursor position.
func (v *View) Selected() int {
	return v.cursor
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return append([]Item(nil), v.items...)
}
