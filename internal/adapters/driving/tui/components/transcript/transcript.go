// Package transcript renders the conversation log in a scrollable viewport.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// emptyText is shown before the first entry.
const emptyText = "No messages yet. Upload a document and ask a question."

// Transcript displays conversation entries in order, newest at the bottom.
type Transcript struct {
	viewport viewport.Model
	styles   *styles.Styles
	entries  []domain.Entry
	width    int
	height   int
}

// New creates a transcript component.
func New(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}

	t := &Transcript{
		viewport: viewport.New(80, 10),
		styles:   s,
		width:    80,
		height:   10,
	}
	t.render()
	return t
}

// Init initialises the transcript.
func (t *Transcript) Init() tea.Cmd {
	return nil
}

// Update forwards scrolling input to the viewport.
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the visible part of the transcript.
func (t *Transcript) View() string {
	return t.viewport.View()
}

// SetEntries replaces the displayed entries. When new entries arrive the
// view follows the bottom of the log.
func (t *Transcript) SetEntries(entries []domain.Entry) {
	grew := len(entries) != len(t.entries)
	t.entries = entries
	t.render()
	if grew {
		t.viewport.GotoBottom()
	}
}

// Entries returns the displayed entries.
func (t *Transcript) Entries() []domain.Entry {
	return t.entries
}

// SetDimensions sets the transcript size.
func (t *Transcript) SetDimensions(width, height int) {
	if height < 1 {
		height = 1
	}
	t.width = width
	t.height = height
	t.viewport.Width = width
	t.viewport.Height = height
	t.render()
}

// Content returns the full rendered log, including lines scrolled out of view.
func (t *Transcript) Content() string {
	return t.renderEntries()
}

// AtBottom reports whether the newest entry is visible.
func (t *Transcript) AtBottom() bool {
	return t.viewport.AtBottom()
}

func (t *Transcript) render() {
	t.viewport.SetContent(t.renderEntries())
}

func (t *Transcript) renderEntries() string {
	if len(t.entries) == 0 {
		return t.styles.Muted.Render(emptyText)
	}

	wrap := lipgloss.NewStyle().Width(t.width)
	blocks := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		label := t.styles.Label(e.Kind).Render(e.Kind.Label() + ":")
		blocks = append(blocks, wrap.Render(label+" "+e.Text))
	}
	return strings.Join(blocks, "\n\n")
}
