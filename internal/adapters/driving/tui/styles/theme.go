// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// Theme is the colour palette the styles are built from.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Border    lipgloss.Color
	Bar       lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#2DD4BF"), // Teal
		Secondary: lipgloss.Color("#60A5FA"), // Blue
		Text:      lipgloss.Color("#E5E7EB"),
		Muted:     lipgloss.Color("#9CA3AF"),
		Success:   lipgloss.Color("#86EFAC"),
		Warning:   lipgloss.Color("#FCD34D"),
		Error:     lipgloss.Color("#FCA5A5"),
		Border:    lipgloss.Color("#4B5563"),
		Bar:       lipgloss.Color("#111827"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title heads each view.
	Title lipgloss.Style

	// Subtitle sits under the menu title.
	Subtitle lipgloss.Style

	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Cursor marks the highlighted menu item.
	Cursor lipgloss.Style

	// InputField frames text inputs.
	InputField lipgloss.Style

	// StatusBar is the bottom line of the chat and upload views.
	StatusBar lipgloss.Style

	// Help renders key hints.
	Help lipgloss.Style

	// labels prefix transcript entries by kind.
	labels map[domain.EntryKind]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	bold := lipgloss.NewStyle().Bold(true)

	return &Styles{
		theme: theme,

		Title:    bold.Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Foreground(theme.Muted).Italic(true),
		Normal:   lipgloss.NewStyle().Foreground(theme.Text),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		Success:  lipgloss.NewStyle().Foreground(theme.Success),
		Warning:  lipgloss.NewStyle().Foreground(theme.Warning),
		Cursor:   bold.Foreground(theme.Secondary),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().Foreground(theme.Muted),

		labels: map[domain.EntryKind]lipgloss.Style{
			domain.EntryUser:      bold.Foreground(theme.Secondary),
			domain.EntryAssistant: bold.Foreground(theme.Primary),
			domain.EntrySystem:    lipgloss.NewStyle().Italic(true).Foreground(theme.Warning),
			domain.EntryError:     bold.Foreground(theme.Error),
		},
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Label returns the style for an entry's "Label:" prefix.
func (s *Styles) Label(kind domain.EntryKind) lipgloss.Style {
	if style, ok := s.labels[kind]; ok {
		return style
	}
	return s.Normal
}
