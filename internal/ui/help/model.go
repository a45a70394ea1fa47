package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tempmail/internal/keys"
	"github.com/nhle/tempmail/internal/theme"
)

// Model renders the single key-help line shown under the header.
type Model struct {
	keys  *keys.KeyMap
	help  help.Model
	width int
}

// New creates a help line for the given key map.
func New(km *keys.KeyMap) Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Bold(true)
	h.Styles.ShortDesc = theme.HelpStyle
	h.Styles.ShortSeparator = theme.HelpStyle
	return Model{keys: km, help: h}
}

// SetWidth updates the available width; hints that do not fit are
// replaced by an ellipsis.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.help.Width = width
}

// ListView renders the hints for the message list.
func (m Model) ListView() string {
	return m.render(m.keys.ListHelp())
}

// ReaderView renders the hints for an open message.
func (m Model) ReaderView() string {
	return m.render(m.keys.ReaderHelp())
}

func (m Model) render(bindings []key.Binding) string {
	return " " + m.help.ShortHelpView(bindings)
}
