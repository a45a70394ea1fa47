// Package confirm implements the modal yes/no dialog. While it is open it
// receives every key; it resolves exactly once.
package confirm

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tempmail/internal/keys"
	"github.com/nhle/tempmail/internal/theme"
)

// maxWidth caps the dialog width.
const maxWidth = 60

// ResultMsg is emitted when the dialog is resolved. Confirmed is false
// when the user chose No or cancelled.
type ResultMsg struct {
	Confirmed bool
}

// Model is the confirmation dialog.
type Model struct {
	prompt string
	yes    bool
	done   bool
	keys   *keys.DialogKeyMap
	help   help.Model
	width  int
}

// New creates a dialog asking prompt, focused on Yes when defaultYes.
func New(prompt string, defaultYes bool, km *keys.DialogKeyMap) Model {
	h := help.New()
	h.ShortSeparator = "   "
	return Model{
		prompt: prompt,
		yes:    defaultYes,
		keys:   km,
		help:   h,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses. Left selects Yes, Right selects No, Enter
// resolves with the current choice and Cancel resolves with No.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.yes = true
	case key.Matches(keyMsg, m.keys.Right):
		m.yes = false
	case key.Matches(keyMsg, m.keys.Confirm):
		return m.resolve(m.yes)
	case key.Matches(keyMsg, m.keys.Cancel):
		return m.resolve(false)
	}
	return m, nil
}

func (m Model) resolve(confirmed bool) (Model, tea.Cmd) {
	m.done = true
	return m, func() tea.Msg {
		return ResultMsg{Confirmed: confirmed}
	}
}

// Choice reports whether Yes is focused.
func (m Model) Choice() bool {
	return m.yes
}

// Done reports whether the dialog has resolved.
func (m Model) Done() bool {
	return m.done
}

// View renders the dialog box.
func (m Model) View() string {
	inner := min(maxWidth, max(m.width-4, 20)) - 4

	yes := theme.ChoiceStyle.Render("Yes")
	no := theme.ChoiceStyle.Render("No")
	if m.yes {
		yes = theme.ActiveChoiceStyle.Render("Yes")
	} else {
		no = theme.ActiveChoiceStyle.Render("No")
	}
	buttons := lipgloss.PlaceHorizontal(inner, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, yes, "      ", no))

	m.help.Width = inner
	hints := theme.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(inner).Render(m.prompt),
		"",
		buttons,
		"",
		hints,
	)
	return theme.DialogStyle.Render(content)
}

// SetWidth updates the terminal width used to size the box.
func (m *Model) SetWidth(width int) {
	m.width = width
}
