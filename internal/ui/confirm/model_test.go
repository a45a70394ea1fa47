package confirm

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/nhle/tempmail/internal/keys"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// run feeds the keys and returns the resolution, if any.
func run(m Model, presses ...string) (Model, *ResultMsg) {
	for _, p := range presses {
		var cmd tea.Cmd
		m, cmd = m.Update(keyPress(p))
		if cmd != nil {
			res := cmd().(ResultMsg)
			return m, &res
		}
	}
	return m, nil
}

func TestDialogResolution(t *testing.T) {
	tests := []struct {
		name    string
		presses []string
		want    *ResultMsg
	}{
		{name: "enter on default yes", presses: []string{"enter"}, want: &ResultMsg{Confirmed: true}},
		{name: "right then enter", presses: []string{"right", "enter"}, want: &ResultMsg{Confirmed: false}},
		{name: "right left enter", presses: []string{"right", "left", "enter"}, want: &ResultMsg{Confirmed: true}},
		{name: "angle brackets", presses: []string{">", "<", ">", "enter"}, want: &ResultMsg{Confirmed: false}},
		{name: "escape cancels", presses: []string{"esc"}, want: &ResultMsg{Confirmed: false}},
		{name: "q cancels", presses: []string{"q"}, want: &ResultMsg{Confirmed: false}},
		{name: "other keys ignored", presses: []string{"x", "d", "down"}, want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New("Delete this message?", true, keys.DefaultDialogKeyMap())
			_, got := run(m, tc.presses...)
			switch {
			case tc.want == nil && got != nil:
				t.Errorf("resolved unexpectedly: %+v", *got)
			case tc.want != nil && got == nil:
				t.Error("did not resolve")
			case tc.want != nil && *got != *tc.want:
				t.Errorf("got %+v; want %+v", *got, *tc.want)
			}
		})
	}
}

func TestResolvesOnce(t *testing.T) {
	m := New("Delete this message?", true, keys.DefaultDialogKeyMap())
	m, res := run(m, "enter")
	if res == nil || !m.Done() {
		t.Fatal("dialog did not resolve")
	}
	if _, cmd := m.Update(keyPress("enter")); cmd != nil {
		t.Error("resolved dialog emitted a second result")
	}
}

func TestViewShowsPromptAndChoice(t *testing.T) {
	m := New("Delete this message?", true, keys.DefaultDialogKeyMap())
	m.SetWidth(80)

	view := ansi.Strip(m.View())
	for _, want := range []string{"Delete this message?", "Yes", "No", "cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if !m.Choice() {
		t.Error("default choice should be Yes")
	}
}
