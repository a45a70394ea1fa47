package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the title row.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue)

// SeparatorStyle draws the horizontal rule under the header.
var SeparatorStyle = lipgloss.NewStyle().
	Foreground(ColorBorder)

// HelpStyle is used for keyboard shortcut hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// FooterStyle is used for the position indicator on the last row.
var FooterStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// SelectedRowStyle highlights the row under the cursor.
var SelectedRowStyle = lipgloss.NewStyle().
	Reverse(true)

// UnreadRowStyle marks messages that have not been opened.
var UnreadRowStyle = lipgloss.NewStyle().
	Bold(true)

// EmptyStyle is used for the empty-inbox placeholder.
var EmptyStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DialogStyle frames the confirmation dialog.
var DialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder).
	Padding(0, 1)

// ChoiceStyle renders an unfocused dialog button.
var ChoiceStyle = lipgloss.NewStyle().
	Padding(0, 1)

// ActiveChoiceStyle renders the focused dialog button.
var ActiveChoiceStyle = ChoiceStyle.
	Reverse(true).
	Bold(true)

// Banner kinds.
const (
	BannerInfo = iota
	BannerSuccess
	BannerError
)

// BannerStyle returns a color-coded style for a status banner kind.
func BannerStyle(kind int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch kind {
	case BannerSuccess:
		return base.Foreground(ColorGreen)
	case BannerError:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorYellow)
	}
}

// SyncStyle returns the style for the header sync indicator.
func SyncStyle(failing bool) lipgloss.Style {
	if failing {
		return HeaderStyle.Foreground(ColorRed)
	}
	return HeaderStyle
}
