package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nhle/tempmail/internal/theme"
)

// Rows reserved around the content area: title, rule, key help and a
// blank row above; a blank row and the footer below.
const (
	HeaderRows = 4
	FooterRows = 2
)

// Layout manages the terminal frame dimensions.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ViewportHeight returns the number of content rows, never less than one.
func (l Layout) ViewportHeight() int {
	return max(1, l.Height-HeaderRows-FooterRows)
}

// Fit truncates a possibly styled line to the terminal width.
func (l Layout) Fit(line string) string {
	if l.Width <= 0 {
		return ""
	}
	return ansi.Truncate(line, l.Width, "")
}

// RenderHeader renders the title row with an optional right-aligned
// indicator. The indicator is dropped when both do not fit.
func (l Layout) RenderHeader(title, indicator string) string {
	gap := l.Width - lipgloss.Width(title) - lipgloss.Width(indicator)
	if indicator == "" || gap < 1 {
		return theme.HeaderStyle.Render(l.pad(l.Fit(title)))
	}
	return theme.HeaderStyle.Render(title + strings.Repeat(" ", gap) + indicator)
}

// Rule renders the separator under the header.
func (l Layout) Rule() string {
	return theme.SeparatorStyle.Render(strings.Repeat("─", max(l.Width, 0)))
}

// RenderFrame composes the full screen. content is padded or cut to the
// viewport height so the footer always sits on the last row.
func (l Layout) RenderFrame(header, help string, content []string, footer string) string {
	vh := l.ViewportHeight()

	rows := make([]string, 0, HeaderRows+vh+FooterRows)
	rows = append(rows,
		l.Fit(header),
		l.Rule(),
		l.Fit(theme.HelpStyle.Render(help)),
		"",
	)
	for i := 0; i < vh; i++ {
		if i < len(content) {
			rows = append(rows, l.Fit(content[i]))
		} else {
			rows = append(rows, "")
		}
	}
	rows = append(rows, "", l.Fit(footer))

	return strings.Join(rows, "\n")
}

// Overlay centres box over the content rows, replacing the rows it
// covers.
func (l Layout) Overlay(content []string, box string) []string {
	vh := l.ViewportHeight()
	out := make([]string, vh)
	copy(out, content)

	boxLines := strings.Split(box, "\n")
	top := max(0, (vh-len(boxLines))/2)
	for i, line := range boxLines {
		if top+i >= vh {
			break
		}
		out[top+i] = lipgloss.PlaceHorizontal(max(l.Width, lipgloss.Width(line)), lipgloss.Center, line)
	}
	return out
}

// pad right-pads s with spaces to the terminal width.
func (l Layout) pad(s string) string {
	if w := lipgloss.Width(s); w < l.Width {
		return s + strings.Repeat(" ", l.Width-w)
	}
	return s
}
