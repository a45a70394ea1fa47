// Package reader holds the open-message view. Its state belongs to the UI
// goroutine alone; the poller never touches it.
package reader

import (
	"fmt"

	"github.com/nhle/tempmail/internal/mailtext"
	"github.com/nhle/tempmail/internal/model"
)

// margin is subtracted from the terminal width before wrapping.
const margin = 2

// Model is the open message, its wrapped lines and the scroll offset.
// The zero value is a closed reader.
type Model struct {
	open   *model.MessageDetail
	lines  []string
	scroll int
	width  int
}

// Open shows d, wrapped for a terminal of the given width, from the top.
func (m *Model) Open(d *model.MessageDetail, width int) {
	m.open = d
	m.width = width
	m.scroll = 0
	m.rewrap()
}

// Close discards the open message.
func (m *Model) Close() {
	m.open = nil
	m.lines = nil
	m.scroll = 0
}

// IsOpen reports whether a message is shown.
func (m Model) IsOpen() bool {
	return m.open != nil
}

// Detail returns the open message, or nil.
func (m Model) Detail() *model.MessageDetail {
	return m.open
}

// SetWidth re-wraps the open message for a new terminal width, keeping
// the scroll offset in range.
func (m *Model) SetWidth(width int) {
	if width == m.width {
		return
	}
	m.width = width
	m.rewrap()
}

// Lines returns the wrapped lines.
func (m Model) Lines() []string {
	return m.lines
}

// Scroll returns the index of the first visible line.
func (m Model) Scroll() int {
	return m.scroll
}

// ScrollUp moves the view one line up.
func (m *Model) ScrollUp() {
	if m.scroll > 0 {
		m.scroll--
	}
}

// ScrollDown moves the view one line down while content remains below a
// viewport of the given height.
func (m *Model) ScrollDown(viewport int) {
	viewport = max(viewport, 1)
	if m.scroll < len(m.lines)-1 && m.scroll+viewport < len(m.lines) {
		m.scroll++
	}
}

// Title returns the first line, the Subject line.
func (m Model) Title() string {
	if len(m.lines) == 0 {
		return ""
	}
	return m.lines[0]
}

// Visible returns the lines inside a viewport of the given height.
func (m Model) Visible(viewport int) []string {
	end := min(m.scroll+max(viewport, 1), len(m.lines))
	if m.scroll >= end {
		return nil
	}
	return m.lines[m.scroll:end]
}

// Footer returns the line-range indicator.
func (m Model) Footer(viewport int) string {
	n := len(m.lines)
	return fmt.Sprintf("Message lines %d-%d of %d",
		min(n, m.scroll+1), min(n, m.scroll+max(viewport, 1)), n)
}

func (m *Model) rewrap() {
	if m.open == nil {
		return
	}
	m.lines = mailtext.ViewLines(m.open, m.width-margin)
	m.scroll = min(m.scroll, max(0, len(m.lines)-1))
}
