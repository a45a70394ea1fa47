// Package inboxlist renders the message list.
package inboxlist

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nhle/tempmail/internal/inbox"
	"github.com/nhle/tempmail/internal/model"
	"github.com/nhle/tempmail/internal/theme"
)

// Column widths in display cells.
const (
	SenderWidth  = 25
	SubjectWidth = 40
	DateWidth    = 19
)

// EmptyText is shown while the inbox has no messages.
const EmptyText = "Inbox is empty. Waiting for messages..."

const columnGap = "  "

// Title returns the header text for the list.
func Title(address string) string {
	return " Temp Mail (Mail.tm): " + address
}

// FormatRow lays out one message as sender, subject and timestamp columns.
func FormatRow(m model.MessageSummary) string {
	date := m.CreatedAt
	if r := []rune(date); len(r) > DateWidth {
		date = string(r[:DateWidth])
	}
	return fixed(m.From.Address, SenderWidth) + columnGap +
		fixed(m.DisplaySubject(), SubjectWidth) + columnGap +
		date
}

// Rows renders the visible rows of snap for a viewport of the given
// height. The selected row is inverted and unread rows are bold.
func Rows(snap inbox.Snapshot, viewport, width int) []string {
	if snap.Len() == 0 {
		return []string{theme.EmptyStyle.Render(EmptyText)}
	}

	start, end := snap.Window(viewport)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		m := snap.Messages[i]
		line := FormatRow(m)
		if w := runewidth.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}

		style := theme.UnreadRowStyle
		if m.Seen {
			style = style.UnsetBold()
		}
		if i == snap.Selected {
			style = style.Inherit(theme.SelectedRowStyle)
		}
		rows = append(rows, style.Render(line))
	}
	return rows
}

// Footer returns the position indicator for the list.
func Footer(snap inbox.Snapshot, viewport int) string {
	if snap.Len() == 0 {
		return "0 messages"
	}
	start, end := snap.Window(viewport)
	return fmt.Sprintf("%d messages — showing %d-%d", snap.Len(), start+1, end)
}

// fixed truncates or pads s to exactly width display cells.
func fixed(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	s = runewidth.Truncate(s, width, "")
	return runewidth.FillRight(s, width)
}
