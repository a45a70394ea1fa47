// Package mailtext turns a fetched message into display text: the header
// block, the chosen body and the word-wrapped lines shown in the reader.
package mailtext

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/nhle/tempmail/internal/model"
)

// NoBody is shown when a message has neither text, intro nor HTML.
const NoBody = "(no body)"

// MinWidth is the narrowest width the body is wrapped to.
const MinWidth = 10

// Separator divides the header block from the body in the reader.
const Separator = "---"

var tagPattern = regexp.MustCompile(`<[^<]+?>`)

// StripTags removes everything between angle brackets. It is a display
// approximation, not an HTML parser.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Body picks the body to display: plain text, else the intro, else the
// HTML with tags stripped, else NoBody. Entities are decoded.
func Body(d *model.MessageDetail) string {
	body := d.Text
	if body == "" {
		body = d.Intro
	}
	if body == "" && d.HTML != "" {
		body = StripTags(d.HTML)
	}
	if body == "" {
		body = NoBody
	}
	return html.UnescapeString(body)
}

// HeaderLines returns Subject and From, followed by To, Date, Message-ID
// and Attachments when present.
func HeaderLines(d *model.MessageDetail) []string {
	lines := []string{
		"Subject: " + d.DisplaySubject(),
		"From: " + d.From.String(),
	}

	if len(d.To) > 0 {
		addrs := make([]string, len(d.To))
		for i, a := range d.To {
			addrs[i] = a.Address
		}
		lines = append(lines, "To: "+strings.Join(addrs, ", "))
	}
	if d.CreatedAt != "" {
		lines = append(lines, "Date: "+d.CreatedAt)
	}
	if d.ID != "" {
		lines = append(lines, "Message-ID: "+d.ID)
	}
	if len(d.Attachments) > 0 {
		lines = append(lines, "Attachments: "+strings.Join(d.Attachments, ", "))
	}
	return lines
}

// ViewLines renders the message for the reader: header block, a separator
// framed by blank lines, then the body wrapped to max(MinWidth, width).
// The result depends only on d and width.
func ViewLines(d *model.MessageDetail, width int) []string {
	lines := HeaderLines(d)
	lines = append(lines, "", Separator, "")
	return append(lines, Wrap(Body(d), max(MinWidth, width))...)
}

// Wrap word-wraps text to width display columns. Paragraph breaks and
// blank lines are preserved; runs of whitespace inside a paragraph
// collapse to one space; words wider than width are broken.
func Wrap(text string, width int) []string {
	width = max(width, 1)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapParagraph(words, width)...)
	}
	return lines
}

func wrapParagraph(words []string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}

	for _, word := range words {
		ww := runewidth.StringWidth(word)

		if curW > 0 && curW+1+ww <= width {
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + ww
			continue
		}
		if curW > 0 {
			flush()
		}

		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// A single rune wider than the line.
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if word != "" {
			cur.WriteString(word)
			curW = ww
		}
	}
	if curW > 0 {
		flush()
	}
	return lines
}
