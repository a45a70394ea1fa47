package mailtext

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"

	"github.com/nhle/tempmail/internal/model"
)

func TestBodySelection(t *testing.T) {
	tests := []struct {
		name   string
		detail model.MessageDetail
		want   string
	}{
		{
			name:   "text wins",
			detail: model.MessageDetail{Text: "plain", Intro: "intro", HTML: "<b>html</b>"},
			want:   "plain",
		},
		{
			name:   "intro fallback",
			detail: model.MessageDetail{Intro: "intro", HTML: "<b>html</b>"},
			want:   "intro",
		},
		{
			name:   "html stripped",
			detail: model.MessageDetail{HTML: `<p class="x">Hello <b>world</b></p>`},
			want:   "Hello world",
		},
		{
			name:   "no body",
			detail: model.MessageDetail{},
			want:   NoBody,
		},
		{
			name:   "entities decoded",
			detail: model.MessageDetail{Text: "Tom &amp; Jerry &lt;3"},
			want:   "Tom & Jerry <3",
		},
		{
			name:   "html that strips to nothing",
			detail: model.MessageDetail{HTML: "<br><hr>"},
			want:   NoBody,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Body(&tc.detail); got != tc.want {
				t.Errorf("Body() = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestViewLines(t *testing.T) {
	d := &model.MessageDetail{
		ID:          "abc123",
		Subject:     "Welcome",
		From:        model.Address{Name: "Alice", Address: "alice@example.test"},
		To:          []model.Address{{Address: "me@example.test"}, {Name: "Other", Address: "o@example.test"}},
		CreatedAt:   "2024-05-01T10:00:00+00:00",
		Attachments: []string{"a.pdf", "b.png"},
		Text:        "First paragraph here.\n\nSecond &amp; last.",
	}

	want := []string{
		"Subject: Welcome",
		"From: Alice <alice@example.test>",
		"To: me@example.test, o@example.test",
		"Date: 2024-05-01T10:00:00+00:00",
		"Message-ID: abc123",
		"Attachments: a.pdf, b.png",
		"",
		"---",
		"",
		"First",
		"paragraph",
		"here.",
		"",
		"Second &",
		"last.",
	}
	if diff := cmp.Diff(want, ViewLines(d, 10)); diff != "" {
		t.Errorf("ViewLines mismatch (-want +got):\n%s", diff)
	}
}

func TestViewLinesMinimal(t *testing.T) {
	d := &model.MessageDetail{From: model.Address{Address: "x@example.test"}}
	want := []string{
		"Subject: (no subject)",
		"From: x@example.test",
		"",
		"---",
		"",
		NoBody,
	}
	if diff := cmp.Diff(want, ViewLines(d, 80)); diff != "" {
		t.Errorf("ViewLines mismatch (-want +got):\n%s", diff)
	}
}

func TestViewLinesIdempotent(t *testing.T) {
	d := &model.MessageDetail{Subject: "s", HTML: "<div>" + strings.Repeat("word ", 50) + "</div>"}
	first := ViewLines(d, 33)
	second := ViewLines(d, 33)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("ViewLines not idempotent (-first +second):\n%s", diff)
	}
}

func TestViewLinesNarrowWidth(t *testing.T) {
	d := &model.MessageDetail{Text: strings.Repeat("abc ", 20)}
	for _, line := range ViewLines(d, 2)[5:] {
		if w := runewidth.StringWidth(line); w > MinWidth {
			t.Errorf("line %q is %d wide; want <= %d", line, w, MinWidth)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "fits",
			text:  "short line",
			width: 20,
			want:  []string{"short line"},
		},
		{
			name:  "breaks on words",
			text:  "the quick brown fox",
			width: 10,
			want:  []string{"the quick", "brown fox"},
		},
		{
			name:  "long word broken",
			text:  "abcdefghijklmnop",
			width: 5,
			want:  []string{"abcde", "fghij", "klmno", "p"},
		},
		{
			name:  "blank lines kept",
			text:  "a\n\n\nb",
			width: 5,
			want:  []string{"a", "", "", "b"},
		},
		{
			name:  "crlf",
			text:  "a\r\nb",
			width: 5,
			want:  []string{"a", "b"},
		},
		{
			name:  "wide runes",
			text:  "日本語のテキスト",
			width: 6,
			want:  []string{"日本語", "のテキ", "スト"},
		},
		{
			name:  "empty",
			text:  "",
			width: 5,
			want:  []string{""},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Wrap(tc.text, tc.width)); diff != "" {
				t.Errorf("Wrap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStripTags(t *testing.T) {
	got := StripTags(`<html><body><a href="x">link</a> &amp; text</body></html>`)
	if got != "link &amp; text" {
		t.Errorf("StripTags = %q", got)
	}
}
