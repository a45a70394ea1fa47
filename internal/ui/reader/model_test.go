package reader

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nhle/tempmail/internal/model"
)

func longMessage() *model.MessageDetail {
	paras := make([]string, 30)
	for i := range paras {
		paras[i] = "line"
	}
	return &model.MessageDetail{
		ID:      "m1",
		Subject: "Long one",
		From:    model.Address{Address: "a@example.test"},
		Text:    strings.Join(paras, "\n"),
	}
}

func TestOpenAndClose(t *testing.T) {
	var m Model
	if m.IsOpen() {
		t.Fatal("zero reader is open")
	}

	m.Open(longMessage(), 80)
	if !m.IsOpen() || m.Title() != "Subject: Long one" {
		t.Errorf("after Open: open=%v title=%q", m.IsOpen(), m.Title())
	}
	// Subject, From, Message-ID, blank, ---, blank, 30 body lines.
	if got := len(m.Lines()); got != 36 {
		t.Errorf("lines = %d; want 36", got)
	}

	m.ScrollDown(10)
	m.Close()
	if m.IsOpen() || m.Lines() != nil || m.Scroll() != 0 {
		t.Errorf("after Close: %+v", m)
	}
}

func TestScrollStopsAtLastPage(t *testing.T) {
	var m Model
	m.Open(longMessage(), 80)

	for i := 0; i < 100; i++ {
		m.ScrollDown(10)
	}
	if got := m.Scroll(); got != 26 {
		t.Errorf("scroll = %d; want 26", got)
	}
	if got := m.Footer(10); got != "Message lines 27-36 of 36" {
		t.Errorf("Footer = %q", got)
	}

	for i := 0; i < 100; i++ {
		m.ScrollUp()
	}
	if got := m.Scroll(); got != 0 {
		t.Errorf("scroll = %d; want 0", got)
	}
}

func TestShortMessageDoesNotScroll(t *testing.T) {
	var m Model
	m.Open(&model.MessageDetail{Subject: "s", Text: "hi"}, 80)
	m.ScrollDown(20)
	if m.Scroll() != 0 {
		t.Errorf("scroll = %d; want 0", m.Scroll())
	}
	if got := m.Footer(20); got != "Message lines 1-6 of 6" {
		t.Errorf("Footer = %q", got)
	}
}

func TestOpenResetsScroll(t *testing.T) {
	var m Model
	m.Open(longMessage(), 80)
	m.ScrollDown(5)
	m.ScrollDown(5)

	m.Open(longMessage(), 80)
	if m.Scroll() != 0 {
		t.Errorf("scroll = %d after reopening", m.Scroll())
	}
}

func TestSetWidthRewraps(t *testing.T) {
	d := &model.MessageDetail{Subject: "s", Text: strings.Repeat("word ", 40)}
	var m Model
	m.Open(d, 100)
	wide := len(m.Lines())

	m.SetWidth(22)
	if len(m.Lines()) <= wide {
		t.Errorf("narrower width produced %d lines, had %d", len(m.Lines()), wide)
	}

	var again Model
	again.Open(d, 22)
	if diff := cmp.Diff(again.Lines(), m.Lines()); diff != "" {
		t.Errorf("re-wrap differs from fresh open (-fresh +rewrapped):\n%s", diff)
	}
}

func TestVisible(t *testing.T) {
	var m Model
	m.Open(longMessage(), 80)
	m.ScrollDown(4)

	got := m.Visible(4)
	want := m.Lines()[1:5]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Visible mismatch (-want +got):\n%s", diff)
	}
}
