package model

import (
	"errors"
	"testing"
)

func TestAddressString(t *testing.T) {
	tests := []struct {
		in   Address
		want string
	}{
		{Address{Name: "Alice", Address: "a@example.com"}, "Alice <a@example.com>"},
		{Address{Address: "b@example.com"}, "b@example.com"},
		{Address{}, ""},
	}
	for _, tc := range tests {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("%+v.String() = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplaySubject(t *testing.T) {
	if got := (MessageSummary{}).DisplaySubject(); got != NoSubject {
		t.Errorf("summary placeholder = %q", got)
	}
	d := &MessageDetail{Subject: "Hi"}
	if got := d.DisplaySubject(); got != "Hi" {
		t.Errorf("detail subject = %q", got)
	}
}

func TestErrorDetail(t *testing.T) {
	d := ErrorDetail(errors.New("boom"))
	if d.Subject != "Error" || d.From.Address != "system" {
		t.Errorf("unexpected header fields: %+v", d)
	}
	if d.Text != "Failed to fetch message: boom" {
		t.Errorf("Text = %q", d.Text)
	}
}
