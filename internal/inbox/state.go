// Package inbox holds the message list shared between the background poller
// and the terminal UI. Every exported method is one transaction under the
// same mutex; no I/O is ever performed while it is held.
package inbox

import (
	"sync"

	"github.com/nhle/tempmail/internal/model"
)

// Snapshot is a consistent view of the list, the selection and the scroll
// offset. Messages is shared with the State and must be treated as
// read-only; the State never mutates a published slice in place.
type Snapshot struct {
	Messages []model.MessageSummary
	Selected int
	Scroll   int
}

// Len returns the number of messages.
func (s Snapshot) Len() int {
	return len(s.Messages)
}

// Current returns the selected message, if any.
func (s Snapshot) Current() (model.MessageSummary, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Messages) {
		return model.MessageSummary{}, false
	}
	return s.Messages[s.Selected], true
}

// Window returns the half-open range [start, end) of rows visible in a
// viewport of the given height. It applies scroll-follow to a local copy of
// the offset and does not modify the snapshot.
func (s Snapshot) Window(viewport int) (start, end int) {
	viewport = max(viewport, 1)
	start = follow(s.Scroll, s.Selected, viewport)
	end = min(start+viewport, len(s.Messages))
	if start > end {
		start = end
	}
	return start, end
}

// State is the guarded inbox. The zero value is an empty inbox ready to
// use.
type State struct {
	mu       sync.Mutex
	messages []model.MessageSummary
	selected int
	scroll   int
}

// New returns an empty inbox.
func New() *State {
	return &State{}
}

// Replace swaps the message list wholesale and clamps the selection and
// scroll offset into the new bounds.
func (s *State) Replace(list []model.MessageSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = list
	s.clamp()
}

// Remove drops the message with the given id, applying the same clamping as
// Replace. It reports whether a message was removed.
func (s *State) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.messages {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	next := make([]model.MessageSummary, 0, len(s.messages)-1)
	next = append(next, s.messages[:idx]...)
	next = append(next, s.messages[idx+1:]...)
	s.messages = next
	s.clamp()
	return true
}

// MarkSeen flags the message with the given id as seen.
func (s *State) MarkSeen(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.messages {
		if m.ID != id || m.Seen {
			continue
		}
		next := make([]model.MessageSummary, len(s.messages))
		copy(next, s.messages)
		next[i].Seen = true
		s.messages = next
		return
	}
}

// Read runs fn with a consistent snapshot while holding the lock. fn must
// not call back into the State.
func (s *State) Read(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.snapshot())
}

// Snapshot returns a consistent copy of the list fields.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// SelectedID resolves the id of the selected message.
func (s *State) SelectedID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.snapshot().Current()
	return m.ID, ok
}

// MoveUp moves the selection one row up, scrolling only when it passes
// the top edge of the viewport.
func (s *State) MoveUp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected > 0 {
		s.selected--
	}
	if s.selected < s.scroll {
		s.scroll = s.selected
	}
}

// MoveDown moves the selection one row down, scrolling only when it passes
// the bottom edge of a viewport of the given height.
func (s *State) MoveDown(viewport int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected < len(s.messages)-1 {
		s.selected++
	}
	s.scroll = follow(s.scroll, s.selected, max(viewport, 1))
}

// Fit re-applies scroll-follow for a new viewport height, e.g. after the
// terminal was resized.
func (s *State) Fit(viewport int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scroll = follow(s.scroll, s.selected, max(viewport, 1))
}

func (s *State) snapshot() Snapshot {
	return Snapshot{
		Messages: s.messages,
		Selected: s.selected,
		Scroll:   s.scroll,
	}
}

// clamp restores the selection and scroll invariants. Callers hold mu.
func (s *State) clamp() {
	n := len(s.messages)
	if n == 0 {
		s.selected = 0
	} else if s.selected > n-1 {
		s.selected = n - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
	s.scroll = min(max(s.scroll, 0), s.selected)
}

// follow moves scroll the minimum distance that keeps selected inside a
// viewport of the given height. It never recentres.
func follow(scroll, selected, viewport int) int {
	if selected < scroll {
		return max(selected, 0)
	}
	if selected >= scroll+viewport {
		return selected - viewport + 1
	}
	return max(scroll, 0)
}
