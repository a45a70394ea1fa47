package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tempmail/internal/model"
)

// tickMsg is the idle tick.
type tickMsg time.Time

// messageFetchedMsg carries the result of opening a message.
type messageFetchedMsg struct {
	id     string
	detail *model.MessageDetail
	err    error
}

// deletedMsg carries the result of a confirmed delete.
type deletedMsg struct {
	id  string
	err error
}

// fetchedForSaveMsg carries the fetched message and the disk write that
// should follow it. The write runs as its own command so a slow disk
// never holds up input.
type fetchedForSaveMsg struct {
	save tea.Cmd
	err  error
}

// savedMsg reports the outcome of a disk write.
type savedMsg struct {
	path string
	err  error
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchMessage returns a command that loads a message for the reader and
// records it as opened.
func (m Model) fetchMessage(id string) tea.Cmd {
	ctx, mailbox, state, ledger, log := m.ctx, m.mailbox, m.inbox, m.ledger, m.log
	return func() tea.Msg {
		d, err := mailbox.FetchMessage(ctx, id)
		if err != nil {
			return messageFetchedMsg{id: id, err: err}
		}

		state.MarkSeen(id)
		if ledger != nil {
			if err := ledger.MarkOpened(ctx, id); err != nil {
				log.WithError(err).Warn("recording opened message failed")
			}
		}
		return messageFetchedMsg{id: id, detail: d}
	}
}

// deleteMessage returns a command that deletes a message remotely and
// then refreshes the inbox. When the refresh fails the message is removed
// locally so the list still reflects the delete.
func (m Model) deleteMessage(id string) tea.Cmd {
	ctx, mailbox, state, poller, ledger, log := m.ctx, m.mailbox, m.inbox, m.poller, m.ledger, m.log
	return func() tea.Msg {
		if err := mailbox.DeleteMessage(ctx, id); err != nil {
			log.WithError(err).WithField("id", id).Warn("delete failed")
			return deletedMsg{id: id, err: err}
		}

		if res := poller.Refresh(ctx); res.Err != nil {
			state.Remove(id)
		}
		if ledger != nil {
			if err := ledger.Forget(ctx, id); err != nil {
				log.WithError(err).Debug("forgetting deleted message failed")
			}
		}
		log.WithField("id", id).Info("message deleted")
		return deletedMsg{id: id}
	}
}

// fetchForSave returns a command that fetches a message and hands back the
// text export as a follow-up command.
func (m Model) fetchForSave(id string) tea.Cmd {
	ctx, mailbox, saver := m.ctx, m.mailbox, m.saver
	return func() tea.Msg {
		d, err := mailbox.FetchMessage(ctx, id)
		if err != nil {
			return fetchedForSaveMsg{err: err}
		}
		return fetchedForSaveMsg{save: func() tea.Msg {
			path, err := saver.SaveText(d)
			return savedMsg{path: path, err: err}
		}}
	}
}

// fetchForExport is fetchForSave for the raw source.
func (m Model) fetchForExport(id string) tea.Cmd {
	ctx, mailbox, saver := m.ctx, m.mailbox, m.saver
	return func() tea.Msg {
		raw, err := mailbox.FetchSource(ctx, id)
		if err != nil {
			return fetchedForSaveMsg{err: err}
		}
		return fetchedForSaveMsg{save: func() tea.Msg {
			path, err := saver.SaveRaw(id, raw)
			return savedMsg{path: path, err: err}
		}}
	}
}
