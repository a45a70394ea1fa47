package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhle/tempmail/internal/inbox"
	"github.com/nhle/tempmail/internal/keys"
	"github.com/nhle/tempmail/internal/model"
	"github.com/nhle/tempmail/internal/source"
	"github.com/nhle/tempmail/internal/store"
	appsync "github.com/nhle/tempmail/internal/sync"
	"github.com/nhle/tempmail/internal/theme"
	"github.com/nhle/tempmail/internal/ui"
	"github.com/nhle/tempmail/internal/ui/confirm"
	helpview "github.com/nhle/tempmail/internal/ui/help"
	"github.com/nhle/tempmail/internal/ui/inboxlist"
	"github.com/nhle/tempmail/internal/ui/reader"
)

// tickInterval is how often the idle tick fires when no key arrives.
const tickInterval = 150 * time.Millisecond

// Banner texts and durations.
const (
	deletePrompt = "Delete this message?"

	noDeleteSelection = "No message selected to delete"
	noSaveSelection   = "No message selected to save"
	deleteCanceled    = "Delete canceled"
	messageDeleted    = "Message deleted"

	shortBanner  = 2 * time.Second
	normalBanner = 3 * time.Second
	longBanner   = 4 * time.Second
)

// Mode is the input mode derived from the model state.
type Mode int

const (
	ModeList Mode = iota
	ModeReading
	ModeConfirm
)

// Refresher is the part of the poller the UI drives.
type Refresher interface {
	Refresh(ctx context.Context) appsync.RefreshedMsg
	Trigger()
	Stop()
	Status() appsync.SyncStatus
	WaitForNextResult() tea.Cmd
}

// Saver writes messages to disk.
type Saver interface {
	SaveText(d *model.MessageDetail) (string, error)
	SaveRaw(id string, raw []byte) (string, error)
}

// Config wires the collaborators of the UI.
type Config struct {
	Context context.Context
	Address string
	Mailbox source.Mailbox
	Inbox   *inbox.State
	Poller  Refresher
	Saver   Saver

	// Ledger is optional.
	Ledger store.Ledger

	Logger logrus.FieldLogger

	// Now defaults to time.Now.
	Now func() time.Time
}

// banner is the transient status line. It is absent once now >= expires.
type banner struct {
	text    string
	kind    int
	expires time.Time
}

// Model is the root Bubble Tea model. Everything except the inbox is owned
// by the Update goroutine.
type Model struct {
	ctx     context.Context
	address string
	mailbox source.Mailbox
	inbox   *inbox.State
	poller  Refresher
	saver   Saver
	ledger  store.Ledger
	log     logrus.FieldLogger
	now     func() time.Time

	keys       *keys.KeyMap
	dialogKeys *keys.DialogKeyMap
	layout     ui.Layout
	help       helpview.Model
	reader     reader.Model

	dialog        confirm.Model
	confirming    bool
	pendingDelete string

	status   banner
	busy     bool
	ready    bool
	quitting bool
}

// New creates the root model.
func New(cfg Config) Model {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	km := keys.DefaultKeyMap()

	return Model{
		ctx:        ctx,
		address:    cfg.Address,
		mailbox:    cfg.Mailbox,
		inbox:      cfg.Inbox,
		poller:     cfg.Poller,
		saver:      cfg.Saver,
		ledger:     cfg.Ledger,
		log:        log.WithField("component", "ui"),
		now:        now,
		keys:       km,
		dialogKeys: keys.DefaultDialogKeyMap(),
		layout:     ui.NewLayout(80, 24),
		help:       helpview.New(km),
	}
}

// Init starts the idle tick and subscribes to poller results.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.poller.WaitForNextResult())
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	switch {
	case m.confirming:
		return ModeConfirm
	case m.reader.IsOpen():
		return ModeReading
	default:
		return ModeList
	}
}

// Update handles messages and dispatches keys to the active mode.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.inbox.Fit(m.layout.ViewportHeight())
		m.reader.SetWidth(msg.Width)
		m.help.SetWidth(msg.Width)
		m.dialog.SetWidth(msg.Width)
		return m, nil

	case tickMsg:
		if m.status.text != "" && !m.now().Before(m.status.expires) {
			m.status = banner{}
		}
		return m, tick()

	case appsync.RefreshedMsg:
		if msg.Err == nil && msg.NewCount > 0 && !m.bannerActive() {
			m.setStatus(newMessagesText(msg.NewCount), theme.BannerInfo, normalBanner)
		}
		return m, m.poller.WaitForNextResult()

	case messageFetchedMsg:
		m.busy = false
		d := msg.detail
		if msg.err != nil {
			m.log.WithError(msg.err).WithField("id", msg.id).Warn("opening message failed")
			d = model.ErrorDetail(msg.err)
		}
		m.reader.Open(d, m.layout.Width)
		return m, nil

	case confirm.ResultMsg:
		m.confirming = false
		id := m.pendingDelete
		m.pendingDelete = ""
		if !msg.Confirmed {
			m.setStatus(deleteCanceled, theme.BannerInfo, shortBanner)
			return m, nil
		}
		m.busy = true
		return m, m.deleteMessage(id)

	case deletedMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus("Delete failed: "+msg.err.Error(), theme.BannerError, longBanner)
			return m, nil
		}
		m.setStatus(messageDeleted, theme.BannerSuccess, normalBanner)
		return m, nil

	case fetchedForSaveMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus("Failed to fetch for save: "+msg.err.Error(), theme.BannerError, longBanner)
			return m, nil
		}
		return m, msg.save

	case savedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("saving message failed")
			m.setStatus("Failed to save: "+msg.err.Error(), theme.BannerError, longBanner)
			return m, nil
		}
		m.log.WithField("path", msg.path).Info("message saved")
		m.setStatus("Saved as "+msg.path, theme.BannerSuccess, longBanner)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes a key press. ForceQuit always wins; the dialog owns
// every other key while open; Quit works in list and reader modes; other
// keys are ignored while a remote call is in flight.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	if m.confirming {
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}
	if m.busy {
		return m, nil
	}

	if m.reader.IsOpen() {
		return m.handleReaderKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.inbox.MoveUp()

	case key.Matches(msg, m.keys.Down):
		m.inbox.MoveDown(m.layout.ViewportHeight())

	case key.Matches(msg, m.keys.Open):
		id, ok := m.inbox.SelectedID()
		if !ok {
			return m, nil
		}
		m.busy = true
		return m, m.fetchMessage(id)

	case key.Matches(msg, m.keys.Delete):
		id, ok := m.inbox.SelectedID()
		if !ok {
			m.setStatus(noDeleteSelection, theme.BannerInfo, normalBanner)
			return m, nil
		}
		m.pendingDelete = id
		m.dialog = confirm.New(deletePrompt, true, m.dialogKeys)
		m.dialog.SetWidth(m.layout.Width)
		m.confirming = true

	case key.Matches(msg, m.keys.Save):
		id, ok := m.inbox.SelectedID()
		if !ok {
			m.setStatus(noSaveSelection, theme.BannerInfo, normalBanner)
			return m, nil
		}
		m.busy = true
		return m, m.fetchForSave(id)

	case key.Matches(msg, m.keys.Export):
		id, ok := m.inbox.SelectedID()
		if !ok {
			m.setStatus(noSaveSelection, theme.BannerInfo, normalBanner)
			return m, nil
		}
		m.busy = true
		return m, m.fetchForExport(id)

	case key.Matches(msg, m.keys.Refresh):
		m.poller.Trigger()
	}

	return m, nil
}

func (m Model) handleReaderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.reader.ScrollUp()
	case key.Matches(msg, m.keys.Down):
		m.reader.ScrollDown(m.layout.ViewportHeight())
	case key.Matches(msg, m.keys.Back):
		m.reader.Close()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.poller.Stop()
	m.quitting = true
	return m, tea.Quit
}

// setStatus shows text in the footer for d.
func (m *Model) setStatus(text string, kind int, d time.Duration) {
	m.status = banner{text: text, kind: kind, expires: m.now().Add(d)}
}

// bannerActive reports whether the status banner is still visible.
func (m Model) bannerActive() bool {
	return m.status.text != "" && m.now().Before(m.status.expires)
}

// Status returns the visible banner text, or "" once it expired.
func (m Model) Status() string {
	if !m.bannerActive() {
		return ""
	}
	return m.status.text
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	vh := m.layout.ViewportHeight()
	var (
		header, help, footer string
		content              []string
	)

	if m.reader.IsOpen() {
		header = m.layout.RenderHeader(" "+m.reader.Title(), "")
		help = m.help.ReaderView()
		content = m.reader.Visible(vh)
		footer = m.reader.Footer(vh)
	} else {
		snap := m.inbox.Snapshot()
		header = m.layout.RenderHeader(inboxlist.Title(m.address), m.syncIndicator(snap))
		help = m.help.ListView()
		content = inboxlist.Rows(snap, vh, m.layout.Width)
		footer = inboxlist.Footer(snap, vh)
		if m.confirming {
			content = m.layout.Overlay(content, m.dialog.View())
		}
	}

	footer = theme.FooterStyle.Render(footer)
	if m.bannerActive() {
		footer = theme.BannerStyle(m.status.kind).Render(m.status.text)
	}

	return m.layout.RenderFrame(header, help, content, footer)
}

// syncIndicator summarises the poller state and the unread count.
func (m Model) syncIndicator(snap inbox.Snapshot) string {
	unread := 0
	for _, msg := range snap.Messages {
		if !msg.Seen {
			unread++
		}
	}

	var state string
	st := m.poller.Status()
	switch {
	case m.busy:
		state = "working..."
	case st.State == appsync.SyncError:
		state = "offline"
	case st.LastSync.IsZero():
		state = "connecting"
	default:
		state = "synced " + st.LastSync.Format("15:04:05")
	}

	if unread > 0 {
		return fmt.Sprintf("%d unread · %s ", unread, state)
	}
	return state + " "
}

func newMessagesText(n int) string {
	if n == 1 {
		return "1 new message"
	}
	return fmt.Sprintf("%d new messages", n)
}
