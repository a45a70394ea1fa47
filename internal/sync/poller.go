// Package sync runs the background refresh of the inbox.
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhle/tempmail/internal/inbox"
	"github.com/nhle/tempmail/internal/model"
	"github.com/nhle/tempmail/internal/source"
	"github.com/nhle/tempmail/internal/store"
)

// SyncState represents the current state of the poller.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus is a point-in-time view of the poller.
type SyncStatus struct {
	State    SyncState
	LastSync time.Time
	Error    error
}

// RefreshedMsg is a tea.Msg sent when a refresh completes. On error the
// inbox was left untouched.
type RefreshedMsg struct {
	Count    int
	NewCount int
	At       time.Time
	Err      error
}

// DefaultInterval is the delay between two background refreshes.
const DefaultInterval = 4 * time.Second

// fetchTimeout is the maximum time allowed for a single refresh.
const fetchTimeout = 30 * time.Second

// Options configures a Poller.
type Options struct {
	Interval time.Duration

	// Ledger, when set, tracks which messages are new and which were
	// opened.
	Ledger store.Ledger

	Logger logrus.FieldLogger
}

// Poller periodically lists the mailbox and swaps the result into the
// inbox. Failures never propagate: the inbox keeps its current contents.
type Poller struct {
	lister   source.Lister
	inbox    *inbox.State
	ledger   store.Ledger
	interval time.Duration
	log      logrus.FieldLogger

	resultCh  chan RefreshedMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      gosync.Mutex
	running bool
	stopped bool
	status  SyncStatus
}

// New creates a Poller that refreshes state from lister.
func New(lister source.Lister, state *inbox.State, opts Options) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Poller{
		lister:    lister,
		inbox:     state,
		ledger:    opts.Ledger,
		interval:  interval,
		log:       log.WithField("component", "poller"),
		resultCh:  make(chan RefreshedMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Run refreshes immediately and then on every interval until ctx is done or
// Stop is called. A refresh in flight is allowed to finish first. Run
// returns nil on a normal shutdown.
func (p *Poller) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running || p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.sendResult(p.Refresh(ctx))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.stopCh:
			return nil
		case <-ticker.C:
			p.sendResult(p.Refresh(ctx))
		case <-p.triggerCh:
			p.sendResult(p.Refresh(ctx))
			ticker.Reset(p.interval)
		}
	}
}

// Stop makes Run return after its current refresh. Safe to call more than
// once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	close(p.stopCh)
	p.stopped = true
}

// Trigger requests an immediate refresh from the running loop.
func (p *Poller) Trigger() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A refresh is already pending.
	}
}

// Status returns the current sync status.
func (p *Poller) Status() SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Refresh performs one synchronous refresh. Errors and panics are
// converted into the returned message; the inbox is only replaced when the
// listing succeeded.
func (p *Poller) Refresh(ctx context.Context) (res RefreshedMsg) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("refresh panicked: %v", r)
			p.log.WithError(err).Error("refresh aborted")
			p.setStatus(SyncError, err)
			res = RefreshedMsg{At: time.Now(), Err: err}
		}
	}()

	p.setStatus(SyncRunning, nil)

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	list, err := p.lister.ListMessages(ctx)
	if err != nil {
		p.log.WithError(err).Warn("listing messages failed; keeping current inbox")
		p.setStatus(SyncError, err)
		return RefreshedMsg{At: time.Now(), Err: err}
	}

	newCount := p.track(ctx, list)
	p.inbox.Replace(list)

	p.setStatus(SyncIdle, nil)
	if newCount > 0 {
		p.log.WithField("new", newCount).Info("new messages")
	}
	return RefreshedMsg{
		Count:    len(list),
		NewCount: newCount,
		At:       time.Now(),
	}
}

// track records the listed ids in the ledger and flags the ones the user
// already opened as seen. Ledger failures are logged and ignored.
func (p *Poller) track(ctx context.Context, list []model.MessageSummary) int {
	if p.ledger == nil || len(list) == 0 {
		return 0
	}

	ids := make([]string, len(list))
	for i, m := range list {
		ids[i] = m.ID
	}

	newCount, err := p.ledger.Record(ctx, ids)
	if err != nil {
		p.log.WithError(err).Warn("recording seen messages failed")
		newCount = 0
	}

	opened, err := p.ledger.Opened(ctx)
	if err != nil {
		p.log.WithError(err).Warn("reading opened messages failed")
		return newCount
	}
	for i := range list {
		if opened[list[i].ID] {
			list[i].Seen = true
		}
	}
	return newCount
}

// setStatus updates the sync status.
func (p *Poller) setStatus(state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Error = err
	if state == SyncIdle {
		p.status.LastSync = time.Now()
	}
}

// sendResult sends a RefreshedMsg on the result channel without blocking.
func (p *Poller) sendResult(msg RefreshedMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next refresh
// result. Call it again after handling a RefreshedMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
