// Package store keeps a per-session ledger of the messages the poller has
// observed and the ones the user has opened. The ledger lives in an
// in-memory database and is discarded when the process exits.
package store

import (
	"context"
)

// Ledger defines the session bookkeeping used by the poller and the UI.
type Ledger interface {
	// Record notes every id as seen and returns how many of them had not
	// been seen before in this session.
	Record(ctx context.Context, ids []string) (int, error)

	// MarkOpened flags a message as opened by the user.
	MarkOpened(ctx context.Context, id string) error

	// Opened returns the set of ids the user has opened.
	Opened(ctx context.Context) (map[string]bool, error)

	// Forget drops a message from the ledger, e.g. after it was deleted.
	Forget(ctx context.Context, id string) error

	// SeenCount returns how many distinct messages were observed.
	SeenCount(ctx context.Context) (int, error)

	Close() error
}
