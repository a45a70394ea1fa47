package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/tempmail/internal/model"
)

// OpError is the single failure shape for every remote mailbox operation.
// Its message reads "<op> failed: <reason>".
type OpError struct {
	// Op names the operation, e.g. "fetch message".
	Op string

	// Status is the HTTP status code, or 0 for transport failures.
	Status int

	// Body holds at most the first 200 characters of the response body.
	Body string

	Err error
}

func (e *OpError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s failed: HTTP %d - %s", e.Op, e.Status, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	default:
		return e.Op + " failed"
	}
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err (or any error in its chain) is an OpError
// carrying the given HTTP status.
func IsStatus(err error, status int) bool {
	var opErr *OpError
	return errors.As(err, &opErr) && opErr.Status == status
}

// Lister is the part of a mailbox the background poller needs.
type Lister interface {
	// ListMessages returns the current message summaries in provider order.
	ListMessages(ctx context.Context) ([]model.MessageSummary, error)
}

// Mailbox defines the remote operations available on an authenticated
// mailbox session.
type Mailbox interface {
	Lister

	// FetchMessage retrieves the full detail of one message.
	FetchMessage(ctx context.Context, id string) (*model.MessageDetail, error)

	// DeleteMessage removes one message from the mailbox.
	DeleteMessage(ctx context.Context, id string) error

	// FetchSource retrieves the raw RFC 5322 source of one message.
	FetchSource(ctx context.Context, id string) ([]byte, error)
}
