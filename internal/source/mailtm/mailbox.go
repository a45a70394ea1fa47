package mailtm

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/tempmail/internal/model"
	"github.com/nhle/tempmail/internal/source"
)

const localPartChars = "abcdefghijklmnopqrstuvwxyz0123456789"

var _ source.Mailbox = (*Client)(nil)

// CreateAccount registers a random address on one of the provider's
// domains and logs in to it. The new session becomes the client's session.
func (c *Client) CreateAccount(ctx context.Context) (*Session, error) {
	domains, err := c.Domains(ctx)
	if err != nil {
		return nil, err
	}
	if len(domains) == 0 {
		return nil, &source.OpError{Op: "create account", Err: errors.New("no domains available")}
	}

	domain := domains[rand.Intn(len(domains))]
	address := randomLocalPart(10) + "@" + domain
	password := uuid.NewString()

	var account Account
	err = c.doJSON(ctx, request{
		op:     "create account",
		method: http.MethodPost,
		path:   "/accounts",
		body:   credentials{Address: address, Password: password},
		expect: []int{http.StatusOK, http.StatusCreated},
	}, &account)
	if err != nil {
		return nil, err
	}

	session, err := c.Login(ctx, address, password)
	if err != nil {
		return nil, err
	}
	session.AccountID = account.ID

	c.log.WithField("address", address).Info("mailbox created")
	return session, nil
}

// Login authenticates an existing address and attaches the session.
func (c *Client) Login(ctx context.Context, address, password string) (*Session, error) {
	var tok Token
	err := c.doJSON(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/token",
		body:   credentials{Address: address, Password: password},
		expect: []int{http.StatusOK},
	}, &tok)
	if err != nil {
		return nil, err
	}
	if tok.Token == "" {
		return nil, &source.OpError{Op: "login", Err: errors.New("response did not include a token")}
	}

	c.session = &Session{
		AccountID: tok.ID,
		Address:   address,
		Password:  password,
		Token:     tok.Token,
	}
	return c.session, nil
}

// Domains returns the names of the active domains addresses can be
// created on.
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	var resp collection[Domain]
	err := c.doJSON(ctx, request{
		op:     "list domains",
		method: http.MethodGet,
		path:   "/domains",
	}, &resp)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resp.Members))
	for _, d := range resp.Members {
		if d.IsActive && d.Domain != "" {
			names = append(names, d.Domain)
		}
	}
	return names, nil
}

// ListMessages returns the first page of the mailbox in provider order.
func (c *Client) ListMessages(ctx context.Context) ([]model.MessageSummary, error) {
	var resp collection[model.MessageSummary]
	err := c.doJSON(ctx, request{
		op:     "list messages",
		method: http.MethodGet,
		path:   "/messages",
		expect: []int{http.StatusOK},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Members == nil {
		return []model.MessageSummary{}, nil
	}
	return resp.Members, nil
}

// FetchMessage retrieves the full message with the given id.
func (c *Client) FetchMessage(ctx context.Context, id string) (*model.MessageDetail, error) {
	var msg Message
	err := c.doJSON(ctx, request{
		op:     "fetch message",
		method: http.MethodGet,
		path:   "/messages/" + url.PathEscape(id),
		expect: []int{http.StatusOK},
	}, &msg)
	if err != nil {
		return nil, err
	}
	if msg.ID == "" {
		msg.ID = id
	}
	return msg.toDetail(), nil
}

// DeleteMessage removes the message. Both 200 and 204 count as success.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{
		op:     "delete message",
		method: http.MethodDelete,
		path:   "/messages/" + url.PathEscape(id),
		expect: []int{http.StatusOK, http.StatusNoContent},
	})
	return err
}

// FetchSource downloads the raw RFC 5322 source of the message.
func (c *Client) FetchSource(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, request{
		op:     "download message",
		method: http.MethodGet,
		path:   "/messages/" + url.PathEscape(id) + "/download",
		accept: "*/*",
	})
}

// randomLocalPart returns n random lowercase alphanumeric characters.
func randomLocalPart(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(localPartChars[rand.Intn(len(localPartChars))])
	}
	return b.String()
}
