package mailtm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/nhle/tempmail/internal/source"
)

// DefaultBaseURL is the public Mail.tm API.
const DefaultBaseURL = "https://api.mail.tm"

const (
	defaultTimeout = 10 * time.Second

	// maxBodySnippet bounds how much of an error response ends up in
	// diagnostics.
	maxBodySnippet = 200

	jsonLD = "application/ld+json"
)

// Session is the authenticated mailbox. The client holds a reference to it
// and attaches its bearer token to every request.
type Session struct {
	AccountID string
	Address   string
	Password  string
	Token     string
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	Logger         logrus.FieldLogger
	HTTPClient     *http.Client
}

// Client is a thin HTTP client for the Mail.tm REST API. It handles bearer
// authentication, JSON (de)serialization, request rate limiting and retry
// with exponential backoff on HTTP 429.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logrus.FieldLogger
	maxRetries int
	session    *Session
}

// NewClient creates a Mail.tm client. The session is attached later by
// CreateAccount or Login.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := opts.RequestsPerSec
	if rps <= 0 {
		rps = 8
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		log:        log.WithField("component", "mailtm"),
		maxRetries: 3,
	}
}

// Session returns the active session, or nil before login.
func (c *Client) Session() *Session {
	return c.session
}

// request describes one API call.
type request struct {
	op     string
	method string
	path   string
	body   interface{}
	accept string

	// expect, when set, narrows the accepted success statuses.
	expect []int
}

// do performs the request within the client's timeout and returns the raw
// response body. Every failure is returned as a *source.OpError.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + r.path

	var payload []byte
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, &source.OpError{Op: r.op, Err: fmt.Errorf("marshaling request body: %w", err)}
		}
		payload = data
	}

	accept := r.accept
	if accept == "" {
		accept = jsonLD
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &source.OpError{Op: r.op, Err: err}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, r.method, url, bodyReader)
		if err != nil {
			return nil, &source.OpError{Op: r.op, Err: fmt.Errorf("creating request: %w", err)}
		}

		req.Header.Set("Accept", accept)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.session != nil && c.session.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.session.Token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.WithError(err).WithField("path", r.path).Debug("request failed")
			return nil, &source.OpError{Op: r.op, Err: err}
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, &source.OpError{Op: r.op, Err: fmt.Errorf("reading response body: %w", readErr)}
		}

		c.log.WithFields(logrus.Fields{
			"method": r.method,
			"path":   r.path,
			"status": resp.StatusCode,
		}).Debug("api call")

		if resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return nil, &source.OpError{Op: r.op, Err: ctx.Err()}
			case <-time.After(retryAfterDuration(resp, attempt)):
				continue
			}
		}

		if !r.accepts(resp.StatusCode) {
			return nil, &source.OpError{
				Op:     r.op,
				Status: resp.StatusCode,
				Body:   snippet(respBody),
			}
		}

		return respBody, nil
	}
}

// accepts reports whether status counts as success for this request.
func (r request) accepts(status int) bool {
	if len(r.expect) > 0 {
		return slices.Contains(r.expect, status)
	}
	return status >= 200 && status < 300
}

// doJSON performs the request and decodes a JSON response into result.
// A nil result or an empty body skips decoding.
func (c *Client) doJSON(ctx context.Context, r request, result interface{}) error {
	body, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &source.OpError{Op: r.op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// 250ms, 500ms, 1s, ...
	backoff := time.Duration(1<<uint(attempt)) * 250 * time.Millisecond
	if backoff > 2*time.Second {
		backoff = 2 * time.Second
	}
	return backoff
}

// snippet returns at most maxBodySnippet characters of body.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	r := []rune(s)
	if len(r) > maxBodySnippet {
		return string(r[:maxBodySnippet])
	}
	return s
}
