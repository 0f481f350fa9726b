// Package apiclient talks to the content API on behalf of the admin tools.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"dsignme/internal/logging"
)

// DefaultUploadTimeout bounds a single file upload.
const DefaultUploadTimeout = 60 * time.Second

// TokenSource supplies the bearer token of the current session. An empty
// token means nobody is signed in.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns itself.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client is a typed client for the content API.
type Client struct {
	baseURL       string
	http          *http.Client
	tokens        TokenSource
	logger        *logrus.Entry
	uploadTimeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *Client) { c.logger = l }
}

func WithUploadTimeout(d time.Duration) Option {
	return func(c *Client) { c.uploadTimeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: 30 * time.Second},
		uploadTimeout: DefaultUploadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrDiscard(c.logger)
	return c
}

// WithSession returns a copy of c that authenticates as ts.
func (c *Client) WithSession(ts TokenSource) *Client {
	clone := *c
	clone.tokens = ts
	return &clone
}

// BaseURL is the API origin requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return strings.TrimSpace(c.tokens.Token())
}

// request sends a JSON request and decodes the "data" field of the
// response envelope into out. auth requests fail fast without a token.
func (c *Client) request(ctx context.Context, method, path string, body, out any, auth bool) error {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		r = bytes.NewReader(buf)
	}
	raw, err := c.send(ctx, method, path, r, "application/json", body != nil, auth)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}

// send performs the round trip and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, hasBody, auth bool) ([]byte, error) {
	token := c.token()
	if auth && token == "" {
		return nil, ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{"method": method, "path": path}).Warn("api request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, raw)
	}
	return raw, nil
}

func newError(status int, raw []byte) *Error {
	e := &Error{Status: status, Message: genericFailure}
	var body errorBody
	if json.Unmarshal(raw, &body) == nil && strings.TrimSpace(body.Error) != "" {
		e.Message = body.Error
	}
	return e
}

// categoryPath is the URL segment clients use for a category name.
func categoryPath(name string) string {
	return url.PathEscape(strings.ToLower(strings.TrimSpace(name)))
}
