package ghi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/ylchen07/ghi/internal/auth"
)

const defaultUserAgent = "ghi"

// Client binds the issues API of a single repository. It is safe for
// concurrent use; every call opens its own connection.
type Client struct {
	owner      string
	repository string
	secure     bool

	creds      auth.Provider
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger

	prefixOnce sync.Once
	prefix     string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used to execute requests. The
// client is copied and redirects are never followed.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			hc := *httpClient
			hc.CheckRedirect = noRedirect
			c.httpClient = &hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if strings.TrimSpace(agent) != "" {
			c.userAgent = agent
		}
	}
}

// New constructs a Client for owner/repository. In secure mode requests use
// HTTPS and reads are sent as POST with credentials in the body. A nil
// provider sends empty credentials.
func New(owner, repository string, secure bool, creds auth.Provider, opts ...Option) (*Client, error) {
	if owner == "" {
		return nil, constructionError("ghi: owner required")
	}
	if repository == "" {
		return nil, constructionError("ghi: repository required")
	}

	c := &Client{
		owner:      owner,
		repository: repository,
		secure:     secure,
		creds:      creds,
		httpClient: newHTTPClient(),
		userAgent:  defaultUserAgent,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Owner returns the repository owner the client is bound to.
func (c *Client) Owner() string { return c.owner }

// Repository returns the repository name the client is bound to.
func (c *Client) Repository() string { return c.repository }

// Secure reports whether the client uses HTTPS.
func (c *Client) Secure() bool { return c.secure }

// SetTransport overrides the underlying HTTP transport. Useful for testing.
func (c *Client) SetTransport(rt http.RoundTripper) {
	if rt == nil {
		return
	}
	c.httpClient.Transport = rt
}

func (c *Client) get(ctx context.Context, action string, args ...any) (document, error) {
	return c.call(ctx, http.MethodGet, c.path(action, args...), nil)
}

func (c *Client) post(ctx context.Context, action string, params *Params, args ...any) (document, error) {
	return c.call(ctx, http.MethodPost, c.path(action, args...), params)
}

func (c *Client) call(ctx context.Context, verb, path string, params *Params) (document, error) {
	mode := resolveMode(c.secure, verb)
	wr := buildRequest(mode, path, auth.Fetch(c.creds), params)

	c.logger.DebugContext(ctx, "ghi request",
		slog.String("method", wr.method),
		slog.String("path", path),
		slog.String("mode", mode.String()),
	)

	body, err := c.execute(ctx, wr)
	if err != nil {
		return nil, err
	}

	return decodeResponse(body)
}
