package quantplay

import (
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

// Client talks to the QuantPlay DMS API. It is immutable after construction
// except for the underlying transport, which is created lazily on first use.
// No network activity happens at construction time.
type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	headers map[string]string

	mu   sync.Mutex
	rest *resty.Client
}

// Option adjusts client construction.
type Option func(*Client)

// WithBaseURL overrides the default service address.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient builds a client for the given API key. An empty key fails with
// an authentication error.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, newAuthenticationError()
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.headers = defaultHeaders()
	c.headers[headerAPIKey] = apiKey

	log.WithField("base_url", c.baseURL).Debug("quantplay: client initialized")
	return c, nil
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the configured per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Headers returns a copy of the header set sent on every request.
func (c *Client) Headers() map[string]string {
	out := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		out[k] = v
	}
	return out
}

// buildURL joins the base address and an endpoint path with exactly one
// separator. It does not validate interpolated segments; that belongs to
// the caller.
func (c *Client) buildURL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

// restClient returns the lazily created synchronous transport.
func (c *Client) restClient() *resty.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rest == nil {
		c.rest = resty.New().
			SetTimeout(c.timeout).
			SetHeaders(c.headers)
	}
	return c.rest
}
