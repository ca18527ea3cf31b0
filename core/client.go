package core

import (
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration of a Client. It is copied at construction
// and never changes afterwards.
type Config struct {
	// BoxID names the box in errors and telemetry (e.g., "textbox").
	BoxID string

	// BaseURL is where the box is reachable, e.g. http://localhost:8080.
	BaseURL string

	// Timeout bounds each call, retries included. Zero means no timeout beyond the caller's context.
	Timeout time.Duration

	// HTTPClient backs the default transport. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Transport overrides the HTTP transport entirely.
	Transport Transport

	// Codec encodes request payloads and decodes responses. Defaults to JSONCodec.
	Codec Codec

	// Telemetry receives call lifecycle events. Defaults to NoopTelemetryHook.
	Telemetry TelemetryHook

	// Headers contains extra headers to include in every request.
	Headers http.Header

	// Username and Password enable HTTP basic auth (MB_BASICAUTH_USER/PASS on the box).
	Username string
	Password Secret

	// RequestIDs, when set, sends a generated X-Request-ID with every call.
	RequestIDs bool
}

// Option configures a Client.
type Option func(*Config)

// WithBoxID sets the box identifier used in errors and telemetry.
func WithBoxID(id string) Option {
	return func(c *Config) {
		c.BoxID = id
	}
}

// WithTimeout bounds each call as a whole, retries and backoff included.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client for the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTransport replaces the transport.
func WithTransport(t Transport) Option {
	return func(c *Config) {
		c.Transport = t
	}
}

// WithCodec replaces the codec.
func WithCodec(codec Codec) Option {
	return func(c *Config) {
		if codec != nil {
			c.Codec = codec
		}
	}
}

// WithTelemetry sets the telemetry hook.
func WithTelemetry(h TelemetryHook) Option {
	return func(c *Config) {
		if h != nil {
			c.Telemetry = h
		}
	}
}

// WithHeader adds an extra header to include in requests. Repeated calls
// with the same key send every value. A configured key replaces the
// client's own value for it, such as User-Agent.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Add(key, value)
	}
}

// WithBasicAuth enables HTTP basic auth.
func WithBasicAuth(username, password string) Option {
	return func(c *Config) {
		c.Username = username
		c.Password = NewSecret(password)
	}
}

// WithRequestIDs enables generated X-Request-ID headers.
func WithRequestIDs() Option {
	return func(c *Config) {
		c.RequestIDs = true
	}
}

// Client issues calls to one box instance.
// Client is immutable and safe for concurrent use.
type Client struct {
	config    Config
	transport Transport
}

// New creates a Client for the box at baseURL. No I/O happens and the URL is
// not checked here; an unreachable or malformed URL surfaces as an
// ErrTransport failure on the first call.
func New(baseURL string, opts ...Option) *Client {
	cfg := Config{
		BaseURL:   baseURL,
		Codec:     JSONCodec{},
		Telemetry: NoopTelemetryHook{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Headers = cfg.Headers.Clone()

	transport := cfg.Transport
	if transport == nil {
		transport = NewHTTPTransport(cfg.HTTPClient)
	}

	return &Client{config: cfg, transport: transport}
}

// ID returns the box identifier.
func (c *Client) ID() string {
	return c.config.BoxID
}

// BaseURL returns the base URL the client was built with, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Timeout returns the whole-call timeout, zero if none.
func (c *Client) Timeout() time.Duration {
	return c.config.Timeout
}

// buildHeaders constructs the HTTP headers for a request.
func (c *Client) buildHeaders(contentType, requestID string) http.Header {
	headers := make(http.Header)

	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", userAgent)
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}
	if requestID != "" {
		headers.Set(requestIDHeader, requestID)
	}
	if c.config.Username != "" || !c.config.Password.IsEmpty() {
		headers.Set("Authorization", basicAuth(c.config.Username, c.config.Password.Expose()))
	}

	for key, values := range c.config.Headers {
		headers[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}

	return headers
}
