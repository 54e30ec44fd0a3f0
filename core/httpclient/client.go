package httpclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/municipio-ibarra/adminclient/core/i18n"
	"github.com/municipio-ibarra/adminclient/core/logger"
)

const (
	DefaultTimeout      = 15 * time.Second
	DefaultProbeTimeout = 3 * time.Second
	DefaultUserAgent    = "Ibarra-Municipal-App/1.0.2"
	DefaultMaxBodySize  = 16 << 20

	RequestIDHeader = "X-Request-ID"
)

// Authenticator supplies the bearer token and is told when the server rejects it.
type Authenticator interface {
	GetToken(ctx context.Context) (string, bool)
	Invalidate(ctx context.Context)
}

// Client performs requests against one base URL and normalizes every outcome
// into a Response. Safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	auth    Authenticator
	headers http.Header
	timeout time.Duration
	maxBody int64

	log     *slog.Logger
	tr      *i18n.Translator
	limiter *rate.Limiter
	metrics *metrics
	newID   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Its own Timeout should be
// zero or larger than any per-call timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the default per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAuthenticator attaches the token source.
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) {
		c.auth = a
	}
}

// WithHeader adds a default header sent on every call.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return WithHeader("User-Agent", ua)
}

// WithMaxBodySize bounds how many response bytes are read.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTranslator sets the translator for envelope texts.
func WithTranslator(tr *i18n.Translator) Option {
	return func(c *Client) {
		if tr != nil {
			c.tr = tr
		}
	}
}

// WithLanguage selects the bundled catalog language.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.tr = i18n.ClientTranslator(lang)
	}
}

// WithRateLimit throttles outgoing calls to rps with the given burst. Waiting
// counts against the call's timeout.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
		}
	}
}

// WithMetrics registers request collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		if reg != nil {
			c.metrics = newMetrics(reg)
		}
	}
}

// WithRequestIDGenerator overrides the uuid based request ID generator.
func WithRequestIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, errors.New(baseURL))
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		headers: http.Header{},
		timeout: DefaultTimeout,
		maxBody: DefaultMaxBodySize,
		log:     logger.Nop(),
		tr:      i18n.ClientTranslator(i18n.DefaultLang),
		newID:   uuid.NewString,
	}
	c.headers.Set("Content-Type", "application/json")
	c.headers.Set("Accept", "application/json")
	c.headers.Set("Cache-Control", "no-cache")
	c.headers.Set("User-Agent", DefaultUserAgent)

	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("httpclient"))
	if c.metrics == nil {
		c.metrics = noopMetrics()
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// T translates a catalog key with the client's language.
func (c *Client) T(key string, placeholders ...i18n.M) string {
	return c.tr.T(key, placeholders...)
}

func (c *Client) resolve(endpoint string, query url.Values) (*url.URL, error) {
	rel, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(rel.Path, "/")
	if rel.Path == "" {
		u.Path = c.baseURL.Path
	}
	q := rel.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return &u, nil
}
