package adminclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/municipio-ibarra/adminclient/core/httpclient"
	"github.com/municipio-ibarra/adminclient/core/logger"
	"github.com/municipio-ibarra/adminclient/core/session"
	"github.com/municipio-ibarra/adminclient/integration/database/redis"
	"github.com/municipio-ibarra/adminclient/integration/tokenstore/memory"
	redisstore "github.com/municipio-ibarra/adminclient/integration/tokenstore/redis"
	"github.com/municipio-ibarra/adminclient/integration/tokenstore/sqlite"
)

// Client is the admin API client. It owns exactly one session and one HTTP
// client; construct it once at the application root and share it.
type Client struct {
	cfg     Config
	session *session.Manager
	http    *httpclient.Client
	log     *slog.Logger
	closers []io.Closer
}

type options struct {
	log        *slog.Logger
	tiers      []session.Tier
	httpClient *http.Client
	registerer prometheus.Registerer
	closers    []io.Closer
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTokenTiers replaces the default in-memory token tier.
func WithTokenTiers(tiers ...session.Tier) Option {
	return func(o *options) {
		o.tiers = append(o.tiers, tiers...)
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// New builds a Client from cfg without opening any external resources. When no
// tiers are given the token is mirrored into a process-local memory tier.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	o := &options{log: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.tiers) == 0 {
		o.tiers = []session.Tier{{Name: "memory", Lifetime: session.ShortLived, Store: memory.New()}}
	}

	mgr, err := session.NewManager(
		session.WithTiers(o.tiers...),
		session.WithPersistTTL(cfg.TokenTTL),
		session.WithExpiryLeeway(cfg.ExpiryLeeway),
		session.WithLogger(o.log),
	)
	if err != nil {
		return nil, err
	}

	httpOpts := []httpclient.Option{
		httpclient.WithAuthenticator(mgr),
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithLanguage(cfg.Language),
		httpclient.WithLogger(o.log),
		httpclient.WithHTTPClient(o.httpClient),
		httpclient.WithMetrics(o.registerer),
		httpclient.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	}
	if cfg.UserAgent != "" {
		httpOpts = append(httpOpts, httpclient.WithUserAgent(cfg.UserAgent))
	}
	hc, err := httpclient.New(cfg.BaseURL, httpOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:     cfg,
		session: mgr,
		http:    hc,
		log:     o.log.With(logger.Component("adminclient")),
		closers: o.closers,
	}, nil
}

// Open builds a Client with the storage tiers named by cfg: process memory, Redis
// when cfg.Redis is enabled, and SQLite when cfg.TokenDB is set. An unreachable
// Redis is logged and skipped; a SQLite file that cannot be opened is an error.
// Call Close when done.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	o := &options{log: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	mem := memory.New()
	cleanupCtx, stopCleanup := context.WithCancel(context.WithoutCancel(ctx))
	go mem.PeriodicCleanUp(cleanupCtx, time.Minute)

	tiers := []session.Tier{{Name: "memory", Lifetime: session.ShortLived, Store: mem}}
	closers := []io.Closer{closerFunc(func() error { stopCleanup(); return nil })}

	if cfg.Redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			o.log.WarnContext(ctx, "redis token tier disabled",
				logger.Component("adminclient"),
				logger.Error(err),
			)
		} else {
			tiers = append(tiers, session.Tier{Name: "redis", Lifetime: session.ShortLived, Store: redisstore.New(rdb)})
			closers = append(closers, rdb)
		}
	}

	if cfg.TokenDB != "" {
		store, err := sqlite.Open(cfg.TokenDB)
		if err != nil {
			_ = closeAll(closers)
			return nil, errors.Join(ErrOpenTokenStore, err)
		}
		if n, err := store.DeleteExpired(ctx); err != nil || n > 0 {
			o.log.DebugContext(ctx, "expired tokens purged",
				logger.Tier("sqlite"),
				logger.Key("rows", n),
				logger.Error(err),
			)
		}
		tiers = append(tiers, session.Tier{Name: "sqlite", Lifetime: session.LongLived, Store: store})
		closers = append(closers, store)
	}

	all := append([]Option{WithTokenTiers(tiers...)}, opts...)
	all = append(all, func(o *options) { o.closers = append(o.closers, closers...) })
	c, err := New(cfg, all...)
	if err != nil {
		_ = closeAll(closers)
		return nil, err
	}
	return c, nil
}

// Close releases storage connections opened by Open.
func (c *Client) Close() error {
	return closeAll(c.closers)
}

// Session exposes the token manager.
func (c *Client) Session() *session.Manager {
	return c.session
}

// HTTP exposes the underlying normalizer for endpoints without a wrapper.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, cl := range closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
