package session

import (
	"log/slog"
	"time"

	"github.com/municipio-ibarra/adminclient/core/logger"
)

// Config holds token manager configuration.
type Config struct {
	Keys  Keys
	Tiers []Tier

	// PersistTTL is the storage expiry used when the token carries no usable exp.
	PersistTTL time.Duration
	// ExpiryLeeway treats tokens as expired this long before their exp.
	ExpiryLeeway time.Duration

	Logger *slog.Logger
	Now    func() time.Time
}

func defaultConfig() *Config {
	return &Config{
		Keys:       DefaultKeys(),
		PersistTTL: 7 * 24 * time.Hour,
		Logger:     logger.Nop(),
		Now:        time.Now,
	}
}

// Option is a functional option for configuring the token manager.
type Option func(*Config)

// WithKeys overrides the canonical and legacy storage keys.
func WithKeys(keys Keys) Option {
	return func(c *Config) {
		c.Keys = keys
	}
}

// WithTiers appends storage tiers. Short-lived tiers are always consulted before
// long-lived ones regardless of the order given here.
func WithTiers(tiers ...Tier) Option {
	return func(c *Config) {
		c.Tiers = append(c.Tiers, tiers...)
	}
}

// WithPersistTTL sets the fallback storage expiry.
func WithPersistTTL(ttl time.Duration) Option {
	return func(c *Config) {
		if ttl > 0 {
			c.PersistTTL = ttl
		}
	}
}

// WithExpiryLeeway sets how early a token is considered expired. Default 0.
func WithExpiryLeeway(d time.Duration) Option {
	return func(c *Config) {
		c.ExpiryLeeway = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.Now = now
		}
	}
}
