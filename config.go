package adminclient

import (
	"time"

	"github.com/municipio-ibarra/adminclient/core/config"
	"github.com/municipio-ibarra/adminclient/integration/database/redis"
)

// Config holds client settings. Every field can be set from the environment.
type Config struct {
	BaseURL       string        `env:"ADMIN_API_BASE_URL" envDefault:"http://34.10.172.54:8080"`
	Timeout       time.Duration `env:"ADMIN_API_TIMEOUT" envDefault:"15s"`
	LoginTimeout  time.Duration `env:"ADMIN_API_LOGIN_TIMEOUT" envDefault:"10s"`
	UploadTimeout time.Duration `env:"ADMIN_API_UPLOAD_TIMEOUT" envDefault:"30s"`
	ProbeTimeout  time.Duration `env:"ADMIN_API_PROBE_TIMEOUT" envDefault:"3s"`
	UserAgent     string        `env:"ADMIN_API_USER_AGENT" envDefault:"Ibarra-Municipal-App/1.0.2"`
	Language      string        `env:"ADMIN_API_LANGUAGE" envDefault:"es"`

	// Client-side throttling; 0 disables it.
	RateLimit float64 `env:"ADMIN_API_RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"ADMIN_API_RATE_BURST" envDefault:"5"`

	// Login response field checked before the alternates.
	TokenPrimaryField string `env:"ADMIN_TOKEN_PRIMARY_FIELD" envDefault:"jwt"`
	// SQLite file for the durable token tier; empty keeps tokens in memory only.
	TokenDB string `env:"ADMIN_TOKEN_DB"`
	// Storage expiry for tokens without a readable exp.
	TokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"168h"`
	ExpiryLeeway time.Duration `env:"ADMIN_TOKEN_EXPIRY_LEEWAY" envDefault:"0s"`

	// Domain used to synthesize an email when the login response has none.
	EmailDomain string `env:"ADMIN_EMAIL_DOMAIN" envDefault:"ibarra.gob.ec"`

	// Optional shared short-lived token tier.
	Redis redis.Config
}

// DefaultConfig returns the built-in defaults without reading the environment.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "http://34.10.172.54:8080",
		Timeout:           15 * time.Second,
		LoginTimeout:      10 * time.Second,
		UploadTimeout:     30 * time.Second,
		ProbeTimeout:      3 * time.Second,
		UserAgent:         "Ibarra-Municipal-App/1.0.2",
		Language:          "es",
		RateBurst:         5,
		TokenPrimaryField: "jwt",
		TokenTTL:          7 * 24 * time.Hour,
		EmailDomain:       "ibarra.gob.ec",
		Redis: redis.Config{
			RetryAttempts:  3,
			RetryInterval:  2 * time.Second,
			ConnectTimeout: 10 * time.Second,
		},
	}
}

// LoadConfig reads Config from the environment (and a .env file when present).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
