// Package config loads environment variables into typed structs using
// caarlos0/env. A .env file in the working directory is loaded once on first use.
//
//	type ClientConfig struct {
//		BaseURL string        `env:"ADMIN_API_BASE_URL" envDefault:"http://localhost:8080"`
//		Timeout time.Duration `env:"ADMIN_API_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Each configuration type is parsed only once per process; later Load calls for the
// same type return the cached value. Parse bypasses the cache, which is handy in
// tests that set variables with t.Setenv.
package config
