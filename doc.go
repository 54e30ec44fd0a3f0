// Package adminclient is a client for the municipal administration API of Ibarra.
// It keeps one bearer-token session across process restarts and turns every HTTP
// exchange into a uniform response envelope that never panics and never returns
// a bare transport error.
//
// # Package Organization
//
// The module is organized into three layers:
//
//   - Core: the session manager, the request normalizer and their ambient support
//   - Integrations: token storage tiers and the Redis connection helper
//   - Wrappers: this package, one method per admin endpoint
//
// # Getting Documentation
//
// For detailed documentation on any package, use the go doc command:
//
//	go doc github.com/municipio-ibarra/adminclient/core/session
//	go doc -all github.com/municipio-ibarra/adminclient/core/httpclient
//
// # Core Packages
//
//	github.com/municipio-ibarra/adminclient/core/config     - Type-safe environment variable loading
//	github.com/municipio-ibarra/adminclient/core/httpclient - Request normalizer and response envelope
//	github.com/municipio-ibarra/adminclient/core/i18n       - Message catalog for envelope texts
//	github.com/municipio-ibarra/adminclient/core/logger     - Structured logging built on slog
//	github.com/municipio-ibarra/adminclient/core/session    - Bearer token lifecycle over storage tiers
//
// # Utility Packages
//
//	github.com/municipio-ibarra/adminclient/pkg/async - Futures for concurrent document downloads
//
// # Integration Packages
//
//	github.com/municipio-ibarra/adminclient/integration/database/redis   - Redis client with retry logic
//	github.com/municipio-ibarra/adminclient/integration/tokenstore/memory - Process-local token tier
//	github.com/municipio-ibarra/adminclient/integration/tokenstore/redis  - Shared Redis token tier
//	github.com/municipio-ibarra/adminclient/integration/tokenstore/sqlite - Durable SQLite token tier
//
// # Example Usage
//
//	cfg, err := adminclient.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := adminclient.Open(ctx, cfg, adminclient.WithLogger(logger.New()))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	login := client.Login(ctx, adminclient.LoginRequest{Username: "admin", Password: "secret"})
//	if !login.Success {
//		log.Fatal(login.Error)
//	}
//
//	pending := client.PendingProjects(ctx, adminclient.PageRequest{Size: 20})
//	for _, p := range pending.Data.Content {
//		fmt.Println(p.ID, p.DisplayName(), p.State())
//	}
//
// Wrappers return httpclient.Response values. Check Success, and on failure read
// Error for the user-facing text or Kind for the failure class.
package adminclient
