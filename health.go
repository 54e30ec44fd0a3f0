package adminclient

import (
	"context"
	"net/http"
	"time"

	"github.com/municipio-ibarra/adminclient/core/httpclient"
)

// Health is the outcome of a reachability check.
type Health struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Latency   time.Duration `json:"latency"`
}

// HealthCheck sends HEAD to the base URL. Any HTTP answer, whatever its status,
// means the server is reachable.
func (c *Client) HealthCheck(ctx context.Context) httpclient.Response[Health] {
	r := c.http.Probe(ctx, c.cfg.ProbeTimeout)
	h := Health{Status: "unavailable", Timestamp: time.Now().UTC(), Latency: r.Data.Latency}
	if r.Data.Available {
		h.Status = "ok"
	}
	return httpclient.Convert(r, h)
}

// ServerStatus reports whether GET /health answers with a 2xx status.
func (c *Client) ServerStatus(ctx context.Context) bool {
	r := httpclient.Do[struct{}](ctx, c.http, httpclient.Request{
		Method:   http.MethodGet,
		Endpoint: "/health",
		Timeout:  c.cfg.ProbeTimeout,
		SkipAuth: true,
	})
	return r.Success
}
