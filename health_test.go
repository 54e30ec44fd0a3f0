package adminclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient"
)

func TestHealthCheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("any answer means available", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			assert.Empty(t, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		signIn(t, c)

		res := c.HealthCheck(ctx)
		require.True(t, res.Success)
		assert.Equal(t, "ok", res.Data.Status)
		assert.Equal(t, "Servidor disponible", res.Message)
		assert.False(t, res.Data.Timestamp.IsZero())
		assert.True(t, c.IsAuthenticated(ctx))
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()
		srv := newServer(t, func(http.ResponseWriter, *http.Request) {})
		cfg := testConfig(srv.URL)
		srv.Close()

		c, err := adminclient.New(cfg)
		require.NoError(t, err)

		res := c.HealthCheck(ctx)
		require.False(t, res.Success)
		assert.Equal(t, "unavailable", res.Data.Status)
		assert.Equal(t, "Servidor no disponible", res.Message)
		assert.Zero(t, res.Status)
	})
}

func TestServerStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"healthy", http.StatusOK, true},
		{"no content", http.StatusNoContent, true},
		{"unhealthy", http.StatusServiceUnavailable, false},
		{"missing endpoint", http.StatusNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				w.WriteHeader(tt.status)
			})
			assert.Equal(t, tt.want, c.ServerStatus(ctx))
		})
	}
}
