package adminclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient"
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) adminclient.Config {
	cfg := adminclient.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	cfg.LoginTimeout = 2 * time.Second
	cfg.ProbeTimeout = time.Second
	return cfg
}

func newClient(t *testing.T, h http.HandlerFunc) *adminclient.Client {
	t.Helper()
	srv := newServer(t, h)
	c, err := adminclient.New(testConfig(srv.URL))
	require.NoError(t, err)
	return c
}

// signIn stores a valid token directly, bypassing /auth/login.
func signIn(t *testing.T, c *adminclient.Client) string {
	t.Helper()
	tok := validToken(t)
	c.SetToken(context.Background(), tok)
	return tok
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
