package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient/core/httpclient"
)

type fakeAuth struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (a *fakeAuth) GetToken(context.Context) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token, a.token != ""
}

func (a *fakeAuth) Invalidate(context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	a.invalidated++
}

func (a *fakeAuth) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.invalidated
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, url string, opts ...httpclient.Option) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(url, opts...)
	require.NoError(t, err)
	return c
}
