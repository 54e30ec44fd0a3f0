package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient/core/session"
	"github.com/municipio-ibarra/adminclient/integration/tokenstore/sqlite"
)

var _ session.Store = (*sqlite.Store)(nil)

func openStore(t *testing.T) (*sqlite.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokens.db")
	s, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSetGetDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := openStore(t)

	_, found, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "auth_token", "first", time.Now().Add(time.Hour)))
	require.NoError(t, s.Set(ctx, "auth_token", "second", time.Now().Add(time.Hour)))

	v, found, err := s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", v)

	require.NoError(t, s.Delete(ctx, "auth_token"))
	_, found, err = s.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExpiredRowsAreHidden(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := openStore(t)

	require.NoError(t, s.Set(ctx, "old", "v", time.Now().Add(-time.Minute)))
	require.NoError(t, s.Set(ctx, "forever", "v", time.Time{}))

	_, found, err := s.Get(ctx, "old")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = s.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, found)

	n, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, path := openStore(t)

	require.NoError(t, s.Set(ctx, "auth_token", "durable", time.Now().Add(time.Hour)))
	require.NoError(t, s.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, found, err := reopened.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "durable", v)
}
