package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient/core/logger"
)

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
}

func TestHTTPAttrs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "GET", logger.Method("GET").Value.String())
	assert.Equal(t, "/health", logger.Path("/health").Value.String())
	assert.Equal(t, int64(401), logger.StatusCode(401).Value.Int64())
	assert.True(t, logger.StatusCode(0).Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, 2*time.Second, logger.Latency(2*time.Second).Value.Duration())
}

func TestTokenPreview(t *testing.T) {
	t.Parallel()

	t.Run("long token is truncated", func(t *testing.T) {
		t.Parallel()
		tok := strings.Repeat("a", 40)
		attr := logger.TokenPreview(tok)
		assert.Equal(t, "token_preview", attr.Key)
		assert.Equal(t, strings.Repeat("a", 20)+"...", attr.Value.String())
	})

	t.Run("short token is kept", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "abc", logger.Preview("abc"))
	})

	t.Run("empty token yields empty attr", func(t *testing.T) {
		t.Parallel()
		assert.True(t, logger.TokenPreview("").Equal(slog.Attr{}))
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json with attrs and level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithProduction("adminctl"),
			logger.WithOutput(&buf),
		)
		log.Debug("hidden")
		log.Info("shown", logger.Component("test"))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
		assert.Equal(t, "shown", rec["msg"])
		assert.Equal(t, "adminctl", rec["service"])
		assert.Equal(t, "production", rec["env"])
		assert.Equal(t, "test", rec["component"])
	})

	t.Run("context values are injected", func(t *testing.T) {
		t.Parallel()
		type ctxKey struct{}
		var buf bytes.Buffer
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
			logger.WithContextValue("operator", ctxKey{}),
		)
		ctx := context.WithValue(context.Background(), ctxKey{}, "admin")
		log.InfoContext(ctx, "hello")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "admin", rec["operator"])
	})

	t.Run("nop discards", func(t *testing.T) {
		t.Parallel()
		assert.False(t, logger.Nop().Enabled(context.Background(), slog.LevelError))
	})
}
