package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient/pkg/async"
)

func double(_ context.Context, n int) (int, error) {
	return n * 2, nil
}

func TestAsyncAwait(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, double)
	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, f.IsComplete())
}

func TestAsyncCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	f := async.Async(ctx, 1, func(context.Context, int) (int, error) {
		called = true
		return 1, nil
	})
	_, err := f.Await()
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 1, nil
	})

	_, err := f.AwaitWithTimeout(20 * time.Millisecond)
	require.ErrorIs(t, err, async.ErrTimeout)
	assert.False(t, f.IsComplete())

	close(release)
	v, err := f.AwaitWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSettle(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	ctx := context.Background()

	results := async.Settle(
		async.Async(ctx, 1, double),
		async.Async(ctx, 2, func(context.Context, int) (int, error) { return 0, boom }),
		async.Async(ctx, 3, double),
	)
	require.Len(t, results, 3)
	assert.Equal(t, 2, results[0].Value)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, 6, results[2].Value)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("all succeed", func(t *testing.T) {
		t.Parallel()
		vals, err := async.WaitAll(async.Async(ctx, 1, double), async.Async(ctx, 5, double))
		require.NoError(t, err)
		assert.Equal(t, []int{2, 10}, vals)
	})

	t.Run("first error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		_, err := async.WaitAll(
			async.Async(ctx, 1, double),
			async.Async(ctx, 1, func(context.Context, int) (int, error) { return 0, boom }),
		)
		require.ErrorIs(t, err, boom)
	})

	t.Run("no futures", func(t *testing.T) {
		t.Parallel()
		_, err := async.WaitAll[int]()
		require.ErrorIs(t, err, async.ErrNoFutures)
	})
}

func TestWaitAny(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	block := make(chan struct{})
	defer close(block)

	slow := async.Async(ctx, 0, func(context.Context, int) (int, error) {
		<-block
		return 0, nil
	})
	fast := async.Async(ctx, 4, double)

	idx, v, err := async.WaitAny(ctx, slow, fast)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 8, v)

	_, _, err = async.WaitAny[int](ctx)
	require.ErrorIs(t, err, async.ErrNoFutures)
}
