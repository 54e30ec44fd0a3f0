package async

import (
	"context"
	"time"
)

// Future holds the result of a computation running in its own goroutine.
type Future[U any] struct {
	val  U
	err  error
	done chan struct{}
}

// Async runs fn(ctx, param) in a goroutine and returns its Future.
// A context canceled before the goroutine starts yields ctx.Err() without calling fn.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.val, f.err = fn(ctx, param)
	}()

	return f
}

// Await blocks until the computation completes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.val, f.err
}

// AwaitWithTimeout is Await bounded by timeout. On timeout it returns ErrTimeout
// and the computation keeps running.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.val, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result pairs a future's value with its error.
type Result[U any] struct {
	Value U
	Err   error
}

// Settle waits for every future and returns their outcomes in order.
// Unlike WaitAll it never stops at the first failure.
func Settle[U any](futures ...*Future[U]) []Result[U] {
	out := make([]Result[U], len(futures))
	for i, f := range futures {
		out[i].Value, out[i].Err = f.Await()
	}
	return out
}

// WaitAll waits for every future and returns their values in order, or the first
// error encountered.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	if len(futures) == 0 {
		return nil, ErrNoFutures
	}
	out := make([]U, len(futures))
	for i, f := range futures {
		v, err := f.Await()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// WaitAny returns the index and outcome of the first future to complete.
func WaitAny[U any](ctx context.Context, futures ...*Future[U]) (int, U, error) {
	var zero U
	if len(futures) == 0 {
		return -1, zero, ErrNoFutures
	}

	type first struct {
		idx int
		val U
		err error
	}
	ch := make(chan first, len(futures))
	for i, f := range futures {
		go func(i int, f *Future[U]) {
			v, err := f.Await()
			ch <- first{idx: i, val: v, err: err}
		}(i, f)
	}

	select {
	case r := <-ch:
		return r.idx, r.val, r.err
	case <-ctx.Done():
		return -1, zero, ctx.Err()
	}
}
