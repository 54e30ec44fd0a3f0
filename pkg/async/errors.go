package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the deadline passes first.
	ErrTimeout = errors.New("async: timeout waiting for result")
	// ErrNoFutures is returned when a wait helper receives no futures.
	ErrNoFutures = errors.New("async: no futures provided")
)
