package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the computation outlives the timeout.
	ErrTimeout = errors.New("async: operation timed out")

	// ErrNoFutures is returned by WaitAny when called without futures.
	ErrNoFutures = errors.New("async: no futures provided")
)
