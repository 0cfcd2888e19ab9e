package async

import (
	"context"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	value U
	err   error
	done  chan struct{}
}

// Await blocks until the computation completes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits at most timeout for the computation.
// On timeout it returns ErrTimeout; the computation keeps running.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
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

// Done returns a channel closed when the computation completes.
func (f *Future[U]) Done() <-chan struct{} { return f.done }

// Async runs fn(ctx, param) in its own goroutine.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Pre-cancelled contexts never start fn.
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.value, f.err = fn(ctx, param)
	}()

	return f
}

// Completed returns an already resolved future.
func Completed[U any](value U, err error) *Future[U] {
	f := &Future[U]{value: value, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// WaitAll waits for every future and returns their values in order.
// The first error encountered, in order, is returned with the values collected so far.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	values := make([]U, 0, len(futures))
	for _, f := range futures {
		v, err := f.Await()
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
	return values, nil
}

// WaitAny returns the index, value and error of the first future to complete.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	if len(futures) == 0 {
		var zero U
		return -1, zero, ErrNoFutures
	}

	first := make(chan int, len(futures))
	for i, f := range futures {
		go func() {
			<-f.done
			first <- i
		}()
	}

	i := <-first
	return i, futures[i].value, futures[i].err
}
