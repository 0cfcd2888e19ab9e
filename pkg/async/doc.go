// Package async provides generic futures for running blocking calls in the
// background.
//
// The client uses it for its asynchronous execution model: TriggerAsync
// returns a *Future[result.Result] instead of blocking on the transport.
//
// # Core Types
//
// Future[U] represents the result of an asynchronous computation. It provides
// Await, AwaitWithTimeout, IsComplete and Done.
//
// # Usage
//
//	future := async.Async(ctx, params, func(ctx context.Context, p TriggerParams) (result.Result, error) {
//		return client.TriggerWithParams(ctx, p)
//	})
//
//	// Do other work...
//
//	res, err := future.Await()
//
// Using timeout:
//
//	res, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		log.Println("trigger still in flight")
//	}
//
// # Coordination Utilities
//
// WaitAll waits for all futures and returns their values in order; WaitAny
// returns as soon as one future completes:
//
//	results, err := async.WaitAll(futures...)
//	index, res, err := async.WaitAny(futures...)
//
// # Error Handling
//   - ErrTimeout: returned when AwaitWithTimeout exceeds its duration
//   - ErrNoFutures: returned when WaitAny is called with no futures
//
// # Context Support
//
// If the context is cancelled before the function starts, the future resolves
// immediately with the context's error and the function is never called.
package async
