// Package transport executes signed REST calls.
//
// The client core only needs "send this signed request, give me a status
// code and a body, or tell me nothing came back". Transport is that single
// contract; HTTP is the net/http implementation and the middlewares add
// operational policy around it without the core knowing about them.
//
// # Usage
//
//	t := transport.Chain(
//		transport.NewHTTP(transport.WithTimeout(4*time.Second)),
//		transport.Instrumented(transport.DefaultMetrics()),
//		transport.RateLimited(transport.NewLimiter(100, 10)),
//		transport.Retry(3, transport.DefaultBackoff),
//	)
//
//	resp, err := t.Do(ctx, &transport.Request{Method: http.MethodGet, URL: u})
//
// # Middlewares
//
//   - Retry: resends while the outcome is retryable (5xx, unknown status,
//     network failure) with exponential backoff and jitter
//   - RateLimited: waits on a golang.org/x/time/rate limiter before each call
//   - Instrumented: Prometheus counter by method and outcome status, and a
//     latency histogram by method
//
// # Error Types
//   - ErrNilRequest: request or its URL is nil
//   - ErrResponseTooLarge: body exceeded the configured limit
package transport
