package transport

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited delays each request until limiter admits it. A context
// cancelled while waiting is returned as a transport error.
func RateLimited(limiter *rate.Limiter) Middleware {
	return func(next Transport) Transport {
		if limiter == nil {
			return next
		}
		return Func(func(ctx context.Context, req *Request) (*Response, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
			return next.Do(ctx, req)
		})
	}
}

// NewLimiter returns a limiter for perSecond requests with the given burst,
// or nil when perSecond <= 0.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
