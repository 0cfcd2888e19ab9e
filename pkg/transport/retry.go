package transport

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/dmitrymomot/pusher/pkg/result"
)

// Backoff returns the delay before retry number attempt (starting at 1).
type Backoff interface {
	Next(attempt int) time.Duration
}

// ExponentialBackoff grows the delay by Multiplier per attempt up to MaxInterval.
type ExponentialBackoff struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	// JitterFactor in [0,1] randomizes each delay by up to that fraction.
	JitterFactor float64
}

// DefaultBackoff is used by Retry when no backoff is given.
var DefaultBackoff = ExponentialBackoff{
	InitialInterval: 100 * time.Millisecond,
	MaxInterval:     2 * time.Second,
	Multiplier:      2,
	JitterFactor:    0.1,
}

// Next implements Backoff.
func (b ExponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	mult := b.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(b.InitialInterval) * math.Pow(mult, float64(attempt-1))
	if b.MaxInterval > 0 && d > float64(b.MaxInterval) {
		d = float64(b.MaxInterval)
	}
	if j := math.Min(math.Max(b.JitterFactor, 0), 1); j > 0 {
		d += d * j * (2*rand.Float64() - 1)
	}
	return time.Duration(d)
}

// Retry resends a request up to maxRetries times while its outcome is
// retryable per result.Status.ShouldRetry. A cancelled context stops retrying
// and returns the last outcome. maxRetries <= 0 disables the middleware.
func Retry(maxRetries int, backoff Backoff) Middleware {
	if backoff == nil {
		backoff = DefaultBackoff
	}
	return func(next Transport) Transport {
		if maxRetries <= 0 {
			return next
		}
		return Func(func(ctx context.Context, req *Request) (*Response, error) {
			var (
				resp *Response
				err  error
			)
			for attempt := 0; ; attempt++ {
				resp, err = next.Do(ctx, req)
				if attempt >= maxRetries || !retryable(resp, err) {
					return resp, err
				}

				timer := time.NewTimer(backoff.Next(attempt + 1))
				select {
				case <-ctx.Done():
					timer.Stop()
					return resp, err
				case <-timer.C:
				}
			}
		})
	}
}

func retryable(resp *Response, err error) bool {
	return Outcome(resp, err).Status.ShouldRetry()
}

// Outcome classifies what a Transport returned. A nil response without an
// error is a NetworkError wrapping ErrNilResponse.
func Outcome(resp *Response, err error) result.Result {
	switch {
	case err != nil:
		return result.FromError(err)
	case resp == nil:
		return result.FromError(ErrNilResponse)
	default:
		return result.FromResponse(resp.StatusCode, resp.Body)
	}
}
