package transport

import (
	"context"
	"net/http"
	"net/url"
)

// Request is a signed call ready to be sent.
type Request struct {
	Method string
	URL    *url.URL
	Body   []byte
	Header http.Header
}

// Response is the status and body of a completed call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport executes a signed request. A non-nil error means no response was
// received; any received status, including 5xx, is a Response.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts an ordinary function to the Transport interface.
type Func func(ctx context.Context, req *Request) (*Response, error)

// Do calls f(ctx, req).
func (f Func) Do(ctx context.Context, req *Request) (*Response, error) { return f(ctx, req) }

// Middleware decorates a Transport.
type Middleware func(Transport) Transport

// Chain wraps t with middlewares; the first middleware is the outermost.
func Chain(t Transport, middlewares ...Middleware) Transport {
	for i := len(middlewares) - 1; i >= 0; i-- {
		t = middlewares[i](t)
	}
	return t
}
