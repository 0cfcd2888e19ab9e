package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single HTTP call.
	DefaultTimeout = 4 * time.Second

	// DefaultMaxBodySize caps the response body read into memory.
	DefaultMaxBodySize int64 = 1 << 20

	// DefaultUserAgent is sent when no other user agent is configured.
	DefaultUserAgent = "pusher-http-go"
)

// HTTP is the net/http Transport.
type HTTP struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// HTTPOption configures an HTTP transport.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the underlying client. Its Timeout is left as is.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTimeout sets the per-call timeout on a copy of the current client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		if d > 0 {
			c := *h.client
			c.Timeout = d
			h.client = &c
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(h *HTTP) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithMaxBodySize caps the response body size.
func WithMaxBodySize(n int64) HTTPOption {
	return func(h *HTTP) {
		if n > 0 {
			h.maxBodySize = n
		}
	}
}

// NewHTTP creates an HTTP transport with a 4 second timeout.
func NewHTTP(opts ...HTTPOption) *HTTP {
	h := &HTTP{
		client:      &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Do implements Transport.
func (h *HTTP) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.URL == nil {
		return nil, ErrNilRequest
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("transport: read response: %w", err)
	}
	if int64(len(data)) > h.maxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, h.maxBodySize)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}
