package pusher

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/pusher/pkg/marshal"
	"github.com/dmitrymomot/pusher/pkg/transport"
)

type options struct {
	host       string
	secure     bool
	masterKey  string
	transport  transport.Transport
	httpClient *http.Client
	timeout    time.Duration
	marshaller marshal.Marshaller
	logger     *slog.Logger
	now        func() time.Time
	maxRetries int
	backoff    transport.Backoff
	rateLimit  float64
	rateBurst  int
	metrics    *transport.Metrics
}

// Option configures a Client.
type Option func(*options)

// WithHost sets the API host, optionally with a port.
func WithHost(host string) Option {
	return func(o *options) {
		if host != "" {
			o.host = host
		}
	}
}

// WithCluster sets the host to the API endpoint of the named cluster.
func WithCluster(cluster string) Option {
	return func(o *options) {
		if cluster != "" {
			o.host = "api-" + cluster + ".pusher.com"
		}
	}
}

// WithSecure selects https instead of http.
func WithSecure(secure bool) Option {
	return func(o *options) { o.secure = secure }
}

// WithEncryptionMasterKey enables encrypted channels with a base64 encoded 32 byte key.
func WithEncryptionMasterKey(base64Key string) Option {
	return func(o *options) { o.masterKey = base64Key }
}

// WithTransport replaces the HTTP transport. WithHTTPClient and WithTimeout
// are ignored when set; retry, rate limit and metrics options still apply.
func WithTransport(t transport.Transport) Option {
	return func(o *options) {
		if t != nil {
			o.transport = t
		}
	}
}

// WithHTTPClient sets the client used by the default transport. The client's
// own Timeout applies and WithTimeout is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithTimeout sets the per-call timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMarshaller sets how event data and presence members are serialized.
// Presence channel_data is compacted after marshalling.
func WithMarshaller(m marshal.Marshaller) Option {
	return func(o *options) {
		if m != nil {
			o.marshaller = m
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the clock used for auth_timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRetry resends calls with retryable outcomes up to maxRetries times.
// A nil backoff selects transport.DefaultBackoff.
func WithRetry(maxRetries int, backoff transport.Backoff) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
		o.backoff = backoff
	}
}

// WithRateLimit caps outgoing calls at perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *options) {
		o.rateLimit = perSecond
		o.rateBurst = burst
	}
}

// WithMetrics records call counts and latency in m.
func WithMetrics(m *transport.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
