package pusher

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/pusher/core/logger"
	"github.com/dmitrymomot/pusher/pkg/authorizer"
	"github.com/dmitrymomot/pusher/pkg/encryption"
	"github.com/dmitrymomot/pusher/pkg/marshal"
	"github.com/dmitrymomot/pusher/pkg/result"
	"github.com/dmitrymomot/pusher/pkg/signedurl"
	"github.com/dmitrymomot/pusher/pkg/transport"
	"github.com/dmitrymomot/pusher/pkg/webhook"
)

// DefaultHost is the API host used when neither a host nor a cluster is configured.
const DefaultHost = "api.pusherapp.com"

var appURLPattern = regexp.MustCompile(`^(https?)://(.+):(.+)@(.+:?.*)/apps/(.+)$`)

// Client is the server-side API client. Its configuration is fixed at
// construction and it is safe for concurrent use.
type Client struct {
	appID  string
	key    string
	secret []byte

	scheme string
	host   string

	encryption encryption.Capability
	issuer     *authorizer.Issuer
	webhooks   *webhook.Verifier
	transport  transport.Transport
	marshaller marshal.Marshaller
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a client for the application identified by appID, key and secret.
func New(appID, key, secret string, opts ...Option) (*Client, error) {
	switch {
	case appID == "":
		return nil, configError(ErrMissingAppID)
	case key == "":
		return nil, configError(ErrMissingKey)
	case secret == "":
		return nil, configError(ErrMissingSecret)
	}

	o := options{
		host:       DefaultHost,
		timeout:    transport.DefaultTimeout,
		marshaller: marshal.Default(),
		logger:     logger.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var capability encryption.Capability = encryption.Disabled()
	if o.masterKey != "" {
		engine, err := encryption.NewFromBase64(o.masterKey)
		if err != nil {
			return nil, configError(err)
		}
		capability = engine
	}

	base := o.transport
	if base == nil {
		httpOpts := []transport.HTTPOption{transport.WithTimeout(o.timeout)}
		if o.httpClient != nil {
			httpOpts = []transport.HTTPOption{transport.WithHTTPClient(o.httpClient)}
		}
		base = transport.NewHTTP(httpOpts...)
	}

	scheme := "http"
	if o.secure {
		scheme = "https"
	}

	c := &Client{
		appID:      appID,
		key:        key,
		secret:     []byte(secret),
		scheme:     scheme,
		host:       o.host,
		encryption: capability,
		marshaller: o.marshaller,
		logger:     o.logger,
		now:        o.now,
		transport: transport.Chain(base,
			transport.Retry(o.maxRetries, o.backoff),
			transport.RateLimited(transport.NewLimiter(o.rateLimit, o.rateBurst)),
			transport.Instrumented(o.metrics),
		),
	}
	c.issuer = authorizer.New(key, c.secret, capability, o.marshaller)
	c.webhooks = webhook.New(key, c.secret,
		webhook.WithEncryption(capability),
		webhook.WithLogger(o.logger),
	)

	return c, nil
}

// MustNew is New that panics on invalid configuration.
func MustNew(appID, key, secret string, opts ...Option) *Client {
	c, err := New(appID, key, secret, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// NewFromURL creates a client from <scheme>://<key>:<secret>@<host>[:<port>]/apps/<appId>.
// Options override what the URL sets.
func NewFromURL(rawURL string, opts ...Option) (*Client, error) {
	m := appURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, configError(ErrInvalidURL)
	}
	scheme, key, secret, host, appID := m[1], m[2], m[3], m[4], m[5]

	base := []Option{WithHost(host), WithSecure(scheme == "https")}
	return New(appID, key, secret, append(base, opts...)...)
}

// AppID returns the application id.
func (c *Client) AppID() string { return c.appID }

// Key returns the application key.
func (c *Client) Key() string { return c.key }

// Encryption returns the client's encryption capability.
func (c *Client) Encryption() encryption.Capability { return c.encryption }

// SignedURI returns a signed URL for a call to path. The path is used as given,
// without the /apps/<appId> prefix.
func (c *Client) SignedURI(method, path string, body []byte, params map[string]string) (*url.URL, error) {
	u, err := c.sign(method, path, body, params)
	if err != nil {
		return nil, inputError(err)
	}
	return u, nil
}

func (c *Client) sign(method, path string, body []byte, params map[string]string) (*url.URL, error) {
	return signedurl.Build(signedurl.Request{
		Method: method,
		Scheme: c.scheme,
		Host:   c.host,
		Path:   path,
		Body:   body,
		Params: params,
	}, signedurl.Credentials{Key: c.key, Secret: c.secret}, signedurl.WithClock(c.now))
}

// do signs and sends one call to an app-relative path.
func (c *Client) do(ctx context.Context, method, path string, body []byte, params map[string]string) (result.Result, error) {
	fullPath := "/apps/" + c.appID + path
	u, err := c.sign(method, fullPath, body, params)
	if err != nil {
		return result.Result{}, inputError(err)
	}

	requestID := uuid.NewString()
	start := time.Now()

	res := transport.Outcome(c.transport.Do(ctx, &transport.Request{Method: method, URL: u, Body: body}))

	attrs := []any{
		logger.RequestID(requestID),
		logger.Method(method),
		logger.Path(fullPath),
		logger.Status(res.Status.String()),
		logger.StatusCode(res.HTTPStatus),
		logger.Duration(time.Since(start)),
	}
	if res.OK() {
		c.logger.DebugContext(ctx, "pusher call", attrs...)
	} else {
		attrs = append(attrs, logger.Error(res.Error()))
		c.logger.WarnContext(ctx, "pusher call failed", attrs...)
	}

	return res, nil
}

// Get sends a signed GET to an app-relative path such as "/channels".
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (result.Result, error) {
	return c.do(ctx, "GET", path, nil, params)
}

// Post sends a signed POST with a JSON body to an app-relative path.
func (c *Client) Post(ctx context.Context, path string, body []byte) (result.Result, error) {
	if body == nil {
		body = []byte{}
	}
	return c.do(ctx, "POST", path, body, nil)
}

// serialize turns event data into the string sent in the "data" field.
// Strings and byte slices are sent verbatim.
func (c *Client) serialize(data any) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	b, err := c.marshaller.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal event data: %w", err)
	}
	return string(b), nil
}

// encodeBody serializes a request body without HTML escaping.
func encodeBody(v any) ([]byte, error) {
	return marshal.JSON{}.Marshal(v)
}
