// Package signedurl builds authenticated, ready-to-send URLs for REST calls.
//
// The authentication parameters (auth_key, auth_timestamp, auth_version and,
// when a body is present, body_md5) are merged with the caller's query
// parameters, the merged set is signed with the application secret and the
// signature is appended as auth_signature. The signature covers exactly the
// parameter set that is sent.
//
//	u, err := signedurl.Build(signedurl.Request{
//		Method: http.MethodPost,
//		Scheme: "https",
//		Host:   "api-eu.pusher.com",
//		Path:   "/apps/42/events",
//		Body:   body,
//	}, signedurl.Credentials{Key: key, Secret: secret})
package signedurl

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrymomot/pusher/pkg/signature"
)

// Authentication parameter names. They may not be supplied by callers.
const (
	ParamKey       = "auth_key"
	ParamTimestamp = "auth_timestamp"
	ParamVersion   = "auth_version"
	ParamSignature = "auth_signature"
	ParamBodyMD5   = "body_md5"

	// AuthVersion is the protocol version sent as auth_version.
	AuthVersion = "1.0"
)

var reserved = map[string]struct{}{
	ParamKey:       {},
	ParamTimestamp: {},
	ParamVersion:   {},
	ParamSignature: {},
	ParamBodyMD5:   {},
}

// IsReserved reports whether name is an authentication parameter.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Request describes one REST call to sign.
type Request struct {
	Method string
	Scheme string // defaults to "https" when empty
	Host   string // host with optional port
	Path   string
	Body   []byte            // nil means no body; body_md5 is omitted
	Params map[string]string // extra query parameters
}

// Credentials identify and authenticate the application.
type Credentials struct {
	Key    string
	Secret []byte
}

type options struct {
	now func() time.Time
}

// Option configures Build.
type Option func(*options)

// WithClock overrides the clock used for auth_timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Build validates req and returns the signed URL.
// Validation happens before any signing work; the caller's Params map is never modified.
func Build(req Request, creds Credentials, opts ...Option) (*url.URL, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if req.Method == "" || req.Host == "" || req.Path == "" {
		return nil, fmt.Errorf("%w: method, host and path are required", ErrInvalidRequest)
	}
	if len(creds.Secret) == 0 {
		return nil, ErrEmptySecret
	}
	for k := range req.Params {
		if IsReserved(k) {
			return nil, fmt.Errorf("%w: %q", ErrReservedParam, k)
		}
	}

	params := make(map[string]string, len(req.Params)+5)
	for k, v := range req.Params {
		params[k] = v
	}
	params[ParamKey] = creds.Key
	params[ParamVersion] = AuthVersion
	params[ParamTimestamp] = strconv.FormatInt(o.now().Unix(), 10)
	if req.Body != nil {
		params[ParamBodyMD5] = signature.BodyMD5(req.Body)
	}

	params[ParamSignature] = signature.Sign(
		signature.StringToSign(req.Method, req.Path, params),
		creds.Secret,
	)

	query := make(url.Values, len(params))
	for k, v := range params {
		query.Set(k, v)
	}

	scheme := req.Scheme
	if scheme == "" {
		scheme = "https"
	}

	return &url.URL{
		Scheme:   scheme,
		Host:     req.Host,
		Path:     req.Path,
		RawQuery: query.Encode(),
	}, nil
}
