package pusher_test

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pusher"
	"github.com/dmitrymomot/pusher/pkg/signature"
	"github.com/dmitrymomot/pusher/pkg/signedurl"
	"github.com/dmitrymomot/pusher/pkg/transport"
)

const (
	testAppID     = "00001"
	testKey       = "278d425bdf160c739803"
	testSecret    = "7ad3773142a6692b25b8"
	testMasterKey = "VGhlIDMyIGNoYXJzIGxvbmcgZW5jcnlwdGlvbiBrZXk="
)

var fixedNow = time.Unix(1700000000, 0)

// recorder is a Transport that captures requests and replays canned outcomes.
type recorder struct {
	mu       sync.Mutex
	requests []*transport.Request
	outcomes []outcome
}

type outcome struct {
	status int
	body   string
	err    error
}

func newRecorder(outcomes ...outcome) *recorder {
	if len(outcomes) == 0 {
		outcomes = []outcome{{status: 200, body: `{}`}}
	}
	return &recorder{outcomes: outcomes}
}

func (r *recorder) Do(_ context.Context, req *transport.Request) (*transport.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
	o := r.outcomes[min(len(r.requests), len(r.outcomes))-1]
	if o.err != nil {
		return nil, o.err
	}
	return &transport.Response{StatusCode: o.status, Body: []byte(o.body)}, nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func (r *recorder) last(t *testing.T) *transport.Request {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.requests, "no request was sent")
	return r.requests[len(r.requests)-1]
}

func newClient(t *testing.T, rec *recorder, opts ...pusher.Option) *pusher.Client {
	t.Helper()
	base := []pusher.Option{pusher.WithTransport(rec), pusher.WithClock(func() time.Time { return fixedNow })}
	c, err := pusher.New(testAppID, testKey, testSecret, append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func decodeBody(t *testing.T, req *transport.Request) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &m))
	return m
}

// verifySigned recomputes the signature of a sent request.
func verifySigned(t *testing.T, req *transport.Request, secret string) url.Values {
	t.Helper()
	q := req.URL.Query()
	params := map[string]string{}
	for k := range q {
		if k != signedurl.ParamSignature {
			params[k] = q.Get(k)
		}
	}
	expected := signature.Sign(signature.StringToSign(req.Method, req.URL.Path, params), []byte(secret))
	require.Equal(t, expected, q.Get(signedurl.ParamSignature), "signature mismatch")
	if req.Body != nil {
		require.Equal(t, signature.BodyMD5(req.Body), q.Get(signedurl.ParamBodyMD5))
	}
	return q
}
