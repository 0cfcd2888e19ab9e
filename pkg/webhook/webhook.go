package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pusher/core/logger"
	"github.com/dmitrymomot/pusher/pkg/channel"
	"github.com/dmitrymomot/pusher/pkg/encryption"
)

// Webhook event names.
const (
	ChannelOccupied   = "channel_occupied"
	ChannelVacated    = "channel_vacated"
	MemberAdded       = "member_added"
	MemberRemoved     = "member_removed"
	ClientEvent       = "client_event"
	CacheMiss         = "cache_miss"
	SubscriptionCount = "subscription_count"
)

// DefaultMaxBodySize caps webhook request bodies read by ParseRequest.
const DefaultMaxBodySize int64 = 1 << 20

// Webhook is a validated callback document.
type Webhook struct {
	TimeMs int64   `json:"time_ms"`
	Events []Event `json:"events"`
}

// Event is one entry of a webhook. Fields are set according to Name.
type Event struct {
	Name              string `json:"name"`
	Channel           string `json:"channel"`
	Event             string `json:"event,omitempty"`
	Data              string `json:"data,omitempty"`
	SocketID          string `json:"socket_id,omitempty"`
	UserID            string `json:"user_id,omitempty"`
	SubscriptionCount int    `json:"subscription_count,omitempty"`
}

// Verifier validates and parses webhooks for one application.
type Verifier struct {
	key         string
	secret      []byte
	encryption  encryption.Capability
	logger      *slog.Logger
	maxBodySize int64
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithEncryption enables decryption of client events on encrypted channels.
func WithEncryption(c encryption.Capability) Option {
	return func(v *Verifier) {
		if c != nil {
			v.encryption = c
		}
	}
}

// WithLogger sets the logger used for rejected webhooks.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithMaxBodySize caps the body size read from requests.
func WithMaxBodySize(n int64) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.maxBodySize = n
		}
	}
}

// New creates a Verifier for the application key and secret.
func New(key string, secret []byte, opts ...Option) *Verifier {
	v := &Verifier{
		key:         key,
		secret:      bytes.Clone(secret),
		encryption:  encryption.Disabled(),
		logger:      logger.Discard(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks the headers against the raw body.
func (v *Verifier) Validate(keyHeader, signatureHeader string, body []byte) Validity {
	return Validate(v.key, v.secret, keyHeader, signatureHeader, body)
}

// Parse validates the body and decodes it. Client events on encrypted
// channels have their Data replaced by the decrypted plaintext.
func (v *Verifier) Parse(keyHeader, signatureHeader string, body []byte) (*Webhook, error) {
	if err := v.Validate(keyHeader, signatureHeader, body).Err(); err != nil {
		return nil, err
	}

	var wh Webhook
	if err := json.Unmarshal(body, &wh); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	for i := range wh.Events {
		ev := &wh.Events[i]
		if ev.Data == "" || !channel.IsEncrypted(ev.Channel) {
			continue
		}
		plaintext, err := v.decrypt(ev.Channel, ev.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: channel %q: %w", ErrDecryptEvent, ev.Channel, err)
		}
		ev.Data = string(plaintext)
	}

	return &wh, nil
}

func (v *Verifier) decrypt(channelName, data string) ([]byte, error) {
	eng, err := v.encryption.Engine()
	if err != nil {
		return nil, err
	}
	var p encryption.Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", encryption.ErrInvalidPayload, err)
	}
	return eng.Decrypt(channelName, p)
}

// ParseRequest reads the body of r and calls Parse with its headers.
func (v *Verifier) ParseRequest(r *http.Request) (*Webhook, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, v.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if int64(len(body)) > v.maxBodySize {
		return nil, ErrBodyTooLarge
	}
	return v.Parse(r.Header.Get(HeaderKey), r.Header.Get(HeaderSignature), body)
}

type contextKey struct{}

// FromContext returns the webhook stored by Middleware.
func FromContext(ctx context.Context) (*Webhook, bool) {
	wh, ok := ctx.Value(contextKey{}).(*Webhook)
	return wh, ok
}

// Middleware rejects requests that are not valid webhooks and passes the
// parsed webhook to next through the request context. Wrong key and bad
// signature respond 401, oversized bodies 413, anything else 400.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wh, err := v.ParseRequest(r)
		if err != nil {
			code := http.StatusBadRequest
			switch {
			case errors.Is(err, ErrWrongKey), errors.Is(err, ErrInvalidSignature):
				code = http.StatusUnauthorized
			case errors.Is(err, ErrBodyTooLarge):
				code = http.StatusRequestEntityTooLarge
			}
			v.logger.WarnContext(r.Context(), "webhook rejected",
				logger.Component("webhook"),
				logger.StatusCode(code),
				logger.Error(err),
			)
			http.Error(w, http.StatusText(code), code)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, wh)))
	})
}
