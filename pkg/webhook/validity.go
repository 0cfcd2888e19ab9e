package webhook

import (
	"strings"

	"github.com/dmitrymomot/pusher/pkg/signature"
)

// Header names carrying the webhook credentials.
const (
	HeaderKey       = "X-Pusher-Key"
	HeaderSignature = "X-Pusher-Signature"
)

// Validity is the outcome of webhook signature validation.
type Validity int

const (
	Invalid Validity = iota
	Valid
	// SignedWithWrongKey means the key header names another application, so the
	// signature cannot be checked with this secret.
	SignedWithWrongKey
)

// String returns the validity name.
func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case SignedWithWrongKey:
		return "signed_with_wrong_key"
	default:
		return "invalid"
	}
}

// Err maps the validity to nil, ErrInvalidSignature or ErrWrongKey.
func (v Validity) Err() error {
	switch v {
	case Valid:
		return nil
	case SignedWithWrongKey:
		return ErrWrongKey
	default:
		return ErrInvalidSignature
	}
}

// Validate checks the key and signature headers of a webhook against the raw body.
func Validate(appKey string, secret []byte, keyHeader, signatureHeader string, body []byte) Validity {
	if strings.TrimSpace(keyHeader) != appKey {
		return SignedWithWrongKey
	}
	if len(secret) == 0 || !signature.Verify(string(body), secret, signatureHeader) {
		return Invalid
	}
	return Valid
}
