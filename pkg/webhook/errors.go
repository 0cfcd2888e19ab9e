package webhook

import "errors"

var (
	// ErrWrongKey indicates the webhook was signed for a different application key.
	ErrWrongKey = errors.New("webhook signed with a different application key")

	// ErrInvalidSignature indicates the signature header does not match the body.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrMalformedBody indicates a body that is not a webhook JSON document.
	ErrMalformedBody = errors.New("malformed webhook body")

	// ErrBodyTooLarge indicates a request body above the configured limit.
	ErrBodyTooLarge = errors.New("webhook body too large")

	// ErrDecryptEvent indicates an encrypted channel event could not be decrypted.
	ErrDecryptEvent = errors.New("failed to decrypt webhook event")
)
