// Package webhook validates and parses callbacks sent by the messaging API.
//
// Every webhook carries the application key in X-Pusher-Key and the
// lowercase hex HMAC-SHA256 of the raw body in X-Pusher-Signature. A key that
// differs from the configured one is reported as SignedWithWrongKey rather
// than Invalid: it usually means a webhook was routed to the wrong
// application, not that someone forged it.
//
// # Basic Usage
//
//	switch webhook.Validate(key, secret, r.Header.Get(webhook.HeaderKey), r.Header.Get(webhook.HeaderSignature), body) {
//	case webhook.Valid:
//	case webhook.SignedWithWrongKey:
//	case webhook.Invalid:
//	}
//
// # Parsing
//
// A Verifier also decodes the body and decrypts client events on encrypted
// channels when constructed with an encryption capability:
//
//	v := webhook.New(key, secret, webhook.WithEncryption(engine))
//	wh, err := v.ParseRequest(r)
//	for _, ev := range wh.Events {
//		// ev.Data is plaintext for private-encrypted- channels
//	}
//
// # Middleware
//
//	mux.Handle("/webhooks", v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//		wh, _ := webhook.FromContext(r.Context())
//		// ...
//	})))
//
// # Error Types
//   - ErrWrongKey, ErrInvalidSignature: validation failed
//   - ErrMalformedBody, ErrBodyTooLarge: unreadable body
//   - ErrDecryptEvent: an encrypted event could not be decrypted
package webhook
