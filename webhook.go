package pusher

import (
	"net/http"

	"github.com/dmitrymomot/pusher/pkg/webhook"
)

// ValidateWebhook checks the X-Pusher-Key and X-Pusher-Signature header
// values against the raw webhook body.
func (c *Client) ValidateWebhook(keyHeader, signatureHeader string, body []byte) webhook.Validity {
	return c.webhooks.Validate(keyHeader, signatureHeader, body)
}

// ParseWebhook validates and decodes a webhook request. Events on encrypted
// channels are decrypted when the client has a master key.
func (c *Client) ParseWebhook(r *http.Request) (*webhook.Webhook, error) {
	return c.webhooks.ParseRequest(r)
}

// WebhookMiddleware rejects invalid webhooks and exposes the parsed one
// through webhook.FromContext.
func (c *Client) WebhookMiddleware() func(http.Handler) http.Handler {
	return c.webhooks.Middleware
}
