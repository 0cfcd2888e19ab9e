// Package pusher is a server-side client for a multi-tenant pub/sub messaging
// REST API.
//
// It publishes events, authorizes realtime sockets for private, presence and
// end-to-end encrypted channels, and validates the webhooks the service sends
// back. Every call is authenticated by an HMAC-SHA256 signature computed
// locally from the application secret; no key server is involved.
//
// # Basic Usage
//
//	client, err := pusher.New("42", "app-key", "app-secret",
//		pusher.WithCluster("eu"),
//		pusher.WithSecure(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := client.Trigger(ctx, "orders", "order.created", map[string]any{"id": 42})
//	if err != nil {
//		// invalid input or missing encryption capability; nothing was sent
//	}
//	if !res.OK() && res.Status.ShouldRetry() {
//		// transient failure
//	}
//
// # Configuration
//
// NewFromURL accepts <scheme>://<key>:<secret>@<host>[:<port>]/apps/<appId>.
// NewFromEnv reads PUSHER_URL or PUSHER_APP_ID, PUSHER_KEY and PUSHER_SECRET,
// plus PUSHER_CLUSTER, PUSHER_HOST, PUSHER_SECURE, PUSHER_TIMEOUT,
// PUSHER_ENCRYPTION_MASTER_KEY_BASE64, PUSHER_MAX_RETRIES, PUSHER_RATE_LIMIT,
// PUSHER_RATE_BURST and PUSHER_METRICS.
//
// # Encrypted Channels
//
// With WithEncryptionMasterKey, events on private-encrypted- channels are
// sealed with a key derived from the master key and the channel name, and
// authorization documents for those channels carry the derived key. An event
// on an encrypted channel must target that channel alone.
//
// # Errors
//
// Errors returned before a request is sent wrap one category and one cause:
//
//	_, err := client.TriggerMulti(ctx, []string{"a", "private-encrypted-b"}, "e", data)
//	errors.Is(err, pusher.ErrInvalidInput)              // true
//	errors.Is(err, pusher.ErrMultipleChannelsEncrypted) // true
//
//   - ErrInvalidConfig: construction failed
//   - ErrInvalidInput: malformed channel, socket id, event or parameter
//   - ErrEncryptionRequired: encrypted channel without a master key
//
// Outcomes of sent requests are never errors. They are result.Result values
// whose Status says whether a retry may succeed.
//
// # Webhooks
//
//	http.Handle("/webhooks", client.WebhookMiddleware()(handler))
//
// ValidateWebhook reports webhook.SignedWithWrongKey separately from
// webhook.Invalid when the key header names another application.
package pusher
