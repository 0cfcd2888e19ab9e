package pusher_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pusher"
	"github.com/dmitrymomot/pusher/pkg/encryption"
	"github.com/dmitrymomot/pusher/pkg/signature"
	"github.com/dmitrymomot/pusher/pkg/webhook"
)

func newWebhook(t *testing.T, body, key, sig string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/webhooks", bytes.NewBufferString(body))
	r.Header.Set(webhook.HeaderKey, key)
	r.Header.Set(webhook.HeaderSignature, sig)
	return r
}

func TestValidateWebhook(t *testing.T) {
	t.Parallel()

	c := newClient(t, newRecorder())
	body := []byte(`{"time_ms":1327078148132,"events":[{"name":"channel_occupied","channel":"test_channel"}]}`)
	sig := signature.Sign(string(body), []byte(testSecret))

	assert.Equal(t, webhook.Valid, c.ValidateWebhook(testKey, sig, body))
	assert.Equal(t, webhook.Invalid, c.ValidateWebhook(testKey, "bad", body))
	assert.Equal(t, webhook.SignedWithWrongKey, c.ValidateWebhook("other", sig, body))
}

func TestParseWebhook(t *testing.T) {
	t.Parallel()

	eng, err := encryption.NewFromBase64(testMasterKey)
	require.NoError(t, err)
	payload, err := eng.Encrypt("private-encrypted-room", []byte(`{"text":"hi"}`))
	require.NoError(t, err)
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	doc, err := json.Marshal(webhook.Webhook{
		TimeMs: 1,
		Events: []webhook.Event{
			{Name: webhook.ClientEvent, Channel: "private-encrypted-room", Event: "client-msg", Data: string(data), SocketID: "1.1"},
			{Name: webhook.MemberAdded, Channel: "presence-room", UserID: "42"},
		},
	})
	require.NoError(t, err)
	body := string(doc)
	sig := signature.Sign(body, []byte(testSecret))

	t.Run("decrypts encrypted events", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, newRecorder(), pusher.WithEncryptionMasterKey(testMasterKey))
		wh, err := c.ParseWebhook(newWebhook(t, body, testKey, sig))
		require.NoError(t, err)
		require.Len(t, wh.Events, 2)
		assert.Equal(t, `{"text":"hi"}`, wh.Events[0].Data)
		assert.Equal(t, "42", wh.Events[1].UserID)
	})

	t.Run("encrypted events need a key", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, newRecorder())
		_, err := c.ParseWebhook(newWebhook(t, body, testKey, sig))
		assert.ErrorIs(t, err, webhook.ErrDecryptEvent)
		assert.ErrorIs(t, err, encryption.ErrMasterKeyRequired)
	})

	t.Run("invalid signature", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, newRecorder())
		_, err := c.ParseWebhook(newWebhook(t, body, testKey, "deadbeef"))
		assert.ErrorIs(t, err, webhook.ErrInvalidSignature)
	})
}

func TestWebhookMiddleware(t *testing.T) {
	t.Parallel()

	c := newClient(t, newRecorder())
	body := `{"time_ms":1,"events":[{"name":"channel_vacated","channel":"room"}]}`
	sig := signature.Sign(body, []byte(testSecret))

	h := c.WebhookMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wh, ok := webhook.FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, webhook.ChannelVacated, wh.Events[0].Name)
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, newWebhook(t, body, testKey, sig))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, newWebhook(t, body, "other", sig))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
