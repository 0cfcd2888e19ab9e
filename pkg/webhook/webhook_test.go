package webhook_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pusher/pkg/encryption"
	"github.com/dmitrymomot/pusher/pkg/signature"
	"github.com/dmitrymomot/pusher/pkg/webhook"
)

const (
	appKey    = "278d425bdf160c739803"
	appSecret = "7ad3773142a6692b25b8"
	masterKey = "VGhlIDMyIGNoYXJzIGxvbmcgZW5jcnlwdGlvbiBrZXk="
)

func sign(body string) string {
	return signature.Sign(body, []byte(appSecret))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	body := []byte(`{"time_ms":1327078148132,"events":[{"name":"channel_occupied","channel":"test_channel"}]}`)

	t.Run("known vector", func(t *testing.T) {
		t.Parallel()
		v := webhook.Validate("key", []byte("secret"), "key",
			"aa9e2e3575f5d7098b6caccd790888c36d5fdb63342a73bada2d6a51747a8494", []byte(`{"a":1}`))
		assert.Equal(t, webhook.Valid, v)
	})

	t.Run("valid with surrounding whitespace", func(t *testing.T) {
		t.Parallel()
		v := webhook.Validate(appKey, []byte(appSecret), " "+appKey+" ", sign(string(body))+"\n", body)
		assert.Equal(t, webhook.Valid, v)
		assert.NoError(t, v.Err())
	})

	t.Run("bad signature", func(t *testing.T) {
		t.Parallel()
		v := webhook.Validate(appKey, []byte(appSecret), appKey, strings.Repeat("0", 64), body)
		assert.Equal(t, webhook.Invalid, v)
		assert.ErrorIs(t, v.Err(), webhook.ErrInvalidSignature)
	})

	t.Run("tampered body", func(t *testing.T) {
		t.Parallel()
		sig := sign(string(body))
		tampered := append([]byte(nil), body...)
		tampered[len(tampered)-3] = 'X'
		assert.Equal(t, webhook.Invalid, webhook.Validate(appKey, []byte(appSecret), appKey, sig, tampered))
	})

	t.Run("different key is distinct from invalid", func(t *testing.T) {
		t.Parallel()
		v := webhook.Validate(appKey, []byte(appSecret), "some-other-key", sign(string(body)), body)
		assert.Equal(t, webhook.SignedWithWrongKey, v)
		assert.ErrorIs(t, v.Err(), webhook.ErrWrongKey)
		assert.Equal(t, "signed_with_wrong_key", v.String())
	})

	t.Run("empty secret never validates", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, webhook.Invalid, webhook.Validate(appKey, nil, appKey, signature.Sign(string(body), nil), body))
	})
}

func TestVerifierParse(t *testing.T) {
	t.Parallel()

	engine, err := encryption.NewFromBase64(masterKey)
	require.NoError(t, err)

	payload, err := engine.Encrypt("private-encrypted-room", []byte(`{"msg":"hi"}`))
	require.NoError(t, err)
	encData, err := json.Marshal(payload)
	require.NoError(t, err)

	doc, err := json.Marshal(webhook.Webhook{
		TimeMs: 1700000000000,
		Events: []webhook.Event{
			{Name: webhook.ChannelOccupied, Channel: "presence-room"},
			{Name: webhook.MemberAdded, Channel: "presence-room", UserID: "42"},
			{Name: webhook.ClientEvent, Channel: "private-encrypted-room", Event: "client-msg", Data: string(encData), SocketID: "1.1"},
			{Name: webhook.ClientEvent, Channel: "private-room", Event: "client-msg", Data: `{"plain":true}`},
		},
	})
	require.NoError(t, err)
	body := string(doc)

	t.Run("decrypts encrypted events", func(t *testing.T) {
		t.Parallel()
		v := webhook.New(appKey, []byte(appSecret), webhook.WithEncryption(engine))
		wh, err := v.Parse(appKey, sign(body), []byte(body))
		require.NoError(t, err)
		require.Len(t, wh.Events, 4)
		assert.Equal(t, int64(1700000000000), wh.TimeMs)
		assert.Equal(t, "42", wh.Events[1].UserID)
		assert.Equal(t, `{"msg":"hi"}`, wh.Events[2].Data)
		assert.Equal(t, `{"plain":true}`, wh.Events[3].Data)
	})

	t.Run("encrypted events need a master key", func(t *testing.T) {
		t.Parallel()
		_, err := webhook.New(appKey, []byte(appSecret)).Parse(appKey, sign(body), []byte(body))
		assert.ErrorIs(t, err, webhook.ErrDecryptEvent)
		assert.ErrorIs(t, err, encryption.ErrMasterKeyRequired)
	})

	t.Run("wrong master key", func(t *testing.T) {
		t.Parallel()
		var other encryption.MasterKey
		v := webhook.New(appKey, []byte(appSecret), webhook.WithEncryption(encryption.New(other)))
		_, err := v.Parse(appKey, sign(body), []byte(body))
		assert.ErrorIs(t, err, encryption.ErrDecryptionFailed)
	})

	t.Run("rejects before parsing", func(t *testing.T) {
		t.Parallel()
		v := webhook.New(appKey, []byte(appSecret))
		_, err := v.Parse("other", sign(body), []byte(body))
		assert.ErrorIs(t, err, webhook.ErrWrongKey)
		_, err = v.Parse(appKey, "bad", []byte(body))
		assert.ErrorIs(t, err, webhook.ErrInvalidSignature)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		v := webhook.New(appKey, []byte(appSecret))
		_, err := v.Parse(appKey, sign("not json"), []byte("not json"))
		assert.ErrorIs(t, err, webhook.ErrMalformedBody)
	})
}

func newWebhookRequest(body, key, sig string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(body))
	r.Header.Set(webhook.HeaderKey, key)
	r.Header.Set(webhook.HeaderSignature, sig)
	return r
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	body := `{"time_ms":1,"events":[{"name":"channel_vacated","channel":"my-channel"}]}`
	v := webhook.New(appKey, []byte(appSecret), webhook.WithMaxBodySize(512))

	handler := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wh, ok := webhook.FromContext(r.Context())
		require.True(t, ok)
		require.Len(t, wh.Events, 1)
		assert.Equal(t, webhook.ChannelVacated, wh.Events[0].Name)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name string
		req  *http.Request
		code int
	}{
		{"valid", newWebhookRequest(body, appKey, sign(body)), http.StatusNoContent},
		{"bad signature", newWebhookRequest(body, appKey, "deadbeef"), http.StatusUnauthorized},
		{"wrong key", newWebhookRequest(body, "other", sign(body)), http.StatusUnauthorized},
		{"malformed", newWebhookRequest("{", appKey, sign("{")), http.StatusBadRequest},
		{"too large", newWebhookRequest(strings.Repeat("x", 600), appKey, ""), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	_, ok := webhook.FromContext(t.Context())
	assert.False(t, ok)
}
