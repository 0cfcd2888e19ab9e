package authorizer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pusher/pkg/authorizer"
	"github.com/dmitrymomot/pusher/pkg/channel"
	"github.com/dmitrymomot/pusher/pkg/encryption"
	"github.com/dmitrymomot/pusher/pkg/marshal"
	"github.com/dmitrymomot/pusher/pkg/signature"
)

const (
	appKey    = "278d425bdf160c739803"
	appSecret = "7ad3773142a6692b25b8"
	masterKey = "VGhlIDMyIGNoYXJzIGxvbmcgZW5jcnlwdGlvbiBrZXk="
)

func newIssuer(t *testing.T, withEncryption bool) *authorizer.Issuer {
	t.Helper()
	var enc encryption.Capability = encryption.Disabled()
	if withEncryption {
		e, err := encryption.NewFromBase64(masterKey)
		require.NoError(t, err)
		enc = e
	}
	return authorizer.New(appKey, []byte(appSecret), enc, marshal.Default())
}

func marshalDoc(t *testing.T, d authorizer.Document) string {
	t.Helper()
	b, err := marshal.Default().Marshal(d)
	require.NoError(t, err)
	return string(b)
}

func TestPrivate(t *testing.T) {
	t.Parallel()
	issuer := newIssuer(t, false)

	t.Run("private channel", func(t *testing.T) {
		t.Parallel()
		doc, err := issuer.Private("1234.1234", "private-foobar")
		require.NoError(t, err)
		assert.Equal(t,
			`{"auth":"278d425bdf160c739803:58df8b0c36d6982b82c3ecf6b4662e34fe8c25bba48f5369f135bf843651c3a4"}`,
			marshalDoc(t, doc))
	})

	t.Run("complex channel name", func(t *testing.T) {
		t.Parallel()
		doc, err := issuer.Private("1234.1234", "private-azAZ9_=@,.;")
		require.NoError(t, err)
		assert.Equal(t,
			`{"auth":"278d425bdf160c739803:208cbbce2a22fd7d7c3509046b17a97b99d345cf4c195bc0d54af9004a022b0b"}`,
			marshalDoc(t, doc))
	})

	t.Run("wrong method for presence channel", func(t *testing.T) {
		t.Parallel()
		_, err := issuer.Private("1234.1234", "presence-foobar")
		assert.ErrorIs(t, err, authorizer.ErrPresenceChannel)
	})

	t.Run("public channel", func(t *testing.T) {
		t.Parallel()
		_, err := issuer.Private("1234.1234", "foobar")
		assert.ErrorIs(t, err, authorizer.ErrNotAuthorizable)
	})

	t.Run("encrypted channel without master key", func(t *testing.T) {
		t.Parallel()
		_, err := issuer.Private("1234.1234", "private-encrypted-test")
		assert.ErrorIs(t, err, encryption.ErrMasterKeyRequired)
	})
}

func TestPrivateEncrypted(t *testing.T) {
	t.Parallel()
	issuer := newIssuer(t, true)

	doc, err := issuer.Private("1234.1234", "private-encrypted-test")
	require.NoError(t, err)
	assert.Equal(t,
		`{"auth":"278d425bdf160c739803:6acb79a37e5accae226d86003eed32535d8c78bcf31c04f719d6b083d1e3c21e",`+
			`"shared_secret":"1O0FFr6NiG4d9D4A5bWBh3EG9Y/wfjzqw172LUXwVQ4"}`,
		marshalDoc(t, doc))

	// The signature is independent of the shared secret.
	plain, err := newIssuer(t, false).Private("1234.1234", "private-foobar")
	require.NoError(t, err)
	assert.Empty(t, plain.SharedSecret)
	assert.Equal(t, appKey+":"+signature.Sign("1234.1234:private-encrypted-test", []byte(appSecret)), doc.Auth)
}

func TestPresence(t *testing.T) {
	t.Parallel()
	issuer := newIssuer(t, false)

	t.Run("presence channel", func(t *testing.T) {
		t.Parallel()
		doc, err := issuer.Presence("1234.1234", "presence-foobar", authorizer.Member{
			UserID:   10,
			UserInfo: map[string]string{"name": "Mr. Pusher"},
		})
		require.NoError(t, err)
		assert.Equal(t,
			`{"auth":"278d425bdf160c739803:afaed3695da2ffd16931f457e338e6c9f2921fa133ce7dac49f529792be6304c",`+
				`"channel_data":"{\"user_id\":10,\"user_info\":{\"name\":\"Mr. Pusher\"}}"}`,
			marshalDoc(t, doc))
	})

	t.Run("string user id without info", func(t *testing.T) {
		t.Parallel()
		doc, err := issuer.Presence("1234.1234", "presence-room", authorizer.Member{UserID: "dave"})
		require.NoError(t, err)
		assert.Equal(t, `{"user_id":"dave"}`, doc.ChannelData)
		assert.Equal(t, appKey+":8328c54309bff79679842acc416c7dbce5c24ada98a7ad11efa21709195849cc", doc.Auth)
	})

	t.Run("wrong method for private channel", func(t *testing.T) {
		t.Parallel()
		for _, ch := range []string{"private-foobar", "private-encrypted-foobar"} {
			_, err := issuer.Presence("1234.1234", ch, authorizer.Member{UserID: "dave"})
			assert.ErrorIs(t, err, authorizer.ErrPrivateChannel, ch)
		}
	})

	t.Run("public channel", func(t *testing.T) {
		t.Parallel()
		_, err := issuer.Presence("1234.1234", "foobar", authorizer.Member{UserID: "dave"})
		assert.ErrorIs(t, err, authorizer.ErrNotAuthorizable)
	})

	t.Run("invalid members", func(t *testing.T) {
		t.Parallel()
		for _, m := range []authorizer.Member{
			{},
			{UserID: ""},
			{UserID: []string{"x"}},
			{UserID: map[string]int{}},
		} {
			_, err := issuer.Presence("1234.1234", "presence-room", m)
			assert.ErrorIs(t, err, authorizer.ErrInvalidMember, "%#v", m.UserID)
		}
	})

	t.Run("marshaller failure", func(t *testing.T) {
		t.Parallel()
		bad := authorizer.New(appKey, []byte(appSecret), nil, marshal.MarshalFunc(func(any) ([]byte, error) {
			return nil, assert.AnError
		}))
		_, err := bad.Presence("1234.1234", "presence-room", authorizer.Member{UserID: 1})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestInjectionBoundary(t *testing.T) {
	t.Parallel()
	issuer := newIssuer(t, false)
	member := authorizer.Member{UserID: "dave"}

	for _, id := range []string{"1.1:", "1.1\n", ":1.1", ":\n1.1", "1.1\n:", "x\n:forged-channel"} {
		_, err := issuer.Private(id, "private-foobar")
		assert.ErrorIs(t, err, channel.ErrInvalidSocketID, "%q", id)

		_, err = issuer.Presence(id, "presence-foobar", member)
		assert.ErrorIs(t, err, channel.ErrInvalidSocketID, "%q", id)
	}

	for _, ch := range []string{"private-foobar:", ":private-foobar", ":\nprivate-foobar", "private-foobar\n:", "private-foobar\n"} {
		_, err := issuer.Private("1.1", ch)
		assert.ErrorIs(t, err, channel.ErrInvalidName, "%q", ch)
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()
	issuer := newIssuer(t, true)

	doc, err := issuer.Authorize("1234.1234", "private-foobar", nil)
	require.NoError(t, err)
	assert.Empty(t, doc.ChannelData)

	doc, err = issuer.Authorize("1234.1234", "presence-foobar", &authorizer.Member{UserID: 10})
	require.NoError(t, err)
	assert.Equal(t, `{"user_id":10}`, doc.ChannelData)

	doc, err = issuer.Authorize("1234.1234", "private-encrypted-test", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.SharedSecret)

	_, err = issuer.Authorize("1234.1234", "presence-foobar", nil)
	assert.ErrorIs(t, err, authorizer.ErrInvalidMember)

	_, err = issuer.Authorize("1.1:", "presence-foobar", nil)
	assert.ErrorIs(t, err, channel.ErrInvalidSocketID)
}

func TestDocumentMarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(authorizer.Document{Auth: "k:s"})
	require.NoError(t, err)
	assert.Equal(t, `{"auth":"k:s"}`, string(b))

	b, err = authorizer.Document{Auth: "k:s", ChannelData: `{"a":"<b>"}`}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"auth":"k:s","channel_data":"{\"a\":\"<b>\"}"}`, string(b))
}

func TestPresenceChannelDataIsCompact(t *testing.T) {
	t.Parallel()

	indented := authorizer.New(appKey, []byte(appSecret), encryption.Disabled(), marshal.JSON{Indent: "  "})
	doc, err := indented.Presence("1234.1234", "presence-room", authorizer.Member{UserID: "dave"})
	require.NoError(t, err)
	assert.Equal(t, `{"user_id":"dave"}`, doc.ChannelData)
	assert.Equal(t, appKey+":8328c54309bff79679842acc416c7dbce5c24ada98a7ad11efa21709195849cc", doc.Auth)

	custom := authorizer.New(appKey, []byte(appSecret), nil, marshal.MarshalFunc(func(any) ([]byte, error) {
		return []byte(`{ "user_id" : "dave" }`), nil
	}))
	doc, err = custom.Presence("1234.1234", "presence-room", authorizer.Member{UserID: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, `{"user_id":"dave"}`, doc.ChannelData)
}
