// Package authorizer issues the documents a trusted backend returns to a
// realtime socket that wants to join a private, presence or encrypted channel.
//
// The document carries "<key>:<signature>" where the signature is the
// HMAC-SHA256 of "<socket_id>:<channel>" (private) or
// "<socket_id>:<channel>:<channel_data>" (presence). Encrypted channels also
// carry the channel's shared secret; the secret is never part of the signed
// string.
//
// # Usage
//
//	issuer := authorizer.New(key, []byte(secret), engine, marshal.Default())
//
//	doc, err := issuer.Private("1234.1234", "private-orders")
//	if err != nil {
//		return err
//	}
//	body, _ := json.Marshal(doc) // {"auth":"..."}
//
//	doc, err = issuer.Presence("1234.1234", "presence-room", authorizer.Member{
//		UserID:   10,
//		UserInfo: map[string]string{"name": "Mr. Pusher"},
//	})
//
// # Validation
//
// Socket ids must be two dot-separated integers and channel names must use
// the restricted character set of package channel. Colons and newlines are
// rejected anywhere in either value, since they separate the fields of the
// signed string.
//
// # Error Types
//   - ErrPresenceChannel: presence channel passed to Private
//   - ErrPrivateChannel: private or encrypted channel passed to Presence
//   - ErrNotAuthorizable: public channel
//   - ErrInvalidMember: presence member without a usable user id
//   - channel.ErrInvalidSocketID, channel.ErrInvalidName: malformed input
//   - encryption.ErrMasterKeyRequired: encrypted channel without a master key
package authorizer
