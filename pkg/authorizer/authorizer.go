package authorizer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/pusher/pkg/channel"
	"github.com/dmitrymomot/pusher/pkg/encryption"
	"github.com/dmitrymomot/pusher/pkg/marshal"
	"github.com/dmitrymomot/pusher/pkg/signature"
)

// Member identifies the user joining a presence channel.
type Member struct {
	// UserID must be a non-empty string or a number.
	UserID any `json:"user_id"`
	// UserInfo is optional application data shown to other members.
	UserInfo any `json:"user_info,omitempty"`
}

func (m Member) validate() error {
	switch id := m.UserID.(type) {
	case string:
		if id == "" {
			return ErrInvalidMember
		}
	case json.Number:
		if id == "" {
			return ErrInvalidMember
		}
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
	default:
		return fmt.Errorf("%w: got %T", ErrInvalidMember, m.UserID)
	}
	return nil
}

// Document is the authorization response handed to a subscribing socket.
type Document struct {
	Auth         string
	ChannelData  string
	SharedSecret string
}

// MarshalJSON emits {"auth":...} plus channel_data or shared_secret when set.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(struct {
		Auth         string `json:"auth"`
		ChannelData  string `json:"channel_data,omitempty"`
		SharedSecret string `json:"shared_secret,omitempty"`
	}{d.Auth, d.ChannelData, d.SharedSecret})
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Issuer signs channel authorization documents. It holds immutable state and
// is safe for concurrent use.
type Issuer struct {
	key        string
	secret     []byte
	encryption encryption.Capability
	marshaller marshal.Marshaller
}

// New creates an Issuer. A nil capability disables encrypted channels; a nil
// marshaller selects marshal.Default().
func New(key string, secret []byte, enc encryption.Capability, m marshal.Marshaller) *Issuer {
	if enc == nil {
		enc = encryption.Disabled()
	}
	return &Issuer{
		key:        key,
		secret:     bytes.Clone(secret),
		encryption: enc,
		marshaller: marshal.OrDefault(m),
	}
}

// Private authorizes socketID for a private or private-encrypted channel.
// Encrypted channels additionally receive the channel's shared secret.
func (i *Issuer) Private(socketID, channelName string) (Document, error) {
	if err := validate(socketID, channelName); err != nil {
		return Document{}, err
	}

	var sharedSecret string
	switch channel.KindOf(channelName) {
	case channel.Presence:
		return Document{}, fmt.Errorf("%w: %q", ErrPresenceChannel, channelName)
	case channel.Public:
		return Document{}, fmt.Errorf("%w: %q", ErrNotAuthorizable, channelName)
	case channel.PrivateEncrypted:
		eng, err := i.encryption.Engine()
		if err != nil {
			return Document{}, err
		}
		sharedSecret = eng.SharedSecret(channelName)
	}

	return Document{
		Auth:         i.auth(socketID + ":" + channelName),
		SharedSecret: sharedSecret,
	}, nil
}

// Presence authorizes socketID for a presence channel on behalf of member.
func (i *Issuer) Presence(socketID, channelName string, member Member) (Document, error) {
	if err := validate(socketID, channelName); err != nil {
		return Document{}, err
	}

	switch channel.KindOf(channelName) {
	case channel.Private, channel.PrivateEncrypted:
		return Document{}, fmt.Errorf("%w: %q", ErrPrivateChannel, channelName)
	case channel.Public:
		return Document{}, fmt.Errorf("%w: %q", ErrNotAuthorizable, channelName)
	}

	if err := member.validate(); err != nil {
		return Document{}, err
	}
	data, err := i.marshaller.Marshal(member)
	if err != nil {
		return Document{}, fmt.Errorf("marshal presence member: %w", err)
	}
	// channel_data is always compact, whatever layout the marshaller uses.
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err == nil {
		data = compact.Bytes()
	}
	channelData := string(data)

	return Document{
		Auth:        i.auth(socketID + ":" + channelName + ":" + channelData),
		ChannelData: channelData,
	}, nil
}

// Authorize picks Presence or Private by channel kind. member is required for
// presence channels and ignored otherwise.
func (i *Issuer) Authorize(socketID, channelName string, member *Member) (Document, error) {
	if channel.KindOf(channelName) == channel.Presence {
		if member == nil {
			if err := validate(socketID, channelName); err != nil {
				return Document{}, err
			}
			return Document{}, ErrInvalidMember
		}
		return i.Presence(socketID, channelName, *member)
	}
	return i.Private(socketID, channelName)
}

func (i *Issuer) auth(message string) string {
	return i.key + ":" + signature.Sign(message, i.secret)
}

func validate(socketID, channelName string) error {
	if err := channel.ValidateSocketID(socketID); err != nil {
		return err
	}
	return channel.ValidateName(channelName)
}
