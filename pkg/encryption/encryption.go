package encryption

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/dmitrymomot/pusher/pkg/channel"
)

const (
	// MasterKeySize is the required master key length in bytes.
	MasterKeySize = 32

	// NonceSize is the secretbox nonce length in bytes.
	NonceSize = 24
)

// MasterKey is the long-lived secret every channel key is derived from.
type MasterKey [MasterKeySize]byte

// ParseMasterKey decodes a base64 master key. Padding is optional.
func ParseMasterKey(encoded string) (MasterKey, error) {
	var key MasterKey

	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return key, fmt.Errorf("%w: empty", ErrInvalidMasterKey)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return key, fmt.Errorf("%w: %v", ErrInvalidMasterKey, err)
	}
	if len(raw) != MasterKeySize {
		return key, fmt.Errorf("%w: decoded to %d bytes", ErrInvalidMasterKey, len(raw))
	}

	copy(key[:], raw)
	return key, nil
}

// DeriveSharedSecret returns SHA256(channel || key).
func DeriveSharedSecret(channelName string, key MasterKey) [32]byte {
	buf := make([]byte, 0, len(channelName)+MasterKeySize)
	buf = append(buf, channelName...)
	buf = append(buf, key[:]...)
	return sha256.Sum256(buf)
}

// Payload is an encrypted message body as sent on the wire.
type Payload struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// Capability is either a configured *Engine or Disabled().
type Capability interface {
	Engine() (*Engine, error)
}

type disabled struct{}

func (disabled) Engine() (*Engine, error) { return nil, ErrMasterKeyRequired }

// Disabled returns the capability of a client configured without a master key.
func Disabled() Capability { return disabled{} }

// Engine encrypts and decrypts channel messages. It is safe for concurrent use.
type Engine struct {
	key    MasterKey
	random io.Reader
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom overrides the nonce source. Intended for tests only; the default
// is crypto/rand and a predictable source breaks confidentiality.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) {
		if r != nil {
			e.random = r
		}
	}
}

// New creates an Engine for the given master key.
func New(key MasterKey, opts ...Option) *Engine {
	e := &Engine{key: key, random: rand.Reader}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromBase64 parses the master key and creates an Engine.
func NewFromBase64(encoded string, opts ...Option) (*Engine, error) {
	key, err := ParseMasterKey(encoded)
	if err != nil {
		return nil, err
	}
	return New(key, opts...), nil
}

// Engine implements Capability.
func (e *Engine) Engine() (*Engine, error) { return e, nil }

// SharedSecret returns the channel key as unpadded standard base64.
func (e *Engine) SharedSecret(channelName string) string {
	secret := DeriveSharedSecret(channelName, e.key)
	return base64.RawStdEncoding.EncodeToString(secret[:])
}

// Encrypt seals plaintext for an encrypted channel under a fresh random nonce.
func (e *Engine) Encrypt(channelName string, plaintext []byte) (Payload, error) {
	if !channel.IsEncrypted(channelName) {
		return Payload{}, fmt.Errorf("%w: %q", ErrNotEncryptedChannel, channelName)
	}

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(e.random, nonce[:]); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	secret := DeriveSharedSecret(channelName, e.key)
	sealed := secretbox.Seal(nil, plaintext, &nonce, &secret)

	return Payload{
		Nonce:      base64.StdEncoding.EncodeToString(nonce[:]),
		Ciphertext: base64.StdEncoding.EncodeToString(sealed),
	}, nil
}

// Decrypt opens a payload sealed for channelName.
// On any failure no plaintext is returned.
func (e *Engine) Decrypt(channelName string, p Payload) ([]byte, error) {
	rawNonce, err := base64.StdEncoding.DecodeString(p.Nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", ErrInvalidPayload, err)
	}
	if len(rawNonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrInvalidPayload, NonceSize, len(rawNonce))
	}
	sealed, err := base64.StdEncoding.DecodeString(p.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", ErrInvalidPayload, err)
	}
	if len(sealed) < secretbox.Overhead {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrInvalidPayload)
	}

	var nonce [NonceSize]byte
	copy(nonce[:], rawNonce)
	secret := DeriveSharedSecret(channelName, e.key)

	plaintext, ok := secretbox.Open(nil, sealed, &nonce, &secret)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
