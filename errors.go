package pusher

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/pusher/pkg/encryption"
)

// Error categories. Every error returned before a request is sent wraps
// exactly one of them together with a specific cause, so callers can branch
// on either with errors.Is.
var (
	// ErrInvalidConfig indicates missing or malformed client configuration.
	ErrInvalidConfig = errors.New("pusher: invalid configuration")

	// ErrInvalidInput indicates a malformed argument to a client method.
	ErrInvalidInput = errors.New("pusher: invalid input")

	// ErrEncryptionRequired indicates an encrypted channel operation on a
	// client configured without an encryption master key.
	ErrEncryptionRequired = errors.New("pusher: encryption master key not configured")
)

// Specific causes.
var (
	ErrMissingAppID  = errors.New("app id is required")
	ErrMissingKey    = errors.New("key is required")
	ErrMissingSecret = errors.New("secret is required")
	ErrInvalidURL    = errors.New("url does not match <scheme>://<key>:<secret>@<host>[:<port>]/apps/<appId>")

	ErrInvalidEventName = errors.New("event name must be 1 to 200 characters")
	ErrDataTooLarge     = errors.New("event data exceeds 10 KiB")
	ErrEmptyBatch       = errors.New("batch must contain at least one event")
	ErrBatchTooLarge    = errors.New("batch exceeds 10 events")
	ErrNotPresence      = errors.New("channel is not a presence channel")

	// ErrMultipleChannelsEncrypted is returned when an event targets an
	// encrypted channel together with any other channel.
	ErrMultipleChannelsEncrypted = errors.New("cannot trigger to multiple channels when using encrypted channels")
)

func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

func inputError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// classify puts a component error into its category.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encryption.ErrMasterKeyRequired) {
		return fmt.Errorf("%w: %w", ErrEncryptionRequired, err)
	}
	return inputError(err)
}
