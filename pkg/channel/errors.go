package channel

import "errors"

// Validation errors that can be checked with errors.Is().
var (
	// ErrInvalidName indicates a channel name that is empty, too long or
	// contains characters outside the allowed set (including ':' and newlines).
	ErrInvalidName = errors.New("invalid channel name")

	// ErrInvalidSocketID indicates a socket id that is not two dot-separated integers.
	ErrInvalidSocketID = errors.New("invalid socket id")

	// ErrNoChannels indicates an empty channel list.
	ErrNoChannels = errors.New("at least one channel is required")

	// ErrTooManyChannels indicates a channel list above MaxTriggerChannels.
	ErrTooManyChannels = errors.New("too many channels")
)
