package authorizer

import "errors"

var (
	// ErrPresenceChannel is returned when a presence channel is passed to the private method.
	ErrPresenceChannel = errors.New("presence channels must be authorized with presence user data")

	// ErrPrivateChannel is returned when a private or encrypted channel is passed to the presence method.
	ErrPrivateChannel = errors.New("private channels must be authorized without presence user data")

	// ErrNotAuthorizable is returned for channels without a private-, presence- or private-encrypted- prefix.
	ErrNotAuthorizable = errors.New("channel does not require authorization")

	// ErrInvalidMember is returned when a presence member has no usable user id.
	ErrInvalidMember = errors.New("presence member requires a non-empty string or numeric user id")
)
