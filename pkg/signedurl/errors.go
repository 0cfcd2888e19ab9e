package signedurl

import "errors"

var (
	// ErrReservedParam is returned when a caller-supplied query parameter
	// collides with one of the authentication parameters.
	ErrReservedParam = errors.New("query parameter name is reserved for request signing")

	// ErrInvalidRequest is returned when the request is missing a method, host or path.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmptySecret is returned when the signing secret is empty.
	ErrEmptySecret = errors.New("signing secret is empty")
)
