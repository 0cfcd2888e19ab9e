package transport

import "errors"

var (
	// ErrNilRequest is returned when Do is called without a request or URL.
	ErrNilRequest = errors.New("transport: request and URL are required")

	// ErrNilResponse is reported when a Transport returns neither a response nor an error.
	ErrNilResponse = errors.New("transport: nil response without error")

	// ErrResponseTooLarge is returned when a response body exceeds the configured limit.
	ErrResponseTooLarge = errors.New("transport: response body too large")
)
