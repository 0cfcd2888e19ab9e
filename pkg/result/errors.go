package result

import "errors"

var (
	// ErrNotSuccessful is returned when decoding the body of a non-success result.
	ErrNotSuccessful = errors.New("result: request was not successful")

	// ErrMalformedBody is returned when a success body cannot be decoded.
	ErrMalformedBody = errors.New("result: malformed response body")
)
