// Package result classifies the outcome of a REST call into a closed taxonomy
// that tells the caller whether the same request may be retried unmodified.
//
// Classification never retries and never fails: every status code and every
// transport error maps onto exactly one Status.
//
//	res := result.FromResponse(resp.StatusCode, body)
//	if !res.OK() && res.Status.ShouldRetry() {
//		// back off and try again
//	}
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Status is the outcome class of a call.
type Status int

const (
	UnknownError Status = iota
	Success
	ClientError
	AuthenticationError
	QuotaExceeded
	NotFound
	ServerError
	NetworkError
)

var statusNames = map[Status]string{
	Success:             "success",
	ClientError:         "client_error",
	AuthenticationError: "authentication_error",
	QuotaExceeded:       "quota_exceeded",
	NotFound:            "not_found",
	ServerError:         "server_error",
	NetworkError:        "network_error",
	UnknownError:        "unknown_error",
}

// String returns the snake_case status name, also used as a metrics label.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return statusNames[UnknownError]
}

// ShouldRetry reports whether the failure is plausibly transient.
func (s Status) ShouldRetry() bool {
	switch s {
	case ServerError, NetworkError, UnknownError:
		return true
	}
	// Values outside the taxonomy are UnknownError.
	_, known := statusNames[s]
	return !known
}

// StatusFromCode maps an HTTP status code to a Status.
func StatusFromCode(code int) Status {
	switch {
	case code == http.StatusOK:
		return Success
	case code == http.StatusBadRequest:
		return ClientError
	case code == http.StatusUnauthorized:
		return AuthenticationError
	case code == http.StatusForbidden:
		return QuotaExceeded
	case code == http.StatusNotFound:
		return NotFound
	case code >= 500 && code <= 599:
		return ServerError
	default:
		return UnknownError
	}
}

// Result is an immutable call outcome.
type Result struct {
	Status Status
	// HTTPStatus is zero for NetworkError.
	HTTPStatus int
	Body       []byte
	// Err is the transport failure behind a NetworkError.
	Err error
}

// FromResponse classifies a received response.
func FromResponse(code int, body []byte) Result {
	return Result{Status: StatusFromCode(code), HTTPStatus: code, Body: body}
}

// FromError classifies a transport failure where no response was received.
func FromError(err error) Result {
	return Result{Status: NetworkError, Err: err}
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Status == Success }

// Message is the response body, or the transport error text for NetworkError.
func (r Result) Message() string {
	if r.Status == NetworkError && r.Err != nil {
		return r.Err.Error()
	}
	return string(r.Body)
}

// Error returns nil for a successful result, otherwise an *Error.
func (r Result) Error() error {
	if r.OK() {
		return nil
	}
	return &Error{Result: r}
}

// DecodeJSON unmarshals the body of a successful result into v.
func (r Result) DecodeJSON(v any) error {
	if !r.OK() {
		return fmt.Errorf("%w: %s", ErrNotSuccessful, r.Status)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

// EventIDs returns the channel to event id mapping of a trigger response.
// It is nil for non-success results and for bodies without "event_ids".
func (r Result) EventIDs() (map[string]string, error) {
	if !r.OK() || len(r.Body) == 0 {
		return nil, nil
	}
	var body struct {
		EventIDs map[string]string `json:"event_ids"`
	}
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return body.EventIDs, nil
}

// Error is the error form of a failed Result.
type Error struct {
	Result Result
}

func (e *Error) Error() string {
	if e.Result.Status == NetworkError {
		return fmt.Sprintf("pusher: %s: %s", e.Result.Status, e.Result.Message())
	}
	return fmt.Sprintf("pusher: %s (HTTP %d): %s", e.Result.Status, e.Result.HTTPStatus, e.Result.Message())
}

// Unwrap returns the transport error, if any.
func (e *Error) Unwrap() error { return e.Result.Err }
