package adapter

import (
	"errors"

	"github.com/MKhiriev/mylife-client/models"
)

// Sentinel errors returned by [BackendAdapter] implementations. Every error
// returned by the adapter wraps exactly one of them, so callers match with
// [errors.Is].
var (
	// ErrUnreachable indicates a transport failure: connection refused,
	// DNS failure, timeout or cancelled context.
	ErrUnreachable = errors.New("backend unreachable")
	// ErrUnauthorized is returned for 401, e.g. a wrong PIN or a locked vault.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrServiceUnavailable is returned for 503, e.g. an unavailable vault.
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrConflict is returned when the envelope carries error.conflict or
	// the status is 409.
	ErrConflict = errors.New("conflict")
	// ErrNotFound is returned for 404.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest is returned for 400 and 422.
	ErrBadRequest = errors.New("bad request")
	// ErrInternalServerError is returned for any other 5xx.
	ErrInternalServerError = errors.New("internal server error")
	// ErrRequestFailed is returned for a 2xx envelope with success=false
	// and for unclassified non-2xx statuses.
	ErrRequestFailed = errors.New("request failed")
	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidAddress is returned by the constructor for an unusable base URL.
	ErrInvalidAddress = errors.New("invalid backend address")
)

// ResponseError is the concrete error for every classified backend answer.
// Kind is one of the sentinels above; Body keeps what the backend said.
type ResponseError struct {
	Kind   error
	Status int
	Body   models.ErrorBody
}

func (e *ResponseError) Error() string {
	if text := e.Body.Text(); text != "" {
		return e.Kind.Error() + ": " + text
	}
	return e.Kind.Error()
}

func (e *ResponseError) Unwrap() error {
	return e.Kind
}

// Message returns the backend's own description of the failure, if any.
func (e *ResponseError) Message() string {
	return e.Body.Text()
}

// MessageOf returns the backend message carried by err, falling back to
// err.Error() for errors that never reached the backend.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		if msg := respErr.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
