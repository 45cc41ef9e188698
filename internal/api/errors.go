package api

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrMalformedResponse reports a 2xx response whose body does not have the
// expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is a non-2xx response. Message carries the server's "error"
// field when the body had one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// Message returns the server-provided message carried by err, or fallback
// when err has none. Transport and decoding failures always yield fallback.
func Message(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var ue *url.Error
	return errors.As(err, &ue)
}

// IsStatus reports whether err is a non-2xx response with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
