package coreapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidCredentials is returned when the service rejects the API key.
var ErrInvalidCredentials = errors.New("invalid API key")

// Common static errors that can be wrapped with context.
var (
	ErrUnknownOperation    = errors.New("unknown operation")
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrNoHostInURL         = errors.New("no host specified in URL")
	ErrNATSURLRequired     = errors.New("NATS URL is required")
)

// ServerError carries the body of an internal server error response verbatim.
type ServerError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Body       string `json:"body"        yaml:"body"`
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server error (status: %d)", e.StatusCode)
	}

	return fmt.Sprintf("server error (status: %d): %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// StatusError is returned for unexpected non-success statuses other than
// 401 and 500.
type StatusError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Message    string `json:"message"     yaml:"message"`
	Body       string `json:"body"        yaml:"body"`
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, msg)
}

// newStatusError extracts the "message" field the service puts in its JSON
// error bodies, if any.
func newStatusError(status int, body []byte) *StatusError {
	statusErr := &StatusError{StatusCode: status, Body: string(body)}

	var payload struct {
		Message string `json:"message"`
	}

	if json.Unmarshal(body, &payload) == nil {
		statusErr.Message = payload.Message
	}

	return statusErr
}

// TransportError wraps a failure to send a request or to read its response.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Op == "" {
		return "transport error: " + e.Err.Error()
	}

	return fmt.Sprintf("transport error: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that does not match the expected
// schema. Path locates the first mismatch, e.g. "results[3].yearPublished"
// in a search page or "yearPublished" in a single record. It is "$" when the
// body is not valid JSON at all.
type DecodeError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response at %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error { return e.Err }

// IsInvalidCredentials checks if the error is an authentication failure.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

// IsServerError checks if the error is an internal server error response.
func IsServerError(err error) bool {
	serverErr := &ServerError{}

	return errors.As(err, &serverErr)
}

// IsTransportError checks if the error is a transport failure.
func IsTransportError(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// IsDecodeError checks if the error is a schema mismatch.
func IsDecodeError(err error) bool {
	decodeErr := &DecodeError{}

	return errors.As(err, &decodeErr)
}

// IsNotFound checks if the error is a not found response.
func IsNotFound(err error) bool {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsRateLimited checks if the error is a too many requests response.
func IsRateLimited(err error) bool {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests
	}

	return false
}
