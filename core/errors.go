package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ClientError represents a failed operation with full context.
type ClientError struct {
	Op      string // "connect", "find", "insert"
	Status  int    // HTTP status for service responses, 0 otherwise
	Body    []byte // raw response body for non-200 responses
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("lightblue %s: %s (status=%d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("lightblue %s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error for error chaining.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification with errors.Is.
var (
	ErrConnection      = errors.New("connection failed")
	ErrClosed          = errors.New("connection closed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNetwork         = errors.New("network error")
	ErrDecode          = errors.New("decode error")
	ErrRequest         = errors.New("request failed")
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrServer          = errors.New("server error")
)

// connectError wraps a construction-time failure (URL parsing, certificate
// loading, DNS, TCP, TLS handshake).
func connectError(err error) error {
	return &ClientError{
		Op:      "connect",
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %w", ErrConnection, err),
	}
}

// closedError reports an operation issued after Close.
func closedError(op string) error {
	return &ClientError{
		Op:      op,
		Message: "connection is closed",
		Err:     ErrClosed,
	}
}

// invalidArgumentError reports a request rejected before any network I/O.
func invalidArgumentError(op, message string) error {
	return &ClientError{
		Op:      op,
		Message: message,
		Err:     ErrInvalidArgument,
	}
}

// networkError wraps a transport failure during an in-flight request.
func networkError(op string, err error) error {
	return &ClientError{
		Op:      op,
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %w", ErrNetwork, err),
	}
}

// decodeError wraps a JSON parse failure on a 200 response.
func decodeError(op string, err error) error {
	return &ClientError{
		Op:      op,
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %w", ErrDecode, err),
	}
}

// requestError normalizes a non-200 service response, carrying the numeric
// status and the raw body as diagnostic text.
func requestError(op string, status int, body []byte) error {
	message := string(body)
	if message == "" {
		message = http.StatusText(status)
	}
	return &ClientError{
		Op:      op,
		Status:  status,
		Body:    body,
		Message: message,
		Err:     sentinelForStatus(status),
	}
}

// sentinelForStatus maps an HTTP status code to a sentinel error.
func sentinelForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrBadRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return ErrServer
	default:
		return ErrRequest
	}
}
