package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeForbidden   ErrorCode = "api_forbidden_403"
	ErrorCodeUnavailable ErrorCode = "api_unavailable"
	ErrorCodeInvalidJSON ErrorCode = "invalid_json_payload"
	ErrorCodeInvalidRoot ErrorCode = "invalid_json_root"
)

const forbiddenMessage = "iTranvias rechazó la solicitud (posible bloqueo por IP/antibot). " +
	"Prueba --request-profile browser --retry-403 6 o ejecuta desde otra red."

// ErrUnknownStatus is returned when the alternate transport produced a body
// without a readable status code
var ErrUnknownStatus = errors.New("alternate transport reported no status code")

// FetchError is the only error FetchJSON returns to callers
type FetchError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s", e.Code, e.Err)
	default:
		return string(e.Code)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsAntiBotBlock reports whether err is the distinguished 403 exhaustion error
func IsAntiBotBlock(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Code == ErrorCodeForbidden
}

// StatusError is a non-2xx HTTP response
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Blocking reports whether the status is treated as anti-automation defence
func (e *StatusError) Blocking() bool {
	return IsBlockingStatus(e.StatusCode)
}

func IsBlockingStatus(statusCode int) bool {
	return statusCode == http.StatusForbidden || statusCode == http.StatusTooManyRequests
}

// TransportError is a failure with no HTTP status: connection, DNS, timeout or process failure
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func exhaustedError(lastErr error) *FetchError {
	var statusErr *StatusError
	if errors.As(lastErr, &statusErr) && statusErr.StatusCode == http.StatusForbidden {
		return &FetchError{Code: ErrorCodeForbidden, Message: forbiddenMessage, Err: lastErr}
	}

	return &FetchError{Code: ErrorCodeUnavailable, Err: lastErr}
}
