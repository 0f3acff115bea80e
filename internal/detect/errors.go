package detect

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// APIError represents a non-200 response from the detection service.
// Callers should prefer the predicate functions (IsTimeout, IsConnection,
// HasStatusCode) to inspect errors rather than asserting on this type.
type APIError struct {
	operation  string
	statusCode int
	message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.operation, e.statusCode, e.message)
}

func newAPIError(operation string, statusCode int, message string) *APIError {
	return &APIError{operation: operation, statusCode: statusCode, message: message}
}

// StatusCode returns the HTTP status code from the response.
func (e *APIError) StatusCode() int { return e.statusCode }

// Message returns the response body or status text.
func (e *APIError) Message() string { return e.message }

// HasStatusCode reports whether err is an API error whose status matches.
func HasStatusCode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.statusCode == code
}

// IsUnavailable reports whether err is an API error with HTTP 503 status.
func IsUnavailable(err error) bool { return HasStatusCode(err, http.StatusServiceUnavailable) }

// IsTimeout reports whether err was caused by the request deadline expiring,
// either the HTTP client timeout or a context deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsConnection reports whether err was a transport-level failure before any
// HTTP response arrived (refused, reset, DNS failure). Timeouts are reported
// by IsTimeout, not here.
func IsConnection(err error) bool {
	if IsTimeout(err) {
		return false
	}
	var oe *net.OpError
	return errors.As(err, &oe)
}

// UserMessage maps a Detect error to the user-facing message for its failure
// kind. The three kinds (connection, timeout, unexpected) each get a distinct
// message; service-status errors report the status.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsTimeout(err):
		return "Request timed out. The video might be too large or the service is busy."
	case IsConnection(err):
		return "Could not connect to the detection service. Please try again later."
	default:
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return fmt.Sprintf("Service error: HTTP %d: %s", apiErr.StatusCode(), apiErr.Message())
		}
		return "Unexpected error occurred while processing the video."
	}
}
