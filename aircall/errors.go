package aircall

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ConfigurationError indicates the client was constructed with invalid
// credentials or settings. It is returned synchronously from NewClient,
// before any network activity.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("aircall: invalid configuration: %s", e.Message)
}

// TransportError indicates a network-level failure: the connection could not
// be established, was interrupted, or the request timed out. A well-formed
// HTTP error response is never a TransportError.
type TransportError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("aircall: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a response body did not match the expected shape,
// e.g. a record missing a required field. A record is never returned
// partially populated.
type DecodeError struct {
	Resource string
	Err      error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("aircall: failed to decode %s response: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError is the generic error for a non-2xx response that does not map to
// a more specific error type. It carries the status code and the raw body so
// callers can inspect the upstream payload.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("aircall: API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AuthenticationError indicates the API rejected the supplied credentials
// (HTTP 401 or 403).
type AuthenticationError struct {
	APIError
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("aircall: authentication failed: status %d: %s", e.StatusCode, e.Message)
}

// NotFoundError indicates the requested resource does not exist (HTTP 404).
type NotFoundError struct {
	APIError
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("aircall: not found: %s", e.Message)
}

// ValidationError indicates the request was rejected as invalid, either by
// the API (HTTP 400/422) or client-side before any request was sent (in
// which case StatusCode is zero). Details holds the field-level error
// payload exactly as the API returned it.
type ValidationError struct {
	APIError
	Details json.RawMessage
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("aircall: invalid request: %s", e.Message)
	}
	return fmt.Sprintf("aircall: validation failed: status %d: %s", e.StatusCode, e.Message)
}

// RateLimitError indicates the API rate limit was exceeded (HTTP 429).
// RetryAfter is the wait the API asked for, zero when the response carried
// no Retry-After header. The client never retries on its own.
type RateLimitError struct {
	APIError
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("aircall: rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return "aircall: rate limit exceeded"
}

// ServerError indicates an upstream failure (HTTP 5xx).
type ServerError struct {
	APIError
}

// Error implements the error interface
func (e *ServerError) Error() string {
	return fmt.Sprintf("aircall: server error: status %d: %s", e.StatusCode, e.Message)
}

// newValidationError reports a request rejected client-side. No HTTP request
// was issued for it.
func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		APIError: APIError{Message: fmt.Sprintf(format, args...)},
	}
}

// errorBody is the error shape returned by the Aircall API.
type errorBody struct {
	Error        string `json:"error"`
	Message      string `json:"message"`
	Troubleshoot string `json:"troubleshoot"`
}

// classify maps a non-2xx response to its typed error. The raw body is
// always preserved on the returned error.
func classify(statusCode int, body []byte, header http.Header) error {
	var decoded errorBody
	// Decode failures are fine here, some error responses are not JSON.
	_ = json.Unmarshal(body, &decoded)

	message := decoded.Error
	if message == "" {
		message = decoded.Message
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}

	apiErr := APIError{
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &AuthenticationError{APIError: apiErr}
	case statusCode == http.StatusNotFound:
		return &NotFoundError{APIError: apiErr}
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return &ValidationError{APIError: apiErr, Details: json.RawMessage(body)}
	case statusCode == http.StatusTooManyRequests:
		return &RateLimitError{APIError: apiErr, RetryAfter: parseRetryAfter(header)}
	case statusCode >= 500:
		return &ServerError{APIError: apiErr}
	default:
		return &apiErr
	}
}

// parseRetryAfter reads a Retry-After header given in seconds. Zero when
// absent or malformed.
func parseRetryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// validateFilterKeys rejects filter keys the resource does not recognize,
// before any request is issued. Silently dropping a typo'd key would mask
// caller mistakes.
func validateFilterKeys(resource string, filters map[string]string, allowed map[string]bool) error {
	for key := range filters {
		if !allowed[key] {
			return newValidationError("unrecognized %s filter %q", resource, key)
		}
	}
	return nil
}
