// Package api provides session management and the REST core for the CWMS
// Data API (CDA).
//
// # Session Architecture
//
// The Session wraps Go's standard net/http.Client and provides:
//
//   - Authentication: attaches the configured API key as an Authorization
//     header (or as a query parameter, see [WithKeyAsQueryParam]).
//   - Typed errors: every non-2xx response maps to a concrete error type
//     that callers can match with errors.As.
//   - Pagination: [Session.GetPages] follows next-page cursors and merges
//     the selected array across pages, with cycle detection.
//   - Optional bounded retry for idempotent GETs via [WithRetry].
//   - Optional client-side rate limiting via golang.org/x/time/rate.
//
// # Thread Safety
//
// A Session is immutable after construction and safe for concurrent use.
// The underlying http.Client handles connection pooling.
package api

import (
	"fmt"
)

// ValidationError reports caller input rejected before any network call was
// made. The wrapped error describes the offending parameter(s).
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameters: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError reports a connectivity or timeout failure. The request
// never produced an HTTP status.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("CWMS API transport error (%s): %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthorizationError reports a 401 or 403 response.
type AuthorizationError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("CWMS API error (%s) %d Unauthorized. Check that your API key is valid for this office.%s",
		e.URL, e.StatusCode, bodySuffix(e.Body))
}

// NotFoundError reports a 404 response. The hint mirrors the server's usual
// cause: a query that matched nothing.
type NotFoundError struct {
	URL  string
	Body string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("CWMS API error (%s) 404 Not Found. May be the result of an empty query.%s",
		e.URL, bodySuffix(e.Body))
}

// ClientError reports a 4xx response other than 401/403/404.
type ClientError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("CWMS API error (%s) %d. Check that your parameters are correct.%s",
		e.URL, e.StatusCode, bodySuffix(e.Body))
}

// ServerError reports a 5xx response.
type ServerError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("CWMS API error (%s) %d Server Error.%s",
		e.URL, e.StatusCode, bodySuffix(e.Body))
}

// DecodeError reports a success status whose body was not valid JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding CWMS API response (%s): %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProtocolError reports a violation of the API contract, such as a
// pagination cursor that repeats.
type ProtocolError struct {
	URL    string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("CWMS API protocol error (%s): %s", e.URL, e.Reason)
}

// statusError maps a non-2xx status to its typed error.
func statusError(status int, url string, body []byte) error {
	b := truncateBody(body)
	switch {
	case status == 401 || status == 403:
		return &AuthorizationError{StatusCode: status, URL: url, Body: b}
	case status == 404:
		return &NotFoundError{URL: url, Body: b}
	case status >= 500:
		return &ServerError{StatusCode: status, URL: url, Body: b}
	default:
		return &ClientError{StatusCode: status, URL: url, Body: b}
	}
}

func bodySuffix(body string) string {
	if body == "" {
		return ""
	}
	return " " + body
}

// truncateBody returns the first 500 bytes of a response body for error
// messages and logging.
func truncateBody(body []byte) string {
	if len(body) > 500 {
		return string(body[:500]) + "..."
	}
	return string(body)
}
