// Package errors defines the failure values produced by the SDK's transport
// layer. Every failed HTTP exchange surfaces as *HTTPError so callers can tell
// a server-reported problem from a network failure.
package errors

import (
	"fmt"
	"strings"
)

// AppError is the structured error body the events API returns when it
// deliberately rejects a request.
type AppError struct {
	Type    string `json:"type"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s (%d): %s", e.Type, e.Status, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// HTTPError is a transport-level failure: either no response arrived
// (StatusCode == 0, Underlying set) or the response status was outside 2xx.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int       // 0 for network failures
	Body       []byte    // raw response body, if any
	App        *AppError // non-nil when Body has the structured error shape
	Underlying error     // network-level cause, if any
}

// Message is the transport's own description of the failure, without the
// structured body. It may be empty.
func (e *HTTPError) Message() string {
	if e.Underlying != nil {
		return strings.TrimSpace(e.Underlying.Error())
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	}
	return ""
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	switch {
	case e.App != nil:
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.App.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message())
	default:
		return fmt.Sprintf("%s %s: network error: %v", e.Method, e.URL, e.Underlying)
	}
}

// Unwrap returns the network-level cause for error chain compatibility.
func (e *HTTPError) Unwrap() error {
	return e.Underlying
}

// IsNetwork reports whether the request failed before any response arrived.
func (e *HTTPError) IsNetwork() bool {
	return e.StatusCode == 0
}
