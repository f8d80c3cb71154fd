package client

import (
	"errors"

	apierrors "github.com/eventboard/eventboard/client/internal/errors"
)

// Fallback messages returned by ErrorMessage.
const (
	NetworkErrorMessage = "Network error"
	UnknownErrorMessage = "Unknown error"
)

// Re-export the transport error types so callers compare against a single symbol.
type (
	HTTPError = apierrors.HTTPError
	AppError  = apierrors.AppError
)

// AsHTTPError returns the transport error wrapped by err, if any.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// IsAppError reports whether err is a transport error whose response body
// carried the structured {type, status, message} shape.
func IsAppError(err error) bool {
	he, ok := AsHTTPError(err)
	return ok && he.App != nil
}

// ErrorMessage reduces any error to the string shown to the user:
//
//   - a transport error with a structured body yields the body's message;
//   - any other transport error yields its own message, or "Network error"
//     when it has none;
//   - everything else yields "Unknown error".
func ErrorMessage(err error) string {
	he, ok := AsHTTPError(err)
	if !ok {
		return UnknownErrorMessage
	}
	if he.App != nil {
		return he.App.Message
	}
	if msg := he.Message(); msg != "" {
		return msg
	}
	return NetworkErrorMessage
}
