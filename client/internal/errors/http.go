package errors

import (
	"encoding/json"
)

// NewStatusError creates a transport error for a non-2xx response. The body
// is inspected for the structured AppError shape.
func NewStatusError(method, url string, statusCode int, body []byte) *HTTPError {
	return &HTTPError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       body,
		App:        ParseAppError(body),
	}
}

// NewNetworkError creates a transport error for a request that never got a
// response (dial failure, reset connection, cancelled context).
func NewNetworkError(method, url string, err error) *HTTPError {
	return &HTTPError{
		Method:     method,
		URL:        url,
		Underlying: err,
	}
}

// ParseAppError returns the structured error carried by body, or nil when the
// body is not a JSON object with a numeric "status" and a string "message".
// "type" is optional.
func ParseAppError(body []byte) *AppError {
	if len(body) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil
	}

	var app AppError
	rawStatus, ok := fields["status"]
	if !ok || !isJSONNumber(rawStatus) {
		return nil
	}
	var status float64
	if err := json.Unmarshal(rawStatus, &status); err != nil {
		return nil
	}
	app.Status = int(status)
	rawMessage, ok := fields["message"]
	if !ok || !isJSONString(rawMessage) || json.Unmarshal(rawMessage, &app.Message) != nil {
		return nil
	}
	if rawType, ok := fields["type"]; ok && isJSONString(rawType) {
		_ = json.Unmarshal(rawType, &app.Type)
	}
	return &app
}

func isJSONNumber(raw json.RawMessage) bool {
	return len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'))
}

func isJSONString(raw json.RawMessage) bool {
	return len(raw) > 0 && raw[0] == '"'
}
