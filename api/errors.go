package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingBaseURL indicates no base URL could be resolved.
var ErrMissingBaseURL = errors.New("base URL is required")

// unknownErrorMessage is used when a failure payload carries none of the
// known error fields.
const unknownErrorMessage = "Error unknown"

// defaultErrorFields are the payload fields inspected for an error message,
// in iteration order. The last present non-empty field wins, so later
// entries take priority over earlier ones.
var defaultErrorFields = []string{"error", "detail"}

// Error is the uniform failure shape returned by every client operation.
// Message carries the remote or local failure text and Operation names
// the call that produced it (e.g. "post database").
type Error struct {
	Message   string
	Operation string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Wrap converts a local failure (network, parse) into an *Error carrying
// the operation label. An existing *Error passes through unchanged.
func Wrap(err error, operation string) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{Message: err.Error(), Operation: operation}
}

// ErrorFrom extracts an error message from a failure payload. Candidate
// field names are checked in order and the last one present and non-empty
// provides the message; array values are joined with ", ". When no field
// matches, or the body is not JSON, the message falls back to
// "Error unknown".
func ErrorFrom(body []byte, operation string, fields ...string) *Error {
	if len(fields) == 0 {
		fields = defaultErrorFields
	}

	message := unknownErrorMessage

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, field := range fields {
			if msg := messageFrom(payload[field]); msg != "" {
				message = msg
			}
		}
	}

	return &Error{Message: message, Operation: operation}
}

// messageFrom renders a single error field value as text. Arrays are
// joined with ", "; empty values yield "".
func messageFrom(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
