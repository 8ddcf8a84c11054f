package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FallbackMessage is shown when an error carries no usable payload,
// including transport-level failures where no response arrived at all.
const FallbackMessage = "An unknown error occurred."

// APIError is the structured error payload of a non-2xx response.
//
// The service answers in one of two shapes: a single "detail" string, or a
// mapping of field name to a list of messages. Both are captured here so
// callers resolve the display string through one place, [APIError.Message],
// instead of shape-sniffing at each call site.
type APIError struct {
	Status int
	Detail string
	Fields map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Message())
}

// Message returns the single human-readable string for this error: the
// detail field when present, otherwise every field-level message joined,
// otherwise [FallbackMessage].
//
// Field messages are ordered by field name so the output is deterministic.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}

	if len(e.Fields) > 0 {
		fields := make([]string, 0, len(e.Fields))
		for field := range e.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		var messages []string
		for _, field := range fields {
			messages = append(messages, e.Fields[field]...)
		}
		if len(messages) > 0 {
			return strings.Join(messages, " ")
		}
	}

	return FallbackMessage
}

// parseAPIError normalizes a non-2xx response body into an [APIError].
// An empty or non-JSON body yields an error that resolves to [FallbackMessage].
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	if detail, ok := payload["detail"].(string); ok {
		apiErr.Detail = detail
		return apiErr
	}

	fields := make(map[string][]string)
	for field, raw := range payload {
		switch v := raw.(type) {
		case string:
			fields[field] = []string{v}
		case []any:
			for _, item := range v {
				if msg, ok := item.(string); ok {
					fields[field] = append(fields[field], msg)
				}
			}
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
	}

	return apiErr
}

// ErrorMessage resolves any error from this package into the string the UI
// should display. Transport failures and other non-API errors resolve to
// [FallbackMessage].
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}

	return FallbackMessage
}
