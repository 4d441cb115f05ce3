package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrSessionExpired is returned when the backend answers 401. The client has
// already cleared the stored token by the time callers see this error.
var ErrSessionExpired = errors.New("session expired")

// StatusError is a non-2xx response without a structured validation body.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.URL)
}

// ValidationError is a 4xx response carrying a field-keyed errors map,
// as produced by the registration endpoint.
type ValidationError struct {
	Status int
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d fields)", len(e.Errors))
}

// Flatten returns every field message as a single list, ordered by field name
// so toast output is deterministic.
func (e *ValidationError) Flatten() []string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var messages []string
	for _, field := range fields {
		messages = append(messages, e.Errors[field]...)
	}
	return messages
}

// errorBody is the wire shape of a structured error response.
// Field messages arrive either as a single string or a list of strings.
type errorBody struct {
	Message string                     `json:"message"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

// decodeValidationError parses a 4xx body into a ValidationError.
// Returns nil when the body carries no errors map.
func decodeValidationError(status int, body []byte) *ValidationError {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Errors) == 0 {
		return nil
	}

	out := make(map[string][]string, len(parsed.Errors))
	for field, raw := range parsed.Errors {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			out[field] = list
			continue
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			out[field] = []string{single}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return &ValidationError{Status: status, Errors: out}
}
