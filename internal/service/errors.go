package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned for missing rows and for rows owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned when a token cannot be issued.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	// ErrInvalidToken is returned for malformed, expired or orphaned tokens.
	ErrInvalidToken = errors.New("invalid token")
)

const (
	msgRequired      = "This field is required."
	msgBlank         = "This field may not be blank."
	msgInvalidEmail  = "Enter a valid email address."
	msgPasswordShort = "Ensure this field has at least 5 characters."
	msgTooLong       = "Ensure this field has no more than 255 characters."
)

// ValidationError carries field-level messages
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an error with a single message
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// Add records a message for a field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Err returns nil when nothing was recorded
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
