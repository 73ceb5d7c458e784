package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable indicates the record store cannot be reached. Handlers map
// it to 503 without exposing connection detail.
var ErrUnavailable = errors.New("record store unavailable")

// ErrNotFound is returned when an identifier does not match an existing row.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ErrConflict is returned when a unique constraint rejects a write, such as a
// duplicate user email.
type ErrConflict struct {
	Entity EntityType
	Field  string
}

func (e ErrConflict) Error() string {
	return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
}

// FieldError describes a single rejected input field.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError aggregates the field errors of one rejected input.
type ValidationError struct {
	Fields []FieldError
}

func (e ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// IsNotFound reports whether err wraps an ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err wraps an ErrConflict.
func IsConflict(err error) bool {
	var c ErrConflict
	return errors.As(err, &c)
}
