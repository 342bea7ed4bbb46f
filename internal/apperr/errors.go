// Package apperr holds the error categories the HTTP layer knows how to render.
package apperr

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError is returned when an id lookup for a required resource fails.
type NotFoundError struct {
	Entity string
	ID     any
}

// NotFound builds a NotFoundError for the given entity and id.
func NotFound(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %v", e.Entity, e.ID)
}

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Detail string
	Fields map[string]string
}

// Validation builds a ValidationError for a single field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{
		Detail: "Validation failed",
		Fields: map[string]string{field: message},
	}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Detail
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Detail + " (" + strings.Join(parts, "; ") + ")"
}

// ConflictError means the store refused a write: a stale version or a row
// that is still referenced.
type ConflictError struct {
	Detail string
	Err    error
}

// Conflict wraps err as a ConflictError.
func Conflict(detail string, err error) *ConflictError {
	return &ConflictError{Detail: detail, Err: err}
}

func (e *ConflictError) Error() string {
	if e.Err == nil {
		return e.Detail
	}
	return e.Detail + ": " + e.Err.Error()
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
