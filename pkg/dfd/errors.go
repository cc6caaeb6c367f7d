package dfd

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrNotFound            = errors.New("not found")
	ErrUnknownReference    = errors.New("unknown reference")
	ErrMalformedDocument   = errors.New("malformed document")
)

// ModelError provides structured error information for model operations.
type ModelError struct {
	Op     string // Operation that failed (e.g., "AddElement", "GetThreat")
	Entity string // Entity type (e.g., "element", "flow", "threat")
	ID     string // Entity identifier (if applicable)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ModelError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func duplicateErr(op, entity, id string) error {
	return &ModelError{Op: op, Entity: entity, ID: id, Cause: ErrDuplicateIdentifier}
}

func notFoundErr(op, entity, id string) error {
	return &ModelError{Op: op, Entity: entity, ID: id, Cause: ErrNotFound}
}

func unknownRefErr(op, entity, id string) error {
	return &ModelError{Op: op, Entity: entity, ID: id, Cause: ErrUnknownReference}
}
