// Package persistence provides standardized error types for persistence operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrAutomationNotFound indicates no active automation exists for the given identifier.
	ErrAutomationNotFound = errors.New("automation not found")

	// ErrPropertyNotFound indicates a property was not found by the given identifier.
	ErrPropertyNotFound = errors.New("property not found")
)

// RecordError wraps record-level errors with additional context.
type RecordError struct {
	Op    string // Operation being performed (e.g., "GetByID", "UpdateCounters")
	Table string // Table or collection name
	ID    string // Record ID if applicable
	Err   error  // Underlying error
}

func (e *RecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s operation failed on %s: %v", e.Op, e.Table, e.Err)
	}

	return fmt.Sprintf("%s operation failed on %s %s: %v", e.Op, e.Table, e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for record errors.
func (e *RecordError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewRecordError creates a new record error with context.
func NewRecordError(op, table, id string, err error) *RecordError {
	return &RecordError{
		Op:    op,
		Table: table,
		ID:    id,
		Err:   err,
	}
}

// IsAutomationNotFound checks if an error indicates an active automation was not found.
func IsAutomationNotFound(err error) bool {
	return errors.Is(err, ErrAutomationNotFound)
}

// IsPropertyNotFound checks if an error indicates a property was not found.
func IsPropertyNotFound(err error) bool {
	return errors.Is(err, ErrPropertyNotFound)
}
