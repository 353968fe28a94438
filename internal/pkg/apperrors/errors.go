package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is the shared base for lookups that hit no record.
var ErrNotFound = errors.New("record not found")

// Section errors
var (
	ErrSectionNotFound = fmt.Errorf("section not found: %w", ErrNotFound)
	// ErrSectionHasStudents is returned when trying to delete a section
	// that still has enrolled students.
	ErrSectionHasStudents = errors.New("section has enrolled students and cannot be deleted")
)

// Student errors
var (
	ErrStudentNotFound = fmt.Errorf("student not found: %w", ErrNotFound)
)

// ValidationError is a user-correctable rejection of input data. It carries
// every violated field together with the rules it broke, so a caller can fix
// the whole request in one round trip.
type ValidationError struct {
	Violations map[string][]string
}

// NewValidationError creates an empty ValidationError ready to collect violations.
func NewValidationError() *ValidationError {
	return &ValidationError{Violations: make(map[string][]string)}
}

// Add records a violated rule for a field.
func (e *ValidationError) Add(field, reason string) *ValidationError {
	e.Violations[field] = append(e.Violations[field], reason)
	return e
}

// HasViolations reports whether any rule was violated.
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// Fields returns the violated field names in stable order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for field := range e.Violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if !e.HasViolations() {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Fields(), ", ")
}

// StoreError wraps an unexpected persistence failure. It is fatal to the
// request, never to the process, and is not retried.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err as a store failure during op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *StoreError) Unwrap() error {
	return e.Err
}
