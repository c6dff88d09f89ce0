package record

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when an ID is already present in the store.
// Seeding reports it for repeated seed IDs; Create reports it only if the
// configured IDGenerator keeps returning IDs that are taken.
var ErrDuplicateID = errors.New("duplicate record id")

// Field names reported by ValidationError.
const (
	FieldName     = "name"
	FieldCategory = "category"
)

// ValidationError reports a CreateRequest (or seed record) field that failed
// validation. The store is unchanged when it is returned.
type ValidationError struct {
	// Field is the offending field: FieldName or FieldCategory.
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// CancelledError reports that an operation was abandoned because the caller's
// context was done. It wraps the context error, so errors.Is(err,
// context.Canceled) and errors.Is(err, context.DeadlineExceeded) work.
type CancelledError struct {
	// Op is the operation that was cancelled ("create", "get", "list").
	Op string

	// Cause is ctx.Err() at the time the cancellation was observed.
	Cause error
}

// Error implements the error interface.
func (e *CancelledError) Error() string {
	return fmt.Sprintf("%s cancelled: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying context error.
func (e *CancelledError) Unwrap() error {
	return e.Cause
}

// IsValidationError returns true if err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsCancelled returns true if err is or wraps a *CancelledError.
func IsCancelled(err error) bool {
	var ce *CancelledError
	return errors.As(err, &ce)
}

// ValidationField returns the offending field of a wrapped *ValidationError,
// or "" if err is not one.
func ValidationField(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	return ""
}

func newEmptyFieldError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: "must not be empty or whitespace-only",
	}
}
