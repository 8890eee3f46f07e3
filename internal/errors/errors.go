// Package errors provides consistent error types for choreboard.
// It defines three categories: ValidationError (bad input the caller must reject),
// NotFoundError (the target record does not exist) and StoreError (the underlying
// storage failed).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidID       = errors.New("invalid id")
	ErrEmptyName       = errors.New("name is required")
	ErrEmptyTaskType   = errors.New("task type is required")
	ErrUnknownUser     = errors.New("user does not exist")
	ErrUnknownDriver   = errors.New("unknown storage driver")
	ErrTooLong         = errors.New("value too long")
)

// ValidationError represents a missing or invalid field.
type ValidationError struct {
	Field      string // The field that failed validation
	Value      string // The offending value (optional)
	Message    string // What is wrong
	Suggestion string // How to fix it (optional)
	Cause      error  // Sentinel describing the failure (optional)
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", msg, e.Value)
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, cause error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationErrorWithValue creates a ValidationError carrying the bad value
// and a suggestion.
func NewValidationErrorWithValue(field, value, message, suggestion string, cause error) *ValidationError {
	return &ValidationError{
		Field:      field,
		Value:      value,
		Message:    message,
		Suggestion: suggestion,
		Cause:      cause,
	}
}

// NotFoundError represents a lookup, update or delete of a record that does not exist.
type NotFoundError struct {
	Kind string // "task" or "user"
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// Is matches the kind-specific sentinel.
func (e *NotFoundError) Is(target error) bool {
	switch target {
	case ErrTaskNotFound:
		return e.Kind == "task"
	case ErrUserNotFound:
		return e.Kind == "user"
	}
	return false
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(kind string, id int64) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// StoreError represents a failure of the underlying storage.
type StoreError struct {
	Op    string // The store operation that failed
	Cause error  // The underlying error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store %s failed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("store %s failed", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError wraps cause as a StoreError. Validation and not-found errors
// pass through unchanged, and a nil cause yields nil.
func NewStoreError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if IsValidation(cause) || IsNotFound(cause) || IsStore(cause) {
		return cause
	}
	return &StoreError{Op: op, Cause: cause}
}

// IsValidation checks if an error is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStore checks if an error is a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// AsValidation extracts a ValidationError from an error chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsStore extracts a StoreError from an error chain.
func AsStore(err error) (*StoreError, bool) {
	var se *StoreError
	ok := errors.As(err, &se)
	return se, ok
}

// Is is re-exported from the standard errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is re-exported from the standard errors package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New is re-exported from the standard errors package.
func New(text string) error {
	return errors.New(text)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
