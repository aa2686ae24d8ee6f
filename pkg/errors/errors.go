package errors

import "fmt"

// ValidationError represents a client input failure. Handlers map it to a
// 400 response whose body carries Message verbatim.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// PersistenceError represents a store operation failure (key-value write,
// scan, or object upload). Handlers map it to a 500 response with Message
// as the error and the underlying cause as details.
type PersistenceError struct {
	Message string
	Err     error
}

// NewPersistenceError creates a new persistence error wrapping the cause
func NewPersistenceError(message string, err error) *PersistenceError {
	return &PersistenceError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Details returns a description of the underlying cause suitable for
// inclusion in an error response body.
func (e *PersistenceError) Details() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}
