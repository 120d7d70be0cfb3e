package services

import "fmt"

// Error taxonomy shared by the services. Controllers map these onto HTTP
// status codes; anything else surfaces as an internal error.

// ValidationError reports bad input: missing or out-of-range dimension
// scores, a document without a resolved scoring template, malformed fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PermissionError reports a role or visibility violation.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string { return e.Message }

func permissionErrorf(format string, args ...interface{}) *PermissionError {
	return &PermissionError{Message: fmt.Sprintf(format, args...)}
}

// WindowClosedError reports an action attempted outside the parent event's
// time window.
type WindowClosedError struct {
	Message string
}

func (e *WindowClosedError) Error() string { return e.Message }

func windowClosedErrorf(format string, args ...interface{}) *WindowClosedError {
	return &WindowClosedError{Message: fmt.Sprintf(format, args...)}
}

// ConfirmationError reports a failed destructive-action confirmation.
type ConfirmationError struct {
	Message string
}

func (e *ConfirmationError) Error() string { return e.Message }

func confirmationErrorf(format string, args ...interface{}) *ConfirmationError {
	return &ConfirmationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func notFoundErrorf(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation such as a duplicate template
// or event name.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func conflictErrorf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
