package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewConflictError creates an error for an operation that clashes with an
// active session, e.g. starting an entity that is already being tracked.
func NewConflictError(entity string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("%s: %s", entity, reason),
		Code:    "CONFLICT",
		Context: map[string]interface{}{
			"entity": entity,
			"reason": reason,
		},
	}
}

// NewInvalidStateError creates an error for a session transition that is not
// legal from the session's current status.
func NewInvalidStateError(operation string, status string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidState,
		Message: fmt.Sprintf("cannot %s a %s session", operation, status),
		Code:    "INVALID_STATE",
		Context: map[string]interface{}{
			"operation": operation,
			"status":    status,
		},
	}
}

// NewParseError creates a new parse error for malformed duration or
// timestamp text.
func NewParseError(input string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: fmt.Sprintf("cannot parse %q: %s", input, reason),
		Code:    "PARSE_FAILED",
		Context: map[string]interface{}{
			"input":  input,
			"reason": reason,
		},
	}
}

// NewBusyError creates an error for event log lock contention. Callers fail
// fast instead of waiting on the lock.
func NewBusyError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeBusy,
		Message: fmt.Sprintf("event log is locked by another process: %s", operation),
		Code:    "BUSY",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewIntegrityError creates an error for a corrupted event sequence detected
// on read. The engine surfaces these, it never repairs history.
func NewIntegrityError(sessionID string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeIntegrity,
		Message: fmt.Sprintf("corrupt event sequence for session %s: %s", sessionID, reason),
		Code:    "INTEGRITY",
		Context: map[string]interface{}{
			"session_id": sessionID,
			"reason":     reason,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeBusy:
			return "The time tracking database is in use by another process. Please try again."
		default:
			return appErr.Message
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeConflict,
			ErrorTypeInvalidState, ErrorTypeParse:
			return false // These are user errors, not system errors
		case ErrorTypeDatabase, ErrorTypeBusy, ErrorTypeIntegrity:
			return true // These are system errors that should be logged
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
