package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents malformed or incomplete input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeDatabase represents graph datastore query/write failures
	ErrorTypeDatabase ErrorType = "database"
	// ErrorTypeNotFound represents lookups of unknown users or profiles
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeInternal represents anything unexpected
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Validation Errors

// ErrValidation is returned when request input is malformed or incomplete
type ErrValidation struct {
	*BaseError
	Field string
}

func NewValidation(field, reason string) *ErrValidation {
	return &ErrValidation{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("%s: %s", field, reason), nil),
		Field:     field,
	}
}

// Database Errors

// ErrDatabase is returned when a graph query or write fails
type ErrDatabase struct {
	*BaseError
	Operation string
}

func NewDatabase(operation string, err error) *ErrDatabase {
	return &ErrDatabase{
		BaseError: NewBaseError(ErrorTypeDatabase, fmt.Sprintf("operation failed: %s", operation), err),
		Operation: operation,
	}
}

// Not Found Errors

// ErrUserNotFound is returned when a user is not found in the graph
type ErrUserNotFound struct {
	*BaseError
	UserID string
}

func NewUserNotFound(userID string) *ErrUserNotFound {
	return &ErrUserNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("user not found: %s", userID), nil),
		UserID:    userID,
	}
}

// ErrProfileNotFound is returned when a user has no emotional profile yet
type ErrProfileNotFound struct {
	*BaseError
	UserID string
}

func NewProfileNotFound(userID string) *ErrProfileNotFound {
	return &ErrProfileNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("no emotional profile for user: %s", userID), nil),
		UserID:    userID,
	}
}

// Internal Errors

// ErrInternal is returned for unexpected failures
type ErrInternal struct {
	*BaseError
}

func NewInternal(message string, err error) *ErrInternal {
	return &ErrInternal{
		BaseError: NewBaseError(ErrorTypeInternal, message, err),
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}
	if baseErr, ok := err.(*BaseError); ok {
		return baseErr.Type == errType
	}
	if typed, ok := err.(interface{ Base() *BaseError }); ok {
		return typed.Base().Type == errType
	}
	if wrapped, ok := err.(interface{ Unwrap() error }); ok {
		return IsErrorType(wrapped.Unwrap(), errType)
	}
	return false
}

// Base exposes the underlying BaseError so IsErrorType works on the
// struct-embedding error types above.
func (e *ErrValidation) Base() *BaseError       { return e.BaseError }
func (e *ErrDatabase) Base() *BaseError         { return e.BaseError }
func (e *ErrUserNotFound) Base() *BaseError     { return e.BaseError }
func (e *ErrProfileNotFound) Base() *BaseError  { return e.BaseError }
func (e *ErrInternal) Base() *BaseError         { return e.BaseError }
func (e *ErrConfigMissingRequired) Base() *BaseError { return e.BaseError }
