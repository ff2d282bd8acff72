package database

import (
	"errors"
	"fmt"
)

// Common database errors that can be checked using errors.Is()
var (
	// ErrNotFound is returned when a record is not found in the database.
	ErrNotFound = errors.New("record not found")

	// ErrNotConnected is returned when an operation runs without a live connection.
	ErrNotConnected = errors.New("database not connected")

	// ErrInvalidInput is returned when invalid input is provided to a method.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrQueryFailed is returned when a query execution fails.
	ErrQueryFailed = errors.New("query execution failed")
)

// DBError wraps one of the sentinel errors with operation context and,
// optionally, the driver error that caused it.
type DBError struct {
	err     error
	cause   error
	context string
}

// NewDBError creates a new DBError with the given error and context.
// The context should describe what operation was being performed.
func NewDBError(err error, context string) *DBError {
	return &DBError{err: err, context: context}
}

// wrap attaches the underlying driver error.
func (e *DBError) wrap(cause error) *DBError {
	e.cause = cause
	return e
}

// Error returns the error message.
func (e *DBError) Error() string {
	msg := e.context
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap returns the sentinel so errors.Is works against it.
func (e *DBError) Unwrap() error {
	return e.err
}
