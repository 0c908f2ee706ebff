// Package errors defines the coded error model shared by the service core,
// the HTTP API, and the CLI.
package errors

import "fmt"

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// NotFound indicates a lookup or delete on a value that is not stored
	NotFound ErrorCode = "NOT_FOUND"
	// InvalidInput indicates a rejected input (empty value, malformed body)
	InvalidInput ErrorCode = "INVALID_INPUT"
	// QueryUnparseable indicates a filter or natural-language query that
	// could not be interpreted
	QueryUnparseable ErrorCode = "QUERY_UNPARSEABLE"
	// Internal indicates an unexpected error
	Internal ErrorCode = "INTERNAL_ERROR"
)

// CodedError carries a stable code alongside the human-readable message.
type CodedError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // underlying error, not exported to JSON
}

// New creates a CodedError with the given code and message.
func New(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// Wrap creates a CodedError around an underlying cause.
func Wrap(code ErrorCode, message string, cause error) *CodedError {
	return &CodedError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *CodedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CodedError) Unwrap() error {
	return e.cause
}

// WithDetails attaches structured details to the error.
func (e *CodedError) WithDetails(details interface{}) *CodedError {
	e.Details = details
	return e
}
