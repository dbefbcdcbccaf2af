// Package errors provides the error handling used across the tutor server.
// It includes typed errors, JSON response formatting, request ID tracking
// and integrated logging with zap.
//
// Every error answered to a client carries an "error" message. Server-side
// failures (5xx) also carry "success": false so that clients of the lesson
// endpoint can branch on a single field.
//
// Basic usage:
//
//	// Simple error response
//	errors.Error(w, "Something went wrong", http.StatusInternalServerError)
//
//	// Type-specific error
//	errors.ErrorWithType(w, "subject is required", errors.ValidationError, http.StatusBadRequest)
//
// The constructors in types.go cover the common categories:
//
//	err := errors.NewValidationError(requestID, "subject is required", map[string]interface{}{
//	    "field": "subject",
//	})
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// DefaultLogger is the zap logger used by the package.
// It starts as a production logger and can be replaced with SetLogger.
var DefaultLogger *zap.Logger

func init() {
	var err error
	DefaultLogger, err = zap.NewProduction()
	if err != nil {
		DefaultLogger = zap.NewNop()
	}
}

// SetLogger replaces DefaultLogger. A nil logger is ignored.
func SetLogger(logger *zap.Logger) {
	if logger != nil {
		DefaultLogger = logger
	}
}

// ErrorType categorizes errors returned to clients.
type ErrorType string

const (
	// ValidationError represents a rejected lesson request
	ValidationError ErrorType = "validation_error"

	// GenerationError represents a failed call to the generation provider
	GenerationError ErrorType = "generation_error"

	// InternalError represents unexpected internal server errors
	InternalError ErrorType = "internal_error"

	// RateLimitError represents rate limiting errors
	RateLimitError ErrorType = "rate_limit_error"

	// NotFoundError represents unknown routes
	NotFoundError ErrorType = "not_found"

	// MethodNotAllowedError represents a known route called with the wrong method
	MethodNotAllowedError ErrorType = "method_not_allowed"
)

// TutorError is the error type written to clients. It keeps the underlying
// cause for logging without exposing it in the JSON body.
type TutorError struct {
	// Type categorizes the error for client handling
	Type ErrorType

	// Message is the human-readable description sent to the client
	Message string

	// Code is the HTTP status code
	Code int

	// RequestID links the error to a specific request
	RequestID string

	// Details contains additional error context
	Details map[string]interface{}

	err error
}

// Error implements the error interface.
func (e *TutorError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *TutorError) Unwrap() error {
	return e.err
}

// Is matches on error type only, so errors.Is(err, &TutorError{Type: ValidationError})
// holds for any validation error.
func (e *TutorError) Is(target error) bool {
	t, ok := target.(*TutorError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// MarshalJSON encodes the error as its client-facing ErrorResponse.
func (e *TutorError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Response())
}

// WriteError writes a TutorError as a JSON response with its status code.
func WriteError(w http.ResponseWriter, err *TutorError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	if encErr := json.NewEncoder(w).Encode(err); encErr != nil {
		DefaultLogger.Error("failed to encode error response",
			zap.Error(encErr),
			zap.String("request_id", err.RequestID),
		)
	}
}

// Error is a drop-in replacement for http.Error that writes an InternalError.
// The request ID is taken from the response headers when present.
func Error(w http.ResponseWriter, message string, code int) {
	ErrorWithType(w, message, InternalError, code)
}

// ErrorWithType is like Error but allows specifying the error type.
func ErrorWithType(w http.ResponseWriter, message string, errType ErrorType, code int) {
	WriteError(w, &TutorError{
		Type:      errType,
		Message:   message,
		Code:      code,
		RequestID: w.Header().Get("X-Request-ID"),
	})
}
