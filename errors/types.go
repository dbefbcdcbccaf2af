package errors

import (
	"net/http"
	"strconv"
)

// NewError creates a TutorError with full control over its fields.
// Prefer one of the specialized constructors below.
//
// Example:
//
//	err := NewError(InternalError, "template rendering failed", 500, "req_123", nil, tmplErr)
func NewError(errType ErrorType, message string, code int, requestID string, details map[string]interface{}, err error) *TutorError {
	return &TutorError{
		Type:      errType,
		Message:   message,
		Code:      code,
		RequestID: requestID,
		Details:   details,
		err:       err,
	}
}

// NewValidationError creates a 400 error for a rejected lesson request, such as:
//   - A body that is not JSON or is empty
//   - Missing subject, level or learning style
//   - An empty topic list
//   - A duration that is not a number or outside the accepted range
//
// Example:
//
//	err := NewValidationError("req_123", "subject is required", map[string]interface{}{
//	    "field": "subject",
//	})
func NewValidationError(requestID, message string, validationDetails map[string]interface{}) *TutorError {
	return &TutorError{
		Type:      ValidationError,
		Message:   message,
		Code:      http.StatusBadRequest,
		RequestID: requestID,
		Details:   validationDetails,
	}
}

// NewGenerationError creates a 500 error for a failed generation.
// The client sees the stringified cause: there is no finer taxonomy
// of provider failures. Provider errors already start with
// "generation failed", so the cause is used as is.
//
// Example:
//
//	err := NewGenerationError("req_123", providerErr)
func NewGenerationError(requestID string, err error) *TutorError {
	message := "generation failed"
	if err != nil {
		message = err.Error()
	}
	return &TutorError{
		Type:      GenerationError,
		Message:   message,
		Code:      http.StatusInternalServerError,
		RequestID: requestID,
		err:       err,
	}
}

// NewRateLimitError creates a 429 error telling the client when to retry.
//
// Example:
//
//	err := NewRateLimitError("req_123", 30)
func NewRateLimitError(requestID string, retryAfter int) *TutorError {
	return &TutorError{
		Type:      RateLimitError,
		Message:   "rate limit exceeded, retry in " + strconv.Itoa(retryAfter) + "s",
		Code:      http.StatusTooManyRequests,
		RequestID: requestID,
		Details: map[string]interface{}{
			"retry_after": retryAfter,
		},
	}
}

// NewInternalError creates a 500 error for unexpected failures such as panics.
func NewInternalError(requestID string, err error) *TutorError {
	return &TutorError{
		Type:      InternalError,
		Message:   "An internal error occurred",
		Code:      http.StatusInternalServerError,
		RequestID: requestID,
		err:       err,
	}
}
