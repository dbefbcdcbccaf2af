// Package errors provides error response utilities.
package errors

import (
	"errors"
	"net/http"
)

// ErrorResponse is the JSON body written for every error.
//
//	400: {"error": "subject is required", "type": "validation_error", "request_id": "..."}
//	500: {"success": false, "error": "generation failed: ...", "type": "generation_error", "request_id": "..."}
type ErrorResponse struct {
	Success   *bool                  `json:"success,omitempty"`
	Error     string                 `json:"error"`
	Type      ErrorType              `json:"type"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Response converts the error to its client-facing body.
func (e *TutorError) Response() ErrorResponse {
	resp := ErrorResponse{
		Error:     e.Message,
		Type:      e.Type,
		RequestID: e.RequestID,
		Details:   e.Details,
	}
	if e.Code >= http.StatusInternalServerError {
		success := false
		resp.Success = &success
	}
	return resp
}

// As is a wrapper around errors.As for better error type assertion
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
