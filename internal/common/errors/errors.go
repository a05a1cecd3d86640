// Package errors provides standardized error handling for the matching service.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeStoreUnavailable    ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeDocumentWriteFailed ErrorCode = "DOCUMENT_WRITE_FAILED"
	ErrCodeDocumentReadFailed  ErrorCode = "DOCUMENT_READ_FAILED"

	ErrCodeMailSendFailed ErrorCode = "MAIL_SEND_FAILED"

	// A sponsorship request was persisted without its mirrored response.
	ErrCodeMirrorWriteFailed ErrorCode = "MIRROR_WRITE_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable validation error. Raised before
// any side effect occurs.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError creates a retryable document store connectivity error.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Document store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentWriteError creates a retryable document write error.
func NewDocumentWriteError(collection string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentWriteFailed,
		Message:   "Document write failed",
		Details:   fmt.Sprintf("collection: %s, error: %s", collection, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentReadError creates a retryable document read error.
func NewDocumentReadError(collection string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentReadFailed,
		Message:   "Document read failed",
		Details:   fmt.Sprintf("collection: %s, error: %s", collection, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMailSendError creates a retryable mail transport error.
func NewMailSendError(recipient string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMailSendFailed,
		Message:   "Mail delivery failed",
		Details:   fmt.Sprintf("recipient: %s, error: %s", recipient, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMirrorWriteError records a request persisted without its mirrored
// response record.
func NewMirrorWriteError(requestID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMirrorWriteFailed,
		Message:   "Mirrored response write failed",
		Details:   fmt.Sprintf("sponsorshipRequestId: %s, error: %s", requestID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError creates a generic retryable external service error.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize converts any error into a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == ErrCodeValidationFailed
}
