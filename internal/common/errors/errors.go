// Package errors provides standardized error handling for the analysis engine.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyDocument     ErrorCode = "EMPTY_DOCUMENT"
	ErrCodeUnknownRole       ErrorCode = "UNKNOWN_ROLE"
	ErrCodeInferenceTimeout  ErrorCode = "INFERENCE_TIMEOUT"
	ErrCodeInferenceFailed   ErrorCode = "INFERENCE_FAILED"
	ErrCodeResponseMalformed ErrorCode = "RESPONSE_MALFORMED"
	ErrCodeResponseInvalid   ErrorCode = "RESPONSE_INVALID"
	ErrCodeConfigInvalid     ErrorCode = "CONFIG_INVALID"
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

// NewEmptyDocumentError creates a non-retryable input validation error.
func NewEmptyDocumentError(documentName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyDocument,
		Message:   "Document text is empty or whitespace-only",
		Details:   fmt.Sprintf("documentName: %s", documentName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownRoleError creates a non-retryable role lookup error.
func NewUnknownRoleError(role string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownRole,
		Message:   "Analysis role is not registered",
		Details:   fmt.Sprintf("role: %s", role),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInferenceTimeoutError creates a retryable inference timeout error.
func NewInferenceTimeoutError(role string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInferenceTimeout,
		Message:   "Model inference call timed out",
		Details:   fmt.Sprintf("role: %s", role),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInferenceFailedError creates a retryable inference transport error.
func NewInferenceFailedError(role string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInferenceFailed,
		Message:   "Model inference call failed",
		Details:   fmt.Sprintf("role: %s, error: %s", role, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResponseMalformedError creates a non-retryable decode error.
func NewResponseMalformedError(role string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseMalformed,
		Message:   "Model response is not valid JSON",
		Details:   fmt.Sprintf("role: %s, error: %s", role, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResponseInvalidError creates a non-retryable schema validation error.
func NewResponseInvalidError(role string, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseInvalid,
		Message:   "Model response failed schema validation",
		Details:   fmt.Sprintf("role: %s, %s", role, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError creates a non-retryable configuration error.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid engine configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeInferenceFailed:
		return 3
	case ErrCodeInferenceTimeout:
		return 1
	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DOCUMENT"):
		return "INPUT"
	case strings.Contains(codeStr, "INFERENCE"):
		return "INFERENCE"
	case strings.Contains(codeStr, "RESPONSE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}
