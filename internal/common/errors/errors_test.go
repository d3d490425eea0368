package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardError_Error(t *testing.T) {
	err := NewEmptyDocumentError("q1.txt")
	assert.Equal(t, "StandardError[EMPTY_DOCUMENT]: Document text is empty or whitespace-only", err.Error())
	assert.Contains(t, err.Details, "q1.txt")
	assert.False(t, err.Retryable)
	assert.False(t, err.Timestamp.IsZero())
}

func TestConstructors(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"empty document", NewEmptyDocumentError("doc"), ErrCodeEmptyDocument, false},
		{"unknown role", NewUnknownRoleError("astrologer"), ErrCodeUnknownRole, false},
		{"inference timeout", NewInferenceTimeoutError("fraud"), ErrCodeInferenceTimeout, true},
		{"inference failed", NewInferenceFailedError("fraud", cause), ErrCodeInferenceFailed, true},
		{"response malformed", NewResponseMalformedError("fraud", cause), ErrCodeResponseMalformed, false},
		{"response invalid", NewResponseInvalidError("fraud", "findings is required"), ErrCodeResponseInvalid, false},
		{"config invalid", NewConfigInvalidError("temperature out of range"), ErrCodeConfigInvalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeInferenceFailed))
	assert.Equal(t, 1, GetRetryCount(ErrCodeInferenceTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeEmptyDocument))
	assert.Equal(t, 0, GetRetryCount(ErrCodeResponseInvalid))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeInferenceFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodeInferenceTimeout))
	assert.False(t, IsRetryableErrorCode(ErrCodeResponseMalformed))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "INPUT", GetErrorCategory(ErrCodeEmptyDocument))
	assert.Equal(t, "INFERENCE", GetErrorCategory(ErrCodeInferenceTimeout))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeResponseInvalid))
	assert.Equal(t, "CONFIG", GetErrorCategory(ErrCodeConfigInvalid))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrorCode("SOMETHING_ELSE")))
}
