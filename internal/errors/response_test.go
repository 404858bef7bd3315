package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(AccountNotFound, "trace-1")
	assert.Equal(t, string(AccountNotFound), resp.Error.Code)
	assert.Equal(t, GetErrorMessage(AccountNotFound), resp.Error.Message)
	assert.Equal(t, "trace-1", resp.Error.TraceID)
}

func TestNewErrorResponse_Options(t *testing.T) {
	resp := NewErrorResponse(ValidationGeneral, "trace-2",
		WithDetails("field x is missing"),
		WithMessage("custom message"),
	)
	assert.Equal(t, "custom message", resp.Error.Message)
	assert.Equal(t, []string{"field x is missing"}, resp.Error.Details)
}

func TestNewValidationError(t *testing.T) {
	resp := NewValidationError(map[string]string{"email": "must be a valid email"}, "trace-v")
	assert.Equal(t, string(ValidationGeneral), resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "email: must be a valid email")
	assert.Equal(t, http.StatusBadRequest, resp.GetHTTPStatus())
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{AccountInvalidID, http.StatusBadRequest},
		{TransferSameAccount, http.StatusBadRequest},
		{CustomerNotFound, http.StatusNotFound},
		{AccountNotFound, http.StatusNotFound},
		{CustomerAlreadyExists, http.StatusConflict},
		{AccountReferenceExists, http.StatusConflict},
		{AccountInsufficientBalance, http.StatusUnprocessableEntity},
		{AccountMissingLimit, http.StatusUnprocessableEntity},
		{TransferInsufficientFunds, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{AccountReferenceExhausted, http.StatusServiceUnavailable},
		{SystemInternalError, http.StatusInternalServerError},
		{ErrorCode("UNKNOWN_999"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, GetHTTPStatus(tt.code), string(tt.code))
	}
}

func TestWrapSystemError(t *testing.T) {
	internal := errors.New("pq: connection refused")
	resp, wrapped := WrapSystemError(internal, "trace-3")

	assert.Equal(t, string(SystemInternalError), resp.Error.Code)
	assert.Equal(t, "trace-3", resp.Error.TraceID)
	// The client-facing message never leaks the internal error.
	assert.NotContains(t, resp.Error.Message, "connection refused")
	assert.ErrorIs(t, wrapped, internal)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, NewErrorResponse(AccountNotFound, "").IsClientError())
	assert.False(t, NewErrorResponse(SystemInternalError, "").IsClientError())
}
