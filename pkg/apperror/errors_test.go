package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("VAL_001", "type is required", http.StatusBadRequest),
			expected: "[VAL_001] type is required",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestAppError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("service: %w", ErrNotFound("Accounting"))

	assert.True(t, errors.Is(err, ErrNotFound("anything")))
	assert.False(t, errors.Is(err, ErrForbidden("")))
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Unauthenticated", ErrUnauthenticated(), "AUTH_001", 401},
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_002", 401},
		{"Forbidden", ErrForbidden(""), "AUTH_003", 403},
		{"UserPassive", ErrUserPassive(), "AUTH_004", 403},
		{"InvalidSession", ErrInvalidSession(), "AUTH_005", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestForbidden_CustomMessage(t *testing.T) {
	err := ErrForbidden("only admins can read logs")
	assert.Equal(t, "only admins can read logs", err.Message)
	assert.NotEmpty(t, ErrForbidden("").Message)
}

func TestValidationErrors(t *testing.T) {
	v := Validation("amount must not be negative")
	assert.Equal(t, "VAL_001", v.Code)
	assert.Equal(t, 400, v.HTTPStatus)
	assert.Equal(t, "amount must not be negative", v.Message)

	exists := ErrUsernameExists()
	assert.Equal(t, "VAL_002", exists.Code)
	assert.Equal(t, 409, exists.HTTPStatus)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))

	internal := InternalError(inner)
	assert.Equal(t, "SYS_001", internal.Code)
	assert.True(t, errors.Is(internal, inner))
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_001", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Merchant")
	assert.Contains(t, err.Message, "Merchant")
	assert.Equal(t, "REC_001", err.Code)
	assert.Equal(t, 404, err.HTTPStatus)
}
