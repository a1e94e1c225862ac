package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(ErrUpstreamError, "server exploded").
		WithHTTPStatus(502).
		WithEndpoint("/ai/text_completion")
	assert.Equal(t, "[UPSTREAM_ERROR] server exploded", err.Error())
	assert.Equal(t, 502, err.HTTPStatus)
	assert.Equal(t, "/ai/text_completion", err.Endpoint)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError(ErrUpstreamError, "request failed").WithCause(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("task must be one of [%s], got %q", "a, b", "c")
	require.True(t, IsValidation(err))
	assert.Equal(t, ErrValidation, GetErrorCode(err))
	assert.Contains(t, err.Error(), `got "c"`)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("bad input")))
	assert.False(t, IsValidation(NewError(ErrUpstreamError, "boom")))
	assert.False(t, IsValidation(fmt.Errorf("plain error")))
	assert.False(t, IsValidation(nil))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrRateLimited, GetErrorCode(NewError(ErrRateLimited, "slow down")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
}

func TestResponseTaskID(t *testing.T) {
	assert.Equal(t, "task-42", Response{"task_id": "task-42"}.TaskID())
	assert.Equal(t, "", Response{"status": "ok"}.TaskID())
	assert.Equal(t, "", Response{"task_id": 42}.TaskID())
	assert.Equal(t, "", Response(nil).TaskID())
}
