package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_Err(t *testing.T) {
	assert.NoError(t, FieldErrors{}.Err())

	fields := FieldErrors{}
	fields.Add("title", "This field is required.")
	fields.Add("text", "This field is required.")
	fields.Add("title", "ignored")

	err := fields.Err()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	var apiErr *ApiErr
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "text", apiErr.Field)
	assert.Equal(t, "This field is required.", apiErr.Fields["title"])
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		is     error
	}{
		{name: "duplicate", cause: errors.New(`duplicate key value violates unique constraint "users_username_key"`), status: http.StatusConflict, is: ErrAlreadyExists},
		{name: "foreign key", cause: errors.New("violates foreign key constraint"), status: http.StatusBadRequest, is: ErrBadRequest},
		{name: "connection", cause: errors.New("connection refused"), status: http.StatusServiceUnavailable, is: ErrDatabaseConnection},
		{name: "other", cause: errors.New("syntax error"), status: http.StatusInternalServerError, is: ErrDatabaseQuery},
		{name: "passes through", cause: NewNotFound("post"), status: http.StatusNotFound, is: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("find", "post", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.True(t, errors.Is(err, tt.is))
		})
	}
}

func TestAuthenticationRequiredIsNotForbidden(t *testing.T) {
	err := NewAuthenticationRequiredError()
	assert.True(t, IsAuthenticationRequired(err))
	assert.False(t, IsForbidden(err))
	assert.False(t, IsUnauthorized(err))
}
