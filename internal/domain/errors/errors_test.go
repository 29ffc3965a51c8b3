package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetails(t *testing.T) {
	detailed := ErrUserCreationFailed.WithDetails("check constraint users_email_lowercase")

	assert.Equal(t, "check constraint users_email_lowercase", detailed.Details())
	assert.Empty(t, ErrUserCreationFailed.Details())
	assert.Equal(t, ErrUserCreationFailed.HTTPCode(), detailed.HTTPCode())
	assert.Equal(t, ErrUserCreationFailed.Message(), detailed.Message())

	assert.ErrorIs(t, detailed, ErrUserCreationFailed)
	assert.ErrorIs(t, errors.Wrap(detailed, "create user"), ErrUserCreationFailed)
	assert.NotErrorIs(t, detailed, ErrUserAlreadyExists)
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(errors.Wrap(ErrInvalidCredentials, "sign in"))
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
