package validator

import (
	"testing"

	domainerrors "authapp/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,password_strength"`
}

func TestCustomValidator_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&signUpRequest{Email: "a@example.com", Name: "Alice", Password: "Password123!"})
	assert.NoError(t, err)
}

func TestCustomValidator_FieldMessages(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		req   signUpRequest
		field string
		msg   string
	}{
		{"missing email", signUpRequest{Name: "Alice", Password: "Password123!"}, "email", "Email is required"},
		{"bad email", signUpRequest{Email: "nope", Name: "Alice", Password: "Password123!"}, "email", "Please enter a valid email address"},
		{"short name", signUpRequest{Email: "a@example.com", Name: "Al", Password: "Password123!"}, "name", "Name must be at least 3 characters"},
		{"long name", signUpRequest{Email: "a@example.com", Name: string(make([]byte, 51)), Password: "Password123!"}, "name", "Name must not exceed 50 characters"},
		{"short password", signUpRequest{Email: "a@example.com", Name: "Alice", Password: "Pa1!"}, "password", "Password must be at least 8 characters"},
		{"no digit", signUpRequest{Email: "a@example.com", Name: "Alice", Password: "Password!!"}, "password", "Password must contain at least one letter, one number, and one special character"},
		{"no special", signUpRequest{Email: "a@example.com", Name: "Alice", Password: "Password123"}, "password", "Password must contain at least one letter, one number, and one special character"},
		{"no letter", signUpRequest{Email: "a@example.com", Name: "Alice", Password: "12345678!"}, "password", "Password must contain at least one letter, one number, and one special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

			vErr, ok := domainerrors.AsValidationError(err)
			require.True(t, ok)
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, tt.field, vErr.Fields[0].Field)
			assert.Equal(t, tt.msg, vErr.Fields[0].Message)
			assert.Equal(t, tt.msg, vErr.Message())
		})
	}
}

func TestCustomValidator_MultipleFieldsKeepOrder(t *testing.T) {
	v := New()

	err := v.Validate(&signUpRequest{})

	vErr, ok := domainerrors.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, vErr.Fields, 3)
	assert.Equal(t, "email", vErr.Fields[0].Field)
	assert.Equal(t, "name", vErr.Fields[1].Field)
	assert.Equal(t, "password", vErr.Fields[2].Field)
	assert.Equal(t, "Email is required", vErr.Message())
}

func TestValidatePasswordStrength_UnicodeLettersAreSpecial(t *testing.T) {
	v := New()

	// Non-ASCII letters count as special characters, not letters.
	err := v.Validate(&signUpRequest{Email: "a@example.com", Name: "Alice", Password: "ÄÖÜ12345ß"})
	assert.Error(t, err)

	err = v.Validate(&signUpRequest{Email: "a@example.com", Name: "Alice", Password: "Pässwörd1"})
	assert.NoError(t, err)
}
