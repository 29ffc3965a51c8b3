package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"authapp/internal/delivery/api/response"
	domainerrors "authapp/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (int, response.ErrorResponse) {
	t.Helper()

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	m.HandleHTTPError(err, c)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec.Code, body
}

func TestErrorMiddleware_AppErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"conflict", domainerrors.ErrUserAlreadyExists, http.StatusConflict, "Email already in use"},
		{"wrapped credentials", errors.Wrap(domainerrors.ErrInvalidCredentials, "sign in"), http.StatusUnauthorized, "Invalid credentials"},
		{"unauthorized", domainerrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"hash failure is generic", domainerrors.ErrPasswordHashFailed.WrapMessage("scrypt"), http.StatusInternalServerError, "Internal server error"},
		{"database failure is generic", domainerrors.NewDatabaseExecuteError(errors.New("pq: password authentication failed"), "create"), http.StatusInternalServerError, "Internal server error"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"echo body limit", echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := handle(t, tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.code, body.StatusCode)
			assert.Equal(t, tt.message, body.Message)
			assert.Empty(t, body.Errors)
		})
	}
}

func TestErrorMiddleware_ValidationError(t *testing.T) {
	err := domainerrors.NewValidationError(
		domainerrors.FieldError{Field: "email", Message: "Please enter a valid email address"},
		domainerrors.FieldError{Field: "password", Message: "Password is required"},
	)

	code, body := handle(t, err)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please enter a valid email address", body.Message)
	assert.Equal(t, err.Fields, body.Errors)
}

func TestErrorMiddleware_DetailsAreLoggedNotRendered(t *testing.T) {
	var buf bytes.Buffer
	m := NewErrorMiddleware(slog.New(slog.NewJSONHandler(&buf, nil)))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/auth/signup", nil), rec)

	err := errors.WithStack(domainerrors.ErrUserCreationFailed.WithDetails("NOT NULL constraint failed: users.name"))
	m.HandleHTTPError(err, c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"statusCode":500,"message":"Internal server error"}`, rec.Body.String())

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "USER_CREATION_FAILED", record["error_code"])
	assert.Equal(t, "NOT NULL constraint failed: users.name", record["details"])
}
