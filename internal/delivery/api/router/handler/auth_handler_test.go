package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authapp/internal/delivery/api/binder"
	apimiddleware "authapp/internal/delivery/api/middleware"
	"authapp/internal/delivery/api/validator"
	deliverycontext "authapp/internal/delivery/context"
	domainerrors "authapp/internal/domain/errors"
	mockusecase "authapp/internal/mocks/usecase"
	"authapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) (*echo.Echo, *AuthHandler, *mockusecase.MockAuthUsecase) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authUC := mockusecase.NewMockAuthUsecase(t)
	h := NewAuthHandler(AuthHandlerParams{AuthUC: authUC, Logger: logger})

	e := echo.New()
	e.Binder = binder.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	e.POST("/auth/signup", h.SignUp)
	e.POST("/auth/signin", h.SignIn)
	e.GET("/auth/me", h.Me)

	return e, h, authUC
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthHandler_SignUp(t *testing.T) {
	e, _, authUC := newTestEcho(t)
	userID := uuid.New()

	authUC.EXPECT().
		SignUp(mock.Anything, usecase.SignUpInput{Email: "a@b.co", Name: "Alice", Password: "Passw0rd!"}).
		Return(&usecase.AuthOutput{
			AccessToken: "token",
			User:        usecase.UserView{ID: userID, Email: "a@b.co", Name: "Alice"},
		}, nil).
		Once()

	rec := serve(e, http.MethodPost, "/auth/signup", `{"email":"a@b.co","name":"  Alice ","password":"Passw0rd!"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t,
		`{"access_token":"token","user":{"id":"`+userID.String()+`","email":"a@b.co","name":"Alice"}}`,
		rec.Body.String(),
	)
}

func TestAuthHandler_SignUpInvalidBodyNeverReachesUsecase(t *testing.T) {
	e, _, _ := newTestEcho(t)

	rec := serve(e, http.MethodPost, "/auth/signup", `{"email":"a@b.co","name":"Alice","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"password"`)
}

func TestAuthHandler_SignInErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid credentials",
			err:        domainerrors.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"statusCode":401,"message":"Invalid credentials"}`,
		},
		{
			name:       "unexpected failure is hidden",
			err:        errors.New("connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"statusCode":500,"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, authUC := newTestEcho(t)
			authUC.EXPECT().SignIn(mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := serve(e, http.MethodPost, "/auth/signin", `{"email":"a@b.co","password":"Passw0rd!"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAuthHandler_MeWithoutCurrentUser(t *testing.T) {
	e, _, _ := newTestEcho(t)

	rec := serve(e, http.MethodGet, "/auth/me", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"statusCode":401,"message":"Unauthorized"}`, rec.Body.String())
}

func TestAuthHandler_Me(t *testing.T) {
	e, h, _ := newTestEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetCurrentUser(c, &usecase.CurrentUser{UserID: "user-1", Email: "a@b.co"})

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"user-1","email":"a@b.co"}`, rec.Body.String())
}
