package middleware

import (
	"strings"

	deliverycontext "authapp/internal/delivery/context"
	domainerrors "authapp/internal/domain/errors"
	"authapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

const bearerScheme = "bearer"

// AuthMiddleware authenticates requests carrying a bearer access token.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate rejects the request with 401 unless the Authorization header
// is "Bearer <token>" and the token is valid.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrUnauthorized
		}

		current, err := m.authUC.GetCurrentUser(c.Request().Context(), token)
		if err != nil {
			return domainerrors.ErrUnauthorized
		}

		deliverycontext.SetCurrentUser(c, current)

		return next(c)
	}
}

// GetCurrentUser returns the identity stored by Authenticate.
func GetCurrentUser(c echo.Context) (*usecase.CurrentUser, bool) {
	return deliverycontext.GetCurrentUser(c)
}

// bearerToken extracts the token from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}

	return token, true
}
