package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"authapp/internal/delivery/api/middleware"
	"authapp/internal/delivery/api/response"
	domainerrors "authapp/internal/domain/errors"
	"authapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler holds dependencies for authentication handlers
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// SignUpRequest represents the request body for registration
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,password_strength"`
}

// SignInRequest represents the request body for signing in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is returned by sign-up and sign-in
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse is the identity carried by the access token
type MeResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// SignUp handles account registration
//
//	@Summary		Sign up
//	@Description	Registers a new account and issues an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SignUpRequest	true	"Account to register"
//	@Success		201		{object}	AuthResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.authUC.SignUp(c.Request().Context(), usecase.SignUpInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toAuthResponse(output))
}

// SignIn handles credential verification
//
//	@Summary		Sign in
//	@Description	Verifies credentials and issues an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SignInRequest	true	"Credentials"
//	@Success		200		{object}	AuthResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		401		{object}	response.ErrorResponse
//	@Router			/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.authUC.SignIn(c.Request().Context(), usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toAuthResponse(output))
}

// Me returns the identity of the authenticated caller
//
//	@Summary		Current user
//	@Description	Returns the identity carried by the bearer access token
//	@Tags			auth
//	@Produce		json
//	@Security		bearer
//	@Success		200	{object}	MeResponse
//	@Failure		401	{object}	response.ErrorResponse
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	current, ok := middleware.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	return response.Success(c, http.StatusOK, MeResponse{
		UserID: current.UserID,
		Email:  current.Email,
	})
}

func toAuthResponse(output *usecase.AuthOutput) AuthResponse {
	return AuthResponse{
		AccessToken: output.AccessToken,
		User: UserResponse{
			ID:    output.User.ID.String(),
			Email: output.User.Email,
			Name:  output.User.Name,
		},
	}
}
